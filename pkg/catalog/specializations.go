package catalog

import (
	"fmt"
	"strings"

	"github.com/lar-university/advisor/pkg/nlp"
)

// Specialization is one fixed entry of the LAR University sprint catalog.
type Specialization struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	SprintURL   string   `json:"sprintUrl"`
	Keywords    []string `json:"keywords"`
	Subjects    []string `json:"subjects"`
}

// specializations is the full catalog: nine fixed tracks. The data is static
// reference material served to clients and embedded into recommendation prompts.
var specializations = []Specialization{
	{
		ID:          "comunicacion",
		Name:        "COMUNICACIÓN",
		Emoji:       "🎤",
		Description: "Desarrolla habilidades de comunicación estratégica para líderes empresariales",
		Color:       "#6366f1",
		SprintURL:   "https://lar.university/sprints/comunicacion",
		Keywords:    []string{"comunicación", "liderazgo", "presentaciones", "oratoria", "negociación", "crisis", "relaciones públicas", "medios", "discurso", "persuasión"},
		Subjects: []string{
			"Comunicación para el Liderazgo",
			"Liderar y Gestionar el Cambio",
			"Negociación en los Negocios",
			"Presentaciones de Alto Impacto",
			"Oratoria para Negocios",
			"Comunicación de Crisis",
		},
	},
	{
		ID:          "emprendimiento",
		Name:        "EMPRENDIMIENTO",
		Emoji:       "🚀",
		Description: "Construye y escala tu startup con estrategias probadas de emprendimiento",
		Color:       "#f59e0b",
		SprintURL:   "https://lar.university/sprints/emprendimiento",
		Keywords:    []string{"emprendimiento", "startup", "innovación", "finanzas", "negocio", "fundador", "ceo", "entrepreneur", "venture", "capital riesgo", "inversión", "propiedad intelectual"},
		Subjects: []string{
			"Finanzas para Emprendedores",
			"Emprendimiento y Planificación de Negocios",
			"Gestión de la Innovación y el Crecimiento",
			"Estrategias de Precios",
			"Estrategia Legal y de Propiedad Intelectual",
			"Estrategias de inversión de capital de riesgo",
		},
	},
	{
		ID:          "finanzas",
		Name:        "FINANZAS",
		Emoji:       "💹",
		Description: "Domina las finanzas corporativas avanzadas y los mercados financieros globales",
		Color:       "#10b981",
		SprintURL:   "https://lar.university/sprints/finanzas",
		Keywords:    []string{"finanzas", "inversión", "mercados", "banca", "contabilidad", "tesorería", "cfo", "hedge fund", "fusiones", "adquisiciones", "esg", "fintech", "cripto", "defi"},
		Subjects: []string{
			"Finanzas Corporativas Avanzadas",
			"ESG en la Industria de Servicios Financieros",
			"Analítica Financiera e Innovación",
			"Fondos de Cobertura",
			"Fusiones y Adquisiciones",
			"Ecosistemas Fintech y Finanzas Descentralizadas",
		},
	},
	{
		ID:          "talento",
		Name:        "TALENTO",
		Emoji:       "👥",
		Description: "Lidera equipos de alto rendimiento y gestiona el talento organizacional",
		Color:       "#ec4899",
		SprintURL:   "https://lar.university/sprints/talento",
		Keywords:    []string{"recursos humanos", "rrhh", "hr", "talento", "equipos", "liderazgo", "cultura", "organización", "people", "neurociencia", "coaching", "desempeño", "evaluación"},
		Subjects: []string{
			"Gestión de Equipos",
			"Gestión del Talento",
			"Neurociencia del Liderazgo",
			"Construir relaciones sólidas y equipos cohesionados",
			"Diseño Organizativo y Escalado del Talento",
			"Gestión del Desempeño y Sistemas de Evaluación en Entornos Tecnológicos",
		},
	},
	{
		ID:          "tecnologia",
		Name:        "TECNOLOGÍA",
		Emoji:       "⚡",
		Description: "Comprende y lidera la transformación digital con tecnologías emergentes",
		Color:       "#3b82f6",
		SprintURL:   "https://lar.university/sprints/tecnologia",
		Keywords:    []string{"tecnología", "ciberseguridad", "cloud", "devops", "blockchain", "iot", "industria 4.0", "arquitectura digital", "plataformas", "cto", "it", "infraestructura", "digital"},
		Subjects: []string{
			"Estrategia de Ciberseguridad",
			"Cloud y DevOps para Directivos",
			"Blockchain y Activos Digitales",
			"Internet de las Cosas (IoT) e Industria 4.0",
			"Arquitecturas Digitales y Plataformas Tecnológicas",
			"Tecnologías Emergentes Aplicadas a la Empresa",
		},
	},
	{
		ID:          "ia-automatizacion",
		Name:        "INTELIGENCIA ARTIFICIAL Y AUTOMATIZACIÓN",
		Emoji:       "🤖",
		Description: "Implementa y lidera estrategias de IA para transformar tu empresa",
		Color:       "#8b5cf6",
		SprintURL:   "https://lar.university/sprints/ia-automatizacion",
		Keywords:    []string{"inteligencia artificial", "ia", "machine learning", "deep learning", "automatización", "nlp", "chatgpt", "llm", "agentes", "prompts", "gobernanza ia", "ética ia", "ai"},
		Subjects: []string{
			"IA y Deep Learning para Negocios",
			"IA para la Productivity Empresarial",
			"Estrategia e Implementación de Inteligencia Artificial",
			"Gobernanza, Ética y Regulación de la IA",
			"Ingeniería de Prompts para Directivos",
			"Diseño y Aplicación de Agentes Inteligentes Generativos en la Empresa",
		},
	},
	{
		ID:          "mercado-cliente",
		Name:        "MERCADO Y CLIENTE",
		Emoji:       "🎯",
		Description: "Domina el marketing avanzado y la gestión de experiencia del cliente",
		Color:       "#f97316",
		SprintURL:   "https://lar.university/sprints/mercado-cliente",
		Keywords:    []string{"marketing", "ventas", "cliente", "consumidor", "marca", "digital marketing", "crm", "customer experience", "cx", "ecommerce", "growth", "branding", "posicionamiento"},
		Subjects: []string{
			"Estrategia de Marketing Avanzada",
			"Comportamiento del Consumidor",
			"Vinculación Digital y Lealtad",
			"Gestión de la Experiencia de Cliente y Customer Journey",
			"Analítica Comercial y Toma de Decisiones de Marketing",
			"Estrategia de Marca y Posicionamiento en Entornos Digitales",
		},
	},
	{
		ID:          "operaciones",
		Name:        "OPERACIONES Y ENTORNO",
		Emoji:       "⚙️",
		Description: "Optimiza operaciones y cadena de suministro en entornos globales",
		Color:       "#14b8a6",
		SprintURL:   "https://lar.university/sprints/operaciones",
		Keywords:    []string{"operaciones", "supply chain", "cadena de suministro", "logística", "economía", "riesgos", "sostenibilidad", "resiliencia", "continuidad", "coo", "procesos", "eficiencia"},
		Subjects: []string{
			"Economía Global",
			"Estrategia de Cadena de Suministro",
			"Gestión de Riesgos en Cadenas de Suministro",
			"Analítica de Operaciones",
			"Economía Circular y Operaciones Sostenibles",
			"Resiliencia Operativa y Continuidad del Negocio en Entornos Digitales",
		},
	},
	{
		ID:          "analitica-datos",
		Name:        "ANALÍTICA DE DATOS Y DECISIÓN EMPRESARIAL",
		Emoji:       "📊",
		Description: "Transforma datos en decisiones estratégicas con analítica avanzada",
		Color:       "#06b6d4",
		SprintURL:   "https://lar.university/sprints/analitica-datos",
		Keywords:    []string{"datos", "analítica", "data", "analytics", "business intelligence", "bi", "machine learning", "visualización", "dashboard", "kpi", "data science", "estadística", "sql", "python", "tableau", "power bi", "data analyst", "analista de datos", "data driven"},
		Subjects: []string{
			"Analítica de datos para directivos",
			"Machine learning para la toma de decisiones empresariales",
			"Visualización de datos y cuadros de mando ejecutivos",
			"Analítica predictiva aplicada al negocio",
			"Gobierno del dato y calidad de la información",
			"Data-Driven management y cultura analítica",
		},
	},
}

// All returns every catalog entry in declaration order.
func All() []Specialization {
	out := make([]Specialization, len(specializations))
	copy(out, specializations)
	return out
}

// ByID looks up a specialization by its identifier.
func ByID(id string) (Specialization, bool) {
	for _, s := range specializations {
		if s.ID == id {
			return s, true
		}
	}
	return Specialization{}, false
}

// Resolve maps a model-chosen id or display name onto a canonical catalog
// entry. Name comparison is case-insensitive; returns false when neither
// matches.
func Resolve(id, name string) (Specialization, bool) {
	if s, ok := ByID(strings.TrimSpace(id)); ok {
		return s, true
	}
	name = strings.TrimSpace(name)
	for _, s := range specializations {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Specialization{}, false
}

// PromptList renders one line per track for the recommendation prompt:
// the sprint name followed by its first five keywords.
func PromptList() string {
	var b strings.Builder
	for i, s := range specializations {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := 5
		if len(s.Keywords) < n {
			n = len(s.Keywords)
		}
		fmt.Fprintf(&b, "- Sprint %s: %s", s.Name, strings.Join(s.Keywords[:n], ", "))
	}
	return b.String()
}

// Match scores every track's keywords against free text and returns the best
// hit. Used as a local fallback when the model's chosen track does not resolve
// against the catalog.
func Match(text string) (Specialization, int) {
	normalized := nlp.Normalize(text)
	best := specializations[0]
	bestScore := 0
	for _, s := range specializations {
		score := 0
		for _, kw := range s.Keywords {
			if nlp.ContainsPhrase(normalized, nlp.Normalize(kw)) {
				score++
			}
		}
		if score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best, bestScore
}
