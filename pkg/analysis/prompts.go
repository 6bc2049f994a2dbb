package analysis

import (
	"fmt"
	"strings"

	"github.com/lar-university/advisor/pkg/catalog"
)

// extractionPrompt asks the model for a structured profile in strict JSON.
func extractionPrompt(cvText string) string {
	return fmt.Sprintf(`Eres un experto en análisis de CVs y perfiles profesionales.
Analiza el siguiente CV y extrae la información estructurada en formato JSON.

CV:
"""
%s
"""

Responde ÚNICAMENTE con un JSON válido con esta estructura exacta:
{
  "name": "nombre completo del candidato",
  "currentRole": "cargo o rol actual más reciente",
  "yearsOfExperience": número estimado de años de experiencia,
  "industry": "industria o sector principal",
  "skills": ["habilidad1", "habilidad2", ...],
  "education": [
    {
      "degree": "título o grado",
      "field": "campo de estudio",
      "institution": "institución",
      "year": año de graduación o null
    }
  ],
  "experience": [
    {
      "title": "cargo",
      "company": "empresa",
      "duration": "duración",
      "description": "descripción breve"
    }
  ],
  "languages": ["idioma1", "idioma2"],
  "certifications": ["certificación1", ...],
  "summary": "resumen profesional de 2-3 oraciones"
}`, cvText)
}

// recommendationPrompt asks the model to pick one sprint from the catalog.
func recommendationPrompt(p Profile) string {
	return fmt.Sprintf(`Eres un asesor académico experto de LAR University, una institución de educación ejecutiva de élite.

Tu tarea es analizar la Hoja de Vida (CV) de un candidato y recomendar el Sprint de especialización más adecuada de nuestro catálogo.

PERFIL DEL CANDIDATO:
- Nombre: %s
- Rol actual: %s
- Industria: %s
- Años de experiencia: %s
- Habilidades: %s
- Resumen: %s

SPRINTS DISPONIBLES EN LAR UNIVERSITY:
%s

INSTRUCCIONES:
1. Analiza el CV y determina qué Sprint complementa mejor su trayectoria.
2. La recomendación debe ser un Sprint que POTENCIE su perfil actual.
3. Si el candidato es analista de datos, recomienda el Sprint de ANALÍTICA DE DATOS.
4. Proporciona un score de compatibilidad del 0 al 100.
5. Explica el razonamiento de forma motivadora, mencionando siempre el nombre del Sprint.

Responde ÚNICAMENTE con un JSON válido:
{
  "primarySpecialization": "NOMBRE_DEL_SPRINT",
  "primarySpecializationId": "id-del-sprint",
  "secondarySpecializations": ["OTRO_SPRINT", "OTRO_SPRINT"],
  "matchScore": número del 0 al 100,
  "reasoning": "Explicación personalizada de 3-4 oraciones de por qué este Sprint es perfecto para el candidato"
}

Los IDs válidos son: %s`,
		orDefault(p.Name, "No especificado"),
		orDefault(p.CurrentRole, "No especificado"),
		orDefault(p.Industry, "No especificada"),
		yearsOrDefault(p.YearsOfExperience),
		orDefault(strings.Join(p.Skills, ", "), "No especificadas"),
		orDefault(p.Summary, "No disponible"),
		catalog.PromptList(),
		catalogIDs(),
	)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func yearsOrDefault(years int) string {
	if years <= 0 {
		return "No especificado"
	}
	return fmt.Sprintf("%d", years)
}

func catalogIDs() string {
	specs := catalog.All()
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return strings.Join(ids, ", ")
}
