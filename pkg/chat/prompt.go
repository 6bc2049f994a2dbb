package chat

import (
	"fmt"
	"strings"

	"github.com/lar-university/advisor/pkg/analysis"
)

// systemPrompt builds the advisor persona, optionally enriched with the
// user's extracted profile and current recommendation.
func systemPrompt(profile *analysis.Profile, rec *analysis.Recommendation) string {
	var b strings.Builder
	b.WriteString(`Eres un asesor académico experto y amigable de LAR University, una institución de educación ejecutiva de élite.
Tu nombre es "LAR Advisor" y tu misión es ayudar a los profesionales a encontrar la especialización perfecta para potenciar su carrera.

`)

	if profile != nil {
		skills := profile.Skills
		if len(skills) > 5 {
			skills = skills[:5]
		}
		fmt.Fprintf(&b, `PERFIL DEL USUARIO:
- Nombre: %s
- Rol: %s
- Industria: %s
- Habilidades: %s

`,
			orDefault(profile.Name, "el usuario"),
			orDefault(profile.CurrentRole, "profesional"),
			orDefault(profile.Industry, "no especificada"),
			strings.Join(skills, ", "),
		)
	}

	if rec != nil {
		fmt.Fprintf(&b, `RECOMENDACIÓN ACTUAL:
- Especialización recomendada: %s
- Score de compatibilidad: %d%%
- Materias: %s

`,
			rec.PrimarySpecialization,
			rec.MatchScore,
			strings.Join(rec.Subjects, ", "),
		)
	}

	b.WriteString(`INSTRUCCIONES:
- Responde siempre en español
- Sé motivador, profesional y cercano
- Si el usuario pregunta sobre la especialización recomendada, explica los beneficios
- Si el usuario quiere explorar otras opciones, muéstrate abierto y explica las alternativas
- Mantén respuestas concisas pero informativas (máximo 3-4 párrafos)
- Usa emojis ocasionalmente para hacer la conversación más amigable
- Siempre invita al usuario a dar el siguiente paso`)

	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
