package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "analítica de datos", Normalize("  Analítica?? de---DATOS!! "))
	assert.Equal(t, "power bi", Normalize("Power/BI"))
	assert.Equal(t, "", Normalize("  ¿¡!?  "))
}

func TestContainsPhrase(t *testing.T) {
	text := Normalize("Analista de datos con SQL y Power BI")

	assert.True(t, ContainsPhrase(text, Normalize("power bi")))
	assert.True(t, ContainsPhrase(text, Normalize("analista de datos")))
	assert.True(t, ContainsPhrase(text, "sql"))
	// Whole words only: no substring hits.
	assert.False(t, ContainsPhrase(text, "ana"))
	assert.False(t, ContainsPhrase(text, "dato"))
	assert.False(t, ContainsPhrase(text, ""))
}

func TestTokens(t *testing.T) {
	got := Tokens(Normalize("datos y más datos"))
	assert.Len(t, got, 3)
	_, ok := got["datos"]
	assert.True(t, ok)
}
