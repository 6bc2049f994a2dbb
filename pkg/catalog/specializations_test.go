package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	all := All()
	require.Len(t, all, 9)

	seen := map[string]bool{}
	for _, s := range all {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.SprintURL)
		assert.NotEmpty(t, s.Keywords)
		assert.NotEmpty(t, s.Subjects)
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}

	// Returned slice is a copy; callers cannot corrupt the catalog.
	all[0].Name = "mutada"
	fresh := All()
	assert.NotEqual(t, "mutada", fresh[0].Name)
}

func TestByID(t *testing.T) {
	s, ok := ByID("analitica-datos")
	require.True(t, ok)
	assert.Contains(t, s.Name, "ANALÍTICA")

	_, ok = ByID("no-existe")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	s, ok := Resolve("tecnologia", "")
	require.True(t, ok)
	assert.Equal(t, "tecnologia", s.ID)

	// Name fallback is case-insensitive.
	byName, ok := Resolve("", strings.ToLower(s.Name))
	require.True(t, ok)
	assert.Equal(t, s.ID, byName.ID)

	_, ok = Resolve("inventada", "TAMPOCO EXISTE")
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	s, score := Match("Analista de datos con experiencia en SQL, Power BI y dashboards")
	assert.Equal(t, "analitica-datos", s.ID)
	assert.Greater(t, score, 0)

	// No keyword hits: defaults to the first entry with zero score.
	first, score := Match("zzzz qqqq")
	assert.Equal(t, All()[0].ID, first.ID)
	assert.Zero(t, score)
}

func TestPromptList(t *testing.T) {
	list := PromptList()
	lines := strings.Split(list, "\n")
	assert.Len(t, lines, 9)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "- Sprint "), line)
	}
}
