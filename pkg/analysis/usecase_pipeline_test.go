package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/llm"
	"github.com/lar-university/advisor/pkg/repository/memory"
)

// scriptedModel replies to AskJSON calls from a queue.
type scriptedModel struct {
	replies []string
	calls   int
	err     error
}

func (m *scriptedModel) Ask(_ context.Context, _, _ string) (string, error) { return "", m.err }
func (m *scriptedModel) Converse(_ context.Context, _ []llm.Message) (string, error) {
	return "", m.err
}
func (m *scriptedModel) AskJSON(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.calls >= len(m.replies) {
		return "", errors.New("no scripted reply left")
	}
	r := m.replies[m.calls]
	m.calls++
	return r, nil
}

const profileJSON = `{
  "name": "Ana García",
  "currentRole": "Analista de Datos",
  "yearsOfExperience": 8,
  "industry": "Banca",
  "skills": ["SQL", "Python", "Power BI"],
  "education": [{"degree": "Ingeniería", "field": "Sistemas", "institution": "UNAL", "year": 2016}],
  "experience": [{"title": "Analista", "company": "BancoX", "duration": "5 años", "description": "BI"}],
  "languages": ["español", "inglés"],
  "certifications": [],
  "summary": "Analista de datos con ocho años de experiencia en banca."
}`

const recommendationJSON = `{
  "primarySpecialization": "ANALÍTICA DE DATOS Y DECISIÓN EMPRESARIAL",
  "primarySpecializationId": "analitica-datos",
  "secondarySpecializations": ["TECNOLOGÍA"],
  "matchScore": 93,
  "reasoning": "Tu trayectoria en datos encaja perfecto con este Sprint."
}`

func seedOwner(t *testing.T, store *memory.Store) uuid.UUID {
	t.Helper()
	a := account.Account{ID: uuid.New(), Name: "Ana", Email: "ana@lar.edu", Role: account.RoleMember, IsActive: true}
	require.NoError(t, store.Accounts().Create(context.Background(), a))
	return a.ID
}

func longSummary() string {
	return "Analista de datos con ocho años de experiencia en banca, SQL, Python y Power BI."
}

func TestAnalyzeLinkedInHappyPath(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	model := &scriptedModel{replies: []string{profileJSON, recommendationJSON}}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	a, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	require.NoError(t, err)

	assert.Equal(t, analysis.StatusCompleted, a.Status)
	assert.Equal(t, analysis.SourceLinkedIn, a.Source)
	require.NotNil(t, a.Profile)
	assert.Equal(t, "Ana García", a.Profile.Name)
	require.NotNil(t, a.Recommendation)
	assert.Equal(t, "ANALÍTICA DE DATOS Y DECISIÓN EMPRESARIAL", a.Recommendation.PrimarySpecialization)
	assert.Equal(t, 93, a.Recommendation.MatchScore)
	// Subjects and sprint URL come from the catalog, never from the model.
	assert.NotEmpty(t, a.Recommendation.Subjects)
	assert.Contains(t, a.Recommendation.SprintURL, "analitica-datos")
	require.NotNil(t, a.ProcessedAt)

	// The owning account carries the back-reference.
	acc, err := store.Accounts().GetByID(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, acc.AnalysisID)
	assert.Equal(t, a.ID, *acc.AnalysisID)
	require.NotNil(t, acc.RecommendedTrack)
	assert.Equal(t, "ANALÍTICA DE DATOS Y DECISIÓN EMPRESARIAL", *acc.RecommendedTrack)
}

func TestAnalyzeLinkedInSummaryTooShort(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	uc := analysis.NewService(store.Analyses(), store.Accounts(), &scriptedModel{})

	_, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", "muy corto")
	assert.ErrorIs(t, err, analysis.ErrSummaryTooShort)

	// No record is created for a rejected summary.
	list, err := uc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAnalyzeModelFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	model := &scriptedModel{err: errors.New("rate limited")}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	_, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	assert.ErrorIs(t, err, analysis.ErrModel)

	list, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, analysis.StatusFailed, list[0].Status)
	require.NotNil(t, list[0].ErrorMessage)
}

func TestAnalyzeUnknownTrackFallsBackToKeywords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	// The model invents a track outside the catalog.
	invented := `{"primarySpecialization": "ASTROFÍSICA", "primarySpecializationId": "astro", "matchScore": 250, "reasoning": ""}`
	model := &scriptedModel{replies: []string{profileJSON, invented}}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	a, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	require.NoError(t, err)
	require.NotNil(t, a.Recommendation)
	// Keyword fallback over the profile lands on the data track.
	assert.Equal(t, "ANALÍTICA DE DATOS Y DECISIÓN EMPRESARIAL", a.Recommendation.PrimarySpecialization)
	// Out-of-range score is clamped, empty reasoning gets a default.
	assert.Equal(t, 100, a.Recommendation.MatchScore)
	assert.NotEmpty(t, a.Recommendation.Reasoning)
}

func TestGetEnforcesOwnership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	model := &scriptedModel{replies: []string{profileJSON, recommendationJSON}}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	a, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	require.NoError(t, err)

	_, err = uc.Get(ctx, uuid.New(), a.ID)
	assert.ErrorIs(t, err, analysis.ErrNotFound)

	got, err := uc.Get(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	second := `{"primarySpecialization": "TECNOLOGÍA", "primarySpecializationId": "tecnologia", "matchScore": 80, "reasoning": "Otro ángulo."}`
	model := &scriptedModel{replies: []string{profileJSON, recommendationJSON, second}}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	a, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	require.NoError(t, err)

	regen, err := uc.Regenerate(ctx, owner, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "TECNOLOGÍA", regen.Recommendation.PrimarySpecialization)
	// The stored profile is reused, not re-extracted.
	assert.Equal(t, "Ana García", regen.Profile.Name)
	assert.Equal(t, analysis.StatusCompleted, regen.Status)
}

func TestRegenerateRequiresCompletedAnalysis(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	owner := seedOwner(t, store)
	model := &scriptedModel{err: errors.New("down")}
	uc := analysis.NewService(store.Analyses(), store.Accounts(), model)

	_, err := uc.AnalyzeLinkedIn(ctx, owner, "https://linkedin.com/in/ana", longSummary())
	require.Error(t, err)
	list, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = uc.Regenerate(ctx, owner, list[0].ID)
	assert.ErrorIs(t, err, analysis.ErrNoProfile)
}
