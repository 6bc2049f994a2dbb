package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
	"github.com/lar-university/advisor/pkg/llm"
	"github.com/lar-university/advisor/pkg/repository/memory"
)

// fakeModel records the dialogue it was given and replies with a canned line.
type fakeModel struct {
	reply    string
	lastSent []llm.Message
}

func (f *fakeModel) Ask(_ context.Context, _, _ string) (string, error)  { return f.reply, nil }
func (f *fakeModel) AskJSON(_ context.Context, _ string) (string, error) { return f.reply, nil }
func (f *fakeModel) Converse(_ context.Context, msgs []llm.Message) (string, error) {
	f.lastSent = msgs
	return f.reply, nil
}

func newChatService(t *testing.T) (chat.UseCase, *memory.Store, *fakeModel, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	model := &fakeModel{reply: "¡Claro que sí! 🚀"}
	uc := chat.NewService(store.Chats(), store.Analyses(), model)
	return uc, store, model, uuid.New()
}

func TestCreateDefaultTitle(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)

	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Nueva conversación", conv.Title)
	assert.False(t, conv.TitleGenerated)
	assert.Empty(t, conv.Messages)
	assert.True(t, conv.IsActive)

	named, err := uc.Create(ctx, owner, "Plan 2026", nil)
	require.NoError(t, err)
	assert.Equal(t, "Plan 2026", named.Title)
	assert.True(t, named.TitleGenerated)
}

func TestSendMessageAutoTitle(t *testing.T) {
	ctx := context.Background()
	uc, _, model, owner := newChatService(t)

	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	ex, err := uc.SendMessage(ctx, owner, conv.ID, "¿Qué especialización me recomiendas?", nil)
	require.NoError(t, err)
	assert.Equal(t, chat.RoleUser, ex.UserMessage.Role)
	assert.Equal(t, "¡Claro que sí! 🚀", ex.AssistantMessage.Content)

	got, err := uc.Get(ctx, owner, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "¿Qué especialización me recomiendas?", got.Title)
	assert.True(t, got.TitleGenerated)
	require.Len(t, got.Messages, 2)

	// The dialogue sent to the model starts with the advisor persona.
	require.NotEmpty(t, model.lastSent)
	assert.Equal(t, llm.RoleSystem, model.lastSent[0].Role)
	assert.Contains(t, model.lastSent[0].Content, "LAR Advisor")
}

func TestSendMessageLongTitleTruncated(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)
	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	long := strings.Repeat("á", 80)
	_, err = uc.SendMessage(ctx, owner, conv.ID, long, nil)
	require.NoError(t, err)

	got, err := uc.Get(ctx, owner, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("á", 60)+"...", got.Title)
}

func TestSendMessageQuestionLimit(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)
	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, owner, conv.ID, "primera pregunta", nil)
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, owner, conv.ID, "segunda pregunta", nil)
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, owner, conv.ID, "tercera pregunta", nil)
	assert.ErrorIs(t, err, chat.ErrQuestionLimit)

	// Two questions plus two replies; the rejected one left no trace.
	got, err := uc.Get(ctx, owner, conv.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 4)
}

func TestSendMessageValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)
	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, owner, conv.ID, "   ", nil)
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	_, err = uc.SendMessage(ctx, owner, uuid.New(), "hola", nil)
	assert.ErrorIs(t, err, chat.ErrNotFound)

	_, err = uc.SendMessage(ctx, uuid.New(), conv.ID, "hola", nil)
	assert.ErrorIs(t, err, chat.ErrNotFound)
}

func TestSendMessageWithAnalysisContext(t *testing.T) {
	ctx := context.Background()
	uc, store, model, owner := newChatService(t)

	// Seed a completed analysis with profile and recommendation.
	a := analysis.Analysis{
		ID:      uuid.New(),
		OwnerID: owner,
		Source:  analysis.SourcePDF,
		Status:  analysis.StatusPending,
	}
	require.NoError(t, store.Analyses().Create(ctx, a))
	processing := analysis.StatusProcessing
	_, err := store.Analyses().Update(ctx, a.ID, analysis.Update{Status: &processing})
	require.NoError(t, err)
	completed := analysis.StatusCompleted
	profile := analysis.Profile{Name: "Ana", CurrentRole: "Data Analyst", Industry: "Banca", Skills: []string{"SQL", "Python"}}
	rec := analysis.Recommendation{
		PrimarySpecialization: "ANALÍTICA DE DATOS",
		MatchScore:            91,
		Subjects:              []string{"Big Data"},
		SprintURL:             "https://lar.university/sprints/analitica-datos",
	}
	_, err = store.Analyses().Update(ctx, a.ID, analysis.Update{Status: &completed, Profile: &profile, Recommendation: &rec})
	require.NoError(t, err)

	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, owner, conv.ID, "¿Por qué ese sprint?", &a.ID)
	require.NoError(t, err)

	system := model.lastSent[0].Content
	assert.Contains(t, system, "Data Analyst")
	assert.Contains(t, system, "ANALÍTICA DE DATOS")

	got, err := uc.Get(ctx, owner, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AnalysisID)
	assert.Equal(t, a.ID, *got.AnalysisID)
	require.NotNil(t, got.FinalRecommendation.Specialization)
	assert.Equal(t, "ANALÍTICA DE DATOS", *got.FinalRecommendation.Specialization)
}

func TestRenameAndDelete(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)
	conv, err := uc.Create(ctx, owner, "", nil)
	require.NoError(t, err)

	renamed, err := uc.Rename(ctx, owner, conv.ID, "Mi plan")
	require.NoError(t, err)
	assert.Equal(t, "Mi plan", renamed.Title)

	_, err = uc.Rename(ctx, owner, conv.ID, "  ")
	assert.ErrorIs(t, err, chat.ErrEmptyTitle)

	require.NoError(t, uc.Delete(ctx, owner, conv.ID))
	_, err = uc.Get(ctx, owner, conv.ID)
	assert.ErrorIs(t, err, chat.ErrNotFound)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	uc, _, _, owner := newChatService(t)

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, owner, "", nil)
		require.NoError(t, err)
	}
	page, err := uc.List(ctx, owner, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 2)
	assert.Zero(t, page.Items[0].MessageCount)
}
