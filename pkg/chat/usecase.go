package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/llm"
)

var (
	ErrEmptyMessage  = errors.New("message content is empty")
	ErrEmptyTitle    = errors.New("title is empty")
	ErrQuestionLimit = errors.New("question limit reached for this conversation")
	ErrModel         = errors.New("the model could not generate a reply")
)

const (
	// maxUserQuestions caps how many user messages a conversation accepts.
	maxUserQuestions = 2
	// historyWindow is how many trailing messages are replayed to the model.
	historyWindow = 20
	// titleMaxLen truncates auto-derived titles.
	titleMaxLen = 60
)

// Exchange is the outcome of one SendMessage round trip.
type Exchange struct {
	UserMessage      Message `json:"userMessage"`
	AssistantMessage Message `json:"assistantMessage"`
}

// UseCase drives conversations with the advisor.
type UseCase interface {
	List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (Page, error)
	Create(ctx context.Context, ownerID uuid.UUID, title string, analysisID *uuid.UUID) (Conversation, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Conversation, error)
	SendMessage(ctx context.Context, ownerID, id uuid.UUID, content string, analysisID *uuid.UUID) (Exchange, error)
	Rename(ctx context.Context, ownerID, id uuid.UUID, title string) (Conversation, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo     Repository
	analyses analysis.Repository
	llm      llm.ChatModel
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, analyses analysis.Repository, model llm.ChatModel) UseCase {
	return &service{repo: repo, analyses: analyses, llm: model}
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (Page, error) {
	return s.repo.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title string, analysisID *uuid.UUID) (Conversation, error) {
	title = strings.TrimSpace(title)
	c := Conversation{
		ID:       uuid.New(),
		OwnerID:  ownerID,
		Title:    title,
		Messages: []Message{},
		FinalRecommendation: Snapshot{
			Subjects: []string{},
		},
		IsActive: true,
	}
	if title == "" {
		c.Title = DefaultTitle
	} else {
		// An explicit title is kept; the first message will not overwrite it.
		c.TitleGenerated = true
	}
	if analysisID != nil {
		if a, err := s.ownedAnalysis(ctx, ownerID, *analysisID); err == nil {
			c.AnalysisID = &a.ID
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Conversation{}, err
	}
	return s.repo.GetForOwner(ctx, ownerID, c.ID)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Conversation, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

// SendMessage appends the user's question, asks the model with the trailing
// history and the linked analysis context, and appends the reply. Each
// conversation accepts at most maxUserQuestions user messages.
func (s *service) SendMessage(ctx context.Context, ownerID, id uuid.UUID, content string, analysisID *uuid.UUID) (Exchange, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Exchange{}, ErrEmptyMessage
	}

	conv, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return Exchange{}, err
	}
	if countUserMessages(conv.Messages) >= maxUserQuestions {
		return Exchange{}, ErrQuestionLimit
	}

	ctxAnalysis := s.resolveContext(ctx, ownerID, conv, analysisID)

	userMsg, err := s.repo.AppendMessage(ctx, conv.ID, Message{
		Role:     RoleUser,
		Content:  content,
		Metadata: MetaText,
	})
	if err != nil {
		return Exchange{}, err
	}

	upd := Update{}
	if !conv.TitleGenerated && len(conv.Messages) == 0 {
		title := deriveTitle(content)
		generated := true
		upd.Title = &title
		upd.TitleGenerated = &generated
	}
	if analysisID != nil && conv.AnalysisID == nil && ctxAnalysis != nil {
		upd.AnalysisID = &ctxAnalysis.ID
	}
	if ctxAnalysis != nil && conv.FinalRecommendation.Specialization == nil {
		upd.FinalRecommendation = snapshotOf(ctxAnalysis.Recommendation)
	}
	if upd != (Update{}) {
		if _, err := s.repo.Update(ctx, conv.ID, upd); err != nil {
			return Exchange{}, err
		}
	}

	history := conv.Messages
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	reply, err := s.llm.Converse(ctx, buildDialogue(ctxAnalysis, history, content))
	if err != nil {
		return Exchange{}, errors.Join(ErrModel, err)
	}

	assistantMsg, err := s.repo.AppendMessage(ctx, conv.ID, Message{
		Role:     RoleAssistant,
		Content:  reply,
		Metadata: MetaText,
	})
	if err != nil {
		return Exchange{}, err
	}
	return Exchange{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (s *service) Rename(ctx context.Context, ownerID, id uuid.UUID, title string) (Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Conversation{}, ErrEmptyTitle
	}
	if _, err := s.repo.GetForOwner(ctx, ownerID, id); err != nil {
		return Conversation{}, err
	}
	generated := true
	return s.repo.Update(ctx, id, Update{Title: &title, TitleGenerated: &generated})
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, ownerID, id)
}

// resolveContext picks the analysis whose profile feeds the system prompt:
// the explicit id wins over the conversation link. Only completed analyses
// owned by the caller qualify.
func (s *service) resolveContext(ctx context.Context, ownerID uuid.UUID, conv Conversation, analysisID *uuid.UUID) *analysis.Analysis {
	id := conv.AnalysisID
	if analysisID != nil {
		id = analysisID
	}
	if id == nil {
		return nil
	}
	a, err := s.ownedAnalysis(ctx, ownerID, *id)
	if err != nil || a.Status != analysis.StatusCompleted {
		return nil
	}
	return &a
}

func (s *service) ownedAnalysis(ctx context.Context, ownerID, id uuid.UUID) (analysis.Analysis, error) {
	a, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		return analysis.Analysis{}, err
	}
	if a.OwnerID != ownerID {
		return analysis.Analysis{}, analysis.ErrNotFound
	}
	return a, nil
}

func buildDialogue(a *analysis.Analysis, history []Message, content string) []llm.Message {
	var profile *analysis.Profile
	var rec *analysis.Recommendation
	if a != nil {
		profile = a.Profile
		rec = a.Recommendation
	}
	out := make([]llm.Message, 0, len(history)+2)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: systemPrompt(profile, rec)})
	for _, m := range history {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	out = append(out, llm.Message{Role: llm.RoleUser, Content: content})
	return out
}

func countUserMessages(msgs []Message) int {
	n := 0
	for _, m := range msgs {
		if m.Role == RoleUser {
			n++
		}
	}
	return n
}

// deriveTitle turns the first user message into a conversation title.
func deriveTitle(content string) string {
	if utf8.RuneCountInString(content) <= titleMaxLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:titleMaxLen]) + "..."
}

func snapshotOf(rec *analysis.Recommendation) *Snapshot {
	if rec == nil {
		return nil
	}
	spec := rec.PrimarySpecialization
	url := rec.SprintURL
	score := rec.MatchScore
	subjects := rec.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return &Snapshot{
		Specialization: &spec,
		SprintURL:      &url,
		Subjects:       subjects,
		MatchScore:     &score,
	}
}
