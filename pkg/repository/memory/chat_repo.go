package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/chat"
)

func (r *chatRepo) Create(_ context.Context, c chat.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := r.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Messages == nil {
		c.Messages = []chat.Message{}
	}
	r.chats[c.ID] = cloneConversation(c)
	return nil
}

func (r *chatRepo) GetByID(_ context.Context, id uuid.UUID) (chat.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chats[id]
	if !ok {
		return chat.Conversation{}, chat.ErrNotFound
	}
	return cloneConversation(c), nil
}

func (r *chatRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (chat.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chats[id]
	if !ok || !c.IsActive || c.OwnerID != ownerID {
		return chat.Conversation{}, chat.ErrNotFound
	}
	return cloneConversation(c), nil
}

// ListByOwner pages active conversations of an owner sorted by UpdatedAt
// descending. Total counts all matching conversations, not the page.
func (r *chatRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, page, pageSize int) (chat.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]chat.Conversation, 0)
	for _, c := range r.chats {
		if c.IsActive && c.OwnerID == ownerID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	out := chat.Page{Items: []chat.Summary{}, Total: len(matched)}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return out, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	for _, c := range matched[start:end] {
		out.Items = append(out.Items, chat.Summary{
			ID:                  c.ID,
			Title:               c.Title,
			MessageCount:        len(c.Messages),
			FinalRecommendation: cloneSnapshot(c.FinalRecommendation),
			CreatedAt:           c.CreatedAt,
			UpdatedAt:           c.UpdatedAt,
		})
	}
	return out, nil
}

func (r *chatRepo) AppendMessage(_ context.Context, conversationID uuid.UUID, m chat.Message) (chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[conversationID]
	if !ok || !c.IsActive {
		return chat.Message{}, chat.ErrNotFound
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = r.now()
	}
	c.Messages = append(c.Messages, m)
	c.UpdatedAt = r.now()
	r.chats[conversationID] = c
	return m, nil
}

func (r *chatRepo) Update(_ context.Context, id uuid.UUID, upd chat.Update) (chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[id]
	if !ok || !c.IsActive {
		return chat.Conversation{}, chat.ErrNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.TitleGenerated != nil {
		c.TitleGenerated = *upd.TitleGenerated
	}
	if upd.AnalysisID != nil {
		c.AnalysisID = upd.AnalysisID
	}
	if upd.FinalRecommendation != nil {
		c.FinalRecommendation = cloneSnapshot(*upd.FinalRecommendation)
	}
	c.UpdatedAt = r.now()
	r.chats[id] = c
	return cloneConversation(c), nil
}

func (r *chatRepo) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[id]
	if !ok || !c.IsActive || c.OwnerID != ownerID {
		return chat.ErrNotFound
	}
	c.IsActive = false
	c.UpdatedAt = r.now()
	r.chats[id] = c
	return nil
}

func (r *chatRepo) CountActiveByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, c := range r.chats {
		if c.IsActive && c.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// cloneConversation deep-copies the slices so callers never alias stored state.
func cloneConversation(c chat.Conversation) chat.Conversation {
	msgs := make([]chat.Message, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	c.FinalRecommendation = cloneSnapshot(c.FinalRecommendation)
	return c
}

func cloneSnapshot(s chat.Snapshot) chat.Snapshot {
	if s.Subjects != nil {
		subjects := make([]string, len(s.Subjects))
		copy(subjects, s.Subjects)
		s.Subjects = subjects
	}
	return s
}
