package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound covers unknown, inactive and foreign-owned conversations alike;
// callers must not be able to tell "not found" from "not owned".
var ErrNotFound = errors.New("conversation not found")

// Repository is the persistence port for conversations.
type Repository interface {
	Create(ctx context.Context, c Conversation) error
	// GetByID has no ownership filter; internal use only.
	GetByID(ctx context.Context, id uuid.UUID) (Conversation, error)
	// GetForOwner returns the conversation only if it exists, is active and
	// belongs to ownerID.
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Conversation, error)
	// ListByOwner pages active conversations, most recently updated first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) (Page, error)
	// AppendMessage assigns the message id and timestamp, preserves insertion
	// order and bumps the conversation's UpdatedAt.
	AppendMessage(ctx context.Context, conversationID uuid.UUID, m Message) (Message, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (Conversation, error)
	// SoftDelete flips IsActive only; the record itself is never removed.
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
