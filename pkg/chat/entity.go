package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message roles within a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message metadata tags.
const (
	MetaText           = "text"
	MetaUpload         = "upload"
	MetaRecommendation = "recommendation"
)

// DefaultTitle is the placeholder for conversations created without a title.
const DefaultTitle = "Nueva conversación"

// Message is a single append-only entry in a conversation. Insertion order is
// the durable order.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Metadata  string    `json:"metadata,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the final recommendation captured on a conversation once its
// linked analysis completes.
type Snapshot struct {
	Specialization *string  `json:"specialization"`
	SprintURL      *string  `json:"sprintUrl"`
	Subjects       []string `json:"subjects"`
	MatchScore     *int     `json:"matchScore"`
}

// Conversation is a chat session owned by exactly one account. Soft-deleted
// conversations (IsActive false) are hidden from every read path.
type Conversation struct {
	ID                  uuid.UUID  `json:"id"`
	OwnerID             uuid.UUID  `json:"ownerId"`
	Title               string     `json:"title"`
	Messages            []Message  `json:"messages"`
	AnalysisID          *uuid.UUID `json:"cvAnalysisId"`
	FinalRecommendation Snapshot   `json:"finalRecommendation"`
	IsActive            bool       `json:"isActive"`
	TitleGenerated      bool       `json:"titleGenerated"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// Summary is the list-view projection: never the message bodies.
type Summary struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	MessageCount        int       `json:"messageCount"`
	FinalRecommendation Snapshot  `json:"finalRecommendation"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Page is one page of conversation summaries plus the unpaginated total.
type Page struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
}

// Update lists the conversation fields that are mutable after creation.
type Update struct {
	Title               *string
	TitleGenerated      *bool
	AnalysisID          *uuid.UUID
	FinalRecommendation *Snapshot
}
