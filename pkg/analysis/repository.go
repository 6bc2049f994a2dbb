package analysis

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned for any lookup by unknown identifier.
var ErrNotFound = errors.New("analysis not found")

// Repository is the persistence port for analyses. Records are never deleted;
// per-account history is permanent for the lifetime of the process.
type Repository interface {
	Create(ctx context.Context, a Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (Analysis, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (Analysis, error)
	// ListByOwner returns all analyses of an owner, newest first, any status.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Analysis, error)
	// LatestCompleted returns the newest completed analysis of an owner.
	LatestCompleted(ctx context.Context, ownerID uuid.UUID) (Analysis, error)
	CountCompletedByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
}
