package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/analysis"
)

func (r *analysisRepo) Create(_ context.Context, a analysis.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = analysis.StatusPending
	}
	r.analyses[a.ID] = a
	return nil
}

func (r *analysisRepo) GetByID(_ context.Context, id uuid.UUID) (analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.analyses[id]
	if !ok {
		return analysis.Analysis{}, analysis.ErrNotFound
	}
	return a, nil
}

// Update applies the patch. Status changes are checked against the transition
// graph; an illegal step rejects the whole patch.
func (r *analysisRepo) Update(_ context.Context, id uuid.UUID, upd analysis.Update) (analysis.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.analyses[id]
	if !ok {
		return analysis.Analysis{}, analysis.ErrNotFound
	}
	if upd.Status != nil && *upd.Status != a.Status {
		if !a.Status.CanTransition(*upd.Status) {
			return analysis.Analysis{}, analysis.ErrInvalidTransition
		}
		a.Status = *upd.Status
	}
	if upd.RawText != nil {
		a.RawText = *upd.RawText
	}
	if upd.Profile != nil {
		a.Profile = upd.Profile
	}
	if upd.Recommendation != nil {
		a.Recommendation = upd.Recommendation
	}
	if upd.ErrorMessage != nil {
		a.ErrorMessage = upd.ErrorMessage
	}
	if upd.ProcessedAt != nil {
		a.ProcessedAt = upd.ProcessedAt
	}
	a.UpdatedAt = r.now()
	r.analyses[id] = a
	return a, nil
}

func (r *analysisRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]analysis.Analysis, 0)
	for _, a := range r.analyses {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *analysisRepo) LatestCompleted(_ context.Context, ownerID uuid.UUID) (analysis.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *analysis.Analysis
	for _, a := range r.analyses {
		if a.OwnerID != ownerID || a.Status != analysis.StatusCompleted {
			continue
		}
		a := a
		if best == nil || a.CreatedAt.After(best.CreatedAt) {
			best = &a
		}
	}
	if best == nil {
		return analysis.Analysis{}, analysis.ErrNotFound
	}
	return *best, nil
}

func (r *analysisRepo) CountCompletedByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.analyses {
		if a.OwnerID == ownerID && a.Status == analysis.StatusCompleted {
			n++
		}
	}
	return n, nil
}
