package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/account"
)

// Create inserts the account, enforcing case-insensitive email uniqueness
// through the secondary index under the same lock.
func (r *accountRepo) Create(_ context.Context, a account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := account.NormalizeEmail(a.Email)
	if _, taken := r.emailIndex[email]; taken {
		return account.ErrDuplicateEmail
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.Email = email
	r.accounts[a.ID] = a
	r.emailIndex[email] = a.ID
	return nil
}

func (r *accountRepo) GetByEmail(_ context.Context, email string) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIndex[account.NormalizeEmail(email)]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *accountRepo) GetByID(_ context.Context, id uuid.UUID) (account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (r *accountRepo) Update(_ context.Context, id uuid.UUID, upd account.Update) (account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Role != nil {
		a.Role = *upd.Role
	}
	if upd.IsActive != nil {
		a.IsActive = *upd.IsActive
	}
	if upd.PasswordHash != nil {
		a.PasswordHash = *upd.PasswordHash
	}
	if upd.AnalysisID != nil {
		a.AnalysisID = upd.AnalysisID
	}
	if upd.RecommendedTrack != nil {
		a.RecommendedTrack = upd.RecommendedTrack
	}
	if upd.LastLogin != nil {
		a.LastLogin = upd.LastLogin
	}
	a.UpdatedAt = r.now()
	r.accounts[id] = a
	return a, nil
}
