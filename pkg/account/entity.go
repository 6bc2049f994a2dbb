package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "administrator"
)

// Account is a registered user identity. PasswordHash holds the salted
// scrypt credential in "hex(salt):hex(key)" form, never the cleartext.
type Account struct {
	ID               uuid.UUID
	Name             string
	Email            string
	PasswordHash     string
	Role             Role
	IsActive         bool
	AnalysisID       *uuid.UUID
	RecommendedTrack *string
	LastLogin        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// View is the safe projection of an Account: everything except the credential.
type View struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Role             Role       `json:"role"`
	IsActive         bool       `json:"isActive"`
	AnalysisID       *uuid.UUID `json:"cvAnalysisId"`
	RecommendedTrack *string    `json:"recommendedSpecialization"`
	LastLogin        *time.Time `json:"lastLogin"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// SafeView projects an Account without its credential.
func SafeView(a Account) View {
	return View{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		Role:             a.Role,
		IsActive:         a.IsActive,
		AnalysisID:       a.AnalysisID,
		RecommendedTrack: a.RecommendedTrack,
		LastLogin:        a.LastLogin,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// Update lists the fields that are legally mutable after creation.
// Identity and audit fields (id, email, createdAt) are deliberately absent.
type Update struct {
	Name             *string
	Role             *Role
	IsActive         *bool
	PasswordHash     *string
	AnalysisID       *uuid.UUID
	RecommendedTrack *string
	LastLogin        *time.Time
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
