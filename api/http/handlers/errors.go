package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
	"github.com/lar-university/advisor/pkg/extract"
	"github.com/lar-university/advisor/pkg/security/jwt"
)

// domainError maps domain sentinels onto HTTP statuses. Anything unmapped is
// a 500 with a generic message; internals never leak.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, chat.ErrNotFound),
		errors.Is(err, analysis.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, account.ErrDuplicateEmail):
		return presenter.Error(c, http.StatusConflict, "email already registered")
	case errors.Is(err, account.ErrInvalidCredentials):
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, account.ErrInactiveAccount):
		return presenter.Error(c, http.StatusUnauthorized, "account is deactivated")
	case errors.Is(err, account.ErrPasswordTooShort):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrEmptyTitle):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrQuestionLimit):
		return presenter.Error(c, http.StatusTooManyRequests, "question limit reached for this conversation")
	case errors.Is(err, analysis.ErrExtraction), errors.Is(err, extract.ErrUnsupportedFormat),
		errors.Is(err, extract.ErrEmptyContent), errors.Is(err, analysis.ErrSummaryTooShort):
		return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, analysis.ErrModel), errors.Is(err, chat.ErrModel):
		return presenter.Error(c, http.StatusBadGateway, "the advisor model is unavailable, try again later")
	case errors.Is(err, analysis.ErrNoProfile):
		return presenter.Error(c, http.StatusConflict, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}

// currentUserID reads the account id the auth middleware stored in Locals.
func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(jwt.LocalsUserID).(uuid.UUID)
	return id, ok
}
