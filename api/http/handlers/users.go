package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/chat"
)

// UserHandler serves the profile aggregate and account deactivation.
type UserHandler struct {
	accounts account.UseCase
	chats    chat.Repository
	analyses analysis.Repository
}

func NewUserHandler(accounts account.UseCase, chats chat.Repository, analyses analysis.Repository) *UserHandler {
	return &UserHandler{accounts: accounts, chats: chats, analyses: analyses}
}

// Profile returns the safe account view plus activity counters.
// @Summary Profile with activity stats
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	a, err := h.accounts.Get(c.Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	conversations, err := h.chats.CountActiveByOwner(c.Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	analyses, err := h.analyses.CountCompletedByOwner(c.Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user": account.SafeView(a),
		"stats": fiber.Map{
			"activeConversations": conversations,
			"completedAnalyses":   analyses,
		},
	})
}

// DeleteAccount deactivates the calling account. Records stay in the store;
// the account simply stops authenticating.
// @Summary Deactivate account
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/account [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	if err := h.accounts.Deactivate(c.Context(), userID); err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "account deactivated"})
}
