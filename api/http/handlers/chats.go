package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/chat"
)

type ChatHandler struct {
	useCase chat.UseCase
}

func NewChatHandler(useCase chat.UseCase) *ChatHandler {
	return &ChatHandler{useCase: useCase}
}

// List returns the caller's active conversations, newest activity first.
// @Summary List conversations
// @Tags    chats
// @Produce json
// @Security BearerAuth
// @Param   page     query int false "page number"
// @Param   pageSize query int false "page size (max 100)"
// @Success 200 {object} chat.Page
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /chats [get]
func (h *ChatHandler) List(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	page, pageSize := parsePage(c, 10)
	result, err := h.useCase.List(c.Context(), userID, page, pageSize)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, result)
}

type createChatRequest struct {
	Title        string     `json:"title"`
	CVAnalysisID *uuid.UUID `json:"cvAnalysisId"`
}

// Create starts a new conversation, optionally linked to an analysis.
// @Summary Create conversation
// @Tags    chats
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createChatRequest true "conversation payload"
// @Success 201 {object} chat.Conversation
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /chats [post]
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req createChatRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		}
	}
	conv, err := h.useCase.Create(c.Context(), userID, req.Title, req.CVAnalysisID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, conv)
}

// Get returns one conversation with its full message history.
// @Summary Get conversation
// @Tags    chats
// @Produce json
// @Security BearerAuth
// @Param   id path string true "conversation id"
// @Success 200 {object} chat.Conversation
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /chats/{id} [get]
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	conv, err := h.useCase.Get(c.Context(), userID, id)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, conv)
}

type sendMessageRequest struct {
	Content      string     `json:"content"`
	CVAnalysisID *uuid.UUID `json:"cvAnalysisId"`
}

// SendMessage appends a question and returns the advisor's reply.
// @Summary Send message
// @Tags    chats
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string             true "conversation id"
// @Param   input body sendMessageRequest true "message payload"
// @Success 200 {object} chat.Exchange
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	exchange, err := h.useCase.SendMessage(c.Context(), userID, id, req.Content, req.CVAnalysisID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, exchange)
}

type renameChatRequest struct {
	Title string `json:"title"`
}

// Rename sets an explicit conversation title.
// @Summary Rename conversation
// @Tags    chats
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string            true "conversation id"
// @Param   input body renameChatRequest true "title payload"
// @Success 200 {object} chat.Conversation
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /chats/{id}/title [put]
func (h *ChatHandler) Rename(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	var req renameChatRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	conv, err := h.useCase.Rename(c.Context(), userID, id, req.Title)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, conv)
}

// Delete soft-deletes a conversation.
// @Summary Delete conversation
// @Tags    chats
// @Produce json
// @Security BearerAuth
// @Param   id path string true "conversation id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /chats/{id} [delete]
func (h *ChatHandler) Delete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	if err := h.useCase.Delete(c.Context(), userID, id); err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "conversation deleted"})
}
