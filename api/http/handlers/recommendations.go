package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/analysis"
	"github.com/lar-university/advisor/pkg/catalog"
)

// RecommendationHandler serves the public catalog and per-account
// recommendation endpoints.
type RecommendationHandler struct {
	svc analysis.UseCase
}

func NewRecommendationHandler(svc analysis.UseCase) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Specializations lists the full sprint catalog.
// @Summary List specializations
// @Tags    recommendations
// @Produce json
// @Success 200 {array} catalog.Specialization
// @Router  /recommendations/specializations [get]
func (h *RecommendationHandler) Specializations(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, catalog.All())
}

// Specialization returns one catalog entry by id.
// @Summary Get specialization
// @Tags    recommendations
// @Produce json
// @Param   id path string true "specialization id"
// @Success 200 {object} catalog.Specialization
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /recommendations/specializations/{id} [get]
func (h *RecommendationHandler) Specialization(c *fiber.Ctx) error {
	spec, ok := catalog.ByID(c.Params("id"))
	if !ok {
		return presenter.Error(c, http.StatusNotFound, "specialization not found")
	}
	return presenter.JSON(c, http.StatusOK, spec)
}

// Me returns the caller's newest completed analysis with its recommendation.
// @Summary Current recommendation
// @Tags    recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /recommendations/me [get]
func (h *RecommendationHandler) Me(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	a, err := h.svc.LatestCompleted(c.Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

type regenerateRequest struct {
	AnalysisID uuid.UUID `json:"analysisId"`
}

// Regenerate re-runs the recommendation step over a completed analysis.
// @Summary Regenerate recommendation
// @Tags    recommendations
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body regenerateRequest true "analysis reference"
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /recommendations/regenerate [post]
func (h *RecommendationHandler) Regenerate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req regenerateRequest
	if err := c.BodyParser(&req); err != nil || req.AnalysisID == uuid.Nil {
		// Default to the newest completed analysis when no id is given.
		latest, lerr := h.svc.LatestCompleted(c.Context(), userID)
		if lerr != nil {
			return domainError(c, lerr)
		}
		req.AnalysisID = latest.ID
	}
	a, err := h.svc.Regenerate(c.Context(), userID, req.AnalysisID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}
