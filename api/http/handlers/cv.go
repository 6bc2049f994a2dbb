package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lar-university/advisor/api/http/presenter"
	"github.com/lar-university/advisor/pkg/analysis"
)

type CVHandler struct {
	svc      analysis.UseCase
	maxBytes int64
	baseDir  string
}

func NewCVHandler(svc analysis.UseCase, maxUploadMB int, uploadDir string) *CVHandler {
	return &CVHandler{
		svc:      svc,
		maxBytes: int64(maxUploadMB) << 20,
		baseDir:  uploadDir,
	}
}

// Upload accepts a CV document and runs the full analysis pipeline.
// @Summary Analyze uploaded CV
// @Tags    cv
// @Accept  multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param   file formData file true "CV file (pdf, docx or csv)"
// @Success 200 {object} analysis.Analysis
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /cv/upload [post]
func (h *CVHandler) Upload(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, docx or csv)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".csv" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf, docx and csv are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	if err := os.MkdirAll(h.baseDir, 0o755); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to prepare storage")
	}
	stored := uuid.New().String() + ext
	dst := filepath.Join(h.baseDir, stored)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to store file")
	}

	info := analysis.FileInfo{
		Filename:     stored,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Path:         dst,
	}
	a, err := h.svc.AnalyzeUpload(c.Context(), userID, info, data)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

type linkedinRequest struct {
	LinkedInURL    string `json:"linkedinUrl"`
	ProfileSummary string `json:"profileSummary"`
}

// LinkedIn analyzes a pasted profile summary. Profiles cannot be scraped
// directly, so a too-short summary asks the client for manual input instead
// of creating a failed record.
// @Summary Analyze LinkedIn profile summary
// @Tags    cv
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body linkedinRequest true "profile payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /cv/linkedin [post]
func (h *CVHandler) LinkedIn(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	var req linkedinRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.LinkedInURL) == "" {
		return presenter.Error(c, http.StatusBadRequest, "linkedinUrl is required")
	}

	a, err := h.svc.AnalyzeLinkedIn(c.Context(), userID, req.LinkedInURL, req.ProfileSummary)
	if errors.Is(err, analysis.ErrSummaryTooShort) {
		return presenter.JSON(c, http.StatusOK, fiber.Map{
			"requiresManualInput": true,
			"message":             "Pega un resumen de tu perfil de LinkedIn (mínimo 50 caracteres) para poder analizarlo.",
		})
	}
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

// Analyses lists the caller's analysis history, newest first.
// @Summary List analyses
// @Tags    cv
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analysis.Analysis
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cv/analyses [get]
func (h *CVHandler) Analyses(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	list, err := h.svc.List(c.Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, list)
}

// Analysis returns one analysis by id.
// @Summary Get analysis
// @Tags    cv
// @Produce json
// @Security BearerAuth
// @Param   id path string true "analysis id"
// @Success 200 {object} analysis.Analysis
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cv/analyses/{id} [get]
func (h *CVHandler) Analysis(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid analysis id")
	}
	a, err := h.svc.Get(c.Context(), userID, id)
	if err != nil {
		return domainError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
