package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/account"
	"github.com/lar-university/advisor/pkg/catalog"
	"github.com/lar-university/advisor/pkg/extract"
	"github.com/lar-university/advisor/pkg/llm"
)

// Errors that callers map to distinct user-facing responses.
var (
	ErrExtraction      = errors.New("could not extract text from the file")
	ErrModel           = errors.New("the model could not process the content")
	ErrNoProfile       = errors.New("analysis has no extracted profile")
	ErrSummaryTooShort = errors.New("linkedin summary is too short to analyze")
)

// minSummaryLen mirrors the upload path's minimum usable content length.
const minSummaryLen = 50

// UseCase drives the CV/profile analysis pipeline.
type UseCase interface {
	AnalyzeUpload(ctx context.Context, ownerID uuid.UUID, file FileInfo, data []byte) (Analysis, error)
	AnalyzeLinkedIn(ctx context.Context, ownerID uuid.UUID, profileURL, summary string) (Analysis, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Analysis, error)
	LatestCompleted(ctx context.Context, ownerID uuid.UUID) (Analysis, error)
	Regenerate(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error)
}

type service struct {
	repo           Repository
	accounts       account.Repository
	llm            llm.ChatModel
	maxPromptChars int
	maxStoredChars int
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository, accounts account.Repository, model llm.ChatModel) UseCase {
	return &service{
		repo:           repo,
		accounts:       accounts,
		llm:            model,
		maxPromptChars: 12_000,
		maxStoredChars: 5_000,
	}
}

// AnalyzeUpload runs the full pipeline over an uploaded document: extract
// text, extract a structured profile, generate a recommendation. The analysis
// record tracks progress through the status machine and ends in completed or
// failed exactly once.
func (s *service) AnalyzeUpload(ctx context.Context, ownerID uuid.UUID, file FileInfo, data []byte) (Analysis, error) {
	a := newAnalysis(ownerID, sourceFromFilename(file.OriginalName))
	a.File = &file
	if err := s.repo.Create(ctx, a); err != nil {
		return Analysis{}, err
	}
	if _, err := s.transition(ctx, a.ID, StatusProcessing); err != nil {
		return Analysis{}, err
	}

	res, err := extract.ExtractText(file.OriginalName, data)
	if err != nil {
		s.fail(ctx, a.ID, err.Error())
		return Analysis{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return s.analyzeText(ctx, ownerID, a.ID, res.Text)
}

// AnalyzeLinkedIn analyzes a pasted profile summary. Direct scraping is not
// available, so the caller collects the summary text from the user.
func (s *service) AnalyzeLinkedIn(ctx context.Context, ownerID uuid.UUID, profileURL, summary string) (Analysis, error) {
	summary = strings.TrimSpace(summary)
	if len(summary) < minSummaryLen {
		return Analysis{}, ErrSummaryTooShort
	}
	a := newAnalysis(ownerID, SourceLinkedIn)
	a.LinkedInURL = &profileURL
	if err := s.repo.Create(ctx, a); err != nil {
		return Analysis{}, err
	}
	if _, err := s.transition(ctx, a.ID, StatusProcessing); err != nil {
		return Analysis{}, err
	}
	return s.analyzeText(ctx, ownerID, a.ID, summary)
}

func (s *service) analyzeText(ctx context.Context, ownerID, id uuid.UUID, text string) (Analysis, error) {
	prompt := text
	if len(prompt) > s.maxPromptChars {
		prompt = prompt[:s.maxPromptChars]
	}

	profile, err := s.extractProfile(ctx, prompt)
	if err != nil {
		s.fail(ctx, id, "Error al extraer perfil con IA")
		return Analysis{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	rec, track, err := s.recommend(ctx, profile)
	if err != nil {
		s.fail(ctx, id, "Error al generar recomendación")
		return Analysis{}, fmt.Errorf("%w: %v", ErrModel, err)
	}

	raw := text
	if len(raw) > s.maxStoredChars {
		raw = raw[:s.maxStoredChars]
	}
	now := time.Now().UTC()
	status := StatusCompleted
	updated, err := s.repo.Update(ctx, id, Update{
		Status:         &status,
		RawText:        &raw,
		Profile:        &profile,
		Recommendation: &rec,
		ProcessedAt:    &now,
	})
	if err != nil {
		return Analysis{}, err
	}

	// Back-reference on the owning account: latest analysis + recommended track.
	_, _ = s.accounts.Update(ctx, ownerID, account.Update{
		AnalysisID:       &updated.ID,
		RecommendedTrack: &track.Name,
	})
	return updated, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Analysis{}, err
	}
	if a.OwnerID != ownerID {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Analysis, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) LatestCompleted(ctx context.Context, ownerID uuid.UUID) (Analysis, error) {
	return s.repo.LatestCompleted(ctx, ownerID)
}

// Regenerate re-runs only the recommendation step over the stored profile of
// a completed analysis.
func (s *service) Regenerate(ctx context.Context, ownerID, id uuid.UUID) (Analysis, error) {
	a, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return Analysis{}, err
	}
	if a.Status != StatusCompleted || a.Profile == nil {
		return Analysis{}, ErrNoProfile
	}
	rec, track, err := s.recommend(ctx, *a.Profile)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrModel, err)
	}
	updated, err := s.repo.Update(ctx, id, Update{Recommendation: &rec})
	if err != nil {
		return Analysis{}, err
	}
	_, _ = s.accounts.Update(ctx, ownerID, account.Update{RecommendedTrack: &track.Name})
	return updated, nil
}

func (s *service) extractProfile(ctx context.Context, text string) (Profile, error) {
	raw, err := s.llm.AskJSON(ctx, extractionPrompt(text))
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := parseJSONObject(raw, &p); err != nil {
		return Profile{}, err
	}
	// Normalize nil slices so stored profiles always marshal as [].
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Education == nil {
		p.Education = []EducationItem{}
	}
	if p.Experience == nil {
		p.Experience = []ExperienceItem{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.Certifications == nil {
		p.Certifications = []string{}
	}
	return p, nil
}

// recommendationPayload is the shape the model is asked to return.
type recommendationPayload struct {
	PrimarySpecialization    string   `json:"primarySpecialization"`
	PrimarySpecializationID  string   `json:"primarySpecializationId"`
	SecondarySpecializations []string `json:"secondarySpecializations"`
	MatchScore               int      `json:"matchScore"`
	Reasoning                string   `json:"reasoning"`
}

func (s *service) recommend(ctx context.Context, p Profile) (Recommendation, catalog.Specialization, error) {
	raw, err := s.llm.AskJSON(ctx, recommendationPrompt(p))
	if err != nil {
		return Recommendation{}, catalog.Specialization{}, err
	}
	var out recommendationPayload
	if err := parseJSONObject(raw, &out); err != nil {
		return Recommendation{}, catalog.Specialization{}, err
	}

	track, ok := catalog.Resolve(out.PrimarySpecializationID, out.PrimarySpecialization)
	if !ok {
		// Model named a track outside the catalog; fall back to keyword match
		// over the profile itself.
		track, _ = catalog.Match(p.Summary + " " + strings.Join(p.Skills, " "))
	}
	if out.SecondarySpecializations == nil {
		out.SecondarySpecializations = []string{}
	}
	rec := Recommendation{
		PrimarySpecialization:    track.Name,
		SecondarySpecializations: out.SecondarySpecializations,
		MatchScore:               clampScore(out.MatchScore),
		Reasoning:                orDefault(out.Reasoning, "No se pudo generar un razonamiento detallado."),
		Subjects:                 track.Subjects,
		SprintURL:                track.SprintURL,
	}
	return rec, track, nil
}

func (s *service) transition(ctx context.Context, id uuid.UUID, next Status) (Analysis, error) {
	return s.repo.Update(ctx, id, Update{Status: &next})
}

func (s *service) fail(ctx context.Context, id uuid.UUID, msg string) {
	status := StatusFailed
	_, _ = s.repo.Update(ctx, id, Update{Status: &status, ErrorMessage: &msg})
}

func newAnalysis(ownerID uuid.UUID, source SourceKind) Analysis {
	now := time.Now().UTC()
	return Analysis{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Source:    source,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func sourceFromFilename(name string) SourceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return SourceCSV
	case ".docx":
		return SourceDocx
	default:
		return SourcePDF
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// parseJSONObject unmarshals raw into v, tolerating replies where the JSON
// object is wrapped in prose or a fenced block.
func parseJSONObject(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			return json.Unmarshal([]byte(raw[i:j+1]), v)
		}
	}
	return fmt.Errorf("model reply is not a JSON object")
}
