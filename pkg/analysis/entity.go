package analysis

import (
	"time"

	"github.com/google/uuid"
)

// SourceKind is the closed set of analysis inputs.
type SourceKind string

const (
	SourcePDF      SourceKind = "pdf"
	SourceDocx     SourceKind = "docx"
	SourceCSV      SourceKind = "csv"
	SourceLinkedIn SourceKind = "linkedin"
)

// FileInfo describes an uploaded source document.
type FileInfo struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// Profile is the structured representation the model extracts from a CV.
type Profile struct {
	Name              string           `json:"name"`
	CurrentRole       string           `json:"currentRole"`
	YearsOfExperience int              `json:"yearsOfExperience"`
	Industry          string           `json:"industry"`
	Skills            []string         `json:"skills"`
	Education         []EducationItem  `json:"education"`
	Experience        []ExperienceItem `json:"experience"`
	Languages         []string         `json:"languages"`
	Certifications    []string         `json:"certifications"`
	Summary           string           `json:"summary"`
}

type EducationItem struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

type ExperienceItem struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Recommendation is the snapshot stored once an analysis completes. Subjects
// and SprintURL come from the resolved catalog entry, never from the model.
type Recommendation struct {
	PrimarySpecialization    string   `json:"primarySpecialization"`
	SecondarySpecializations []string `json:"secondarySpecializations"`
	MatchScore               int      `json:"matchScore"`
	Reasoning                string   `json:"reasoning"`
	Subjects                 []string `json:"subjects"`
	SprintURL                string   `json:"sprintUrl"`
}

// Analysis records one CV/profile analysis attempt. Profile and
// Recommendation are populated if and only if Status is completed;
// ErrorMessage if and only if Status is failed.
type Analysis struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"ownerId"`
	Source         SourceKind      `json:"sourceType"`
	File           *FileInfo       `json:"file,omitempty"`
	LinkedInURL    *string         `json:"linkedinUrl,omitempty"`
	RawText        string          `json:"-"`
	Profile        *Profile        `json:"extractedProfile"`
	Recommendation *Recommendation `json:"recommendation"`
	Status         Status          `json:"status"`
	ErrorMessage   *string         `json:"errorMessage,omitempty"`
	ProcessedAt    *time.Time      `json:"processedAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Update lists the fields that may change after creation. Status changes are
// validated against the transition graph by the repository.
type Update struct {
	Status         *Status
	RawText        *string
	Profile        *Profile
	Recommendation *Recommendation
	ErrorMessage   *string
	ProcessedAt    *time.Time
}
