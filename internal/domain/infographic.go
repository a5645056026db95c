package domain

import "time"

// InfographicStatus represents where a submission is in the review workflow.
type InfographicStatus string

const (
	// StatusPending is the initial state of every submission.
	StatusPending InfographicStatus = "pending"
	// StatusApproved means an admin accepted the infographic for the feeds.
	StatusApproved InfographicStatus = "approved"
	// StatusRejected means an admin turned the infographic down with a reason.
	StatusRejected InfographicStatus = "rejected"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s InfographicStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Statistic is a single headline number in the overview section.
type Statistic struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OverviewSection is the general-audience summary of the paper.
type OverviewSection struct {
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Statistics  []Statistic `json:"statistics"`
	Sources     []string    `json:"sources"`
	Conclusions []string    `json:"conclusions"`
}

// MethodsSection explains the study for a research-literate audience.
type MethodsSection struct {
	Methodology    string   `json:"methodology"`
	Participants   string   `json:"participants"`
	TechnicalTerms []string `json:"technical_terms"`
	StudyDesign    string   `json:"study_design"`
}

// SolutionPage is one "here's what you can do" page for laypeople.
// Badge is the page number shown on the infographic.
type SolutionPage struct {
	Badge int      `json:"badge"`
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

// InfographicContent holds the three generated sections of an infographic.
type InfographicContent struct {
	Overview  OverviewSection `json:"overview"`
	Methods   MethodsSection  `json:"methods"`
	Solutions []SolutionPage  `json:"solutions"`
}

// Infographic is a researcher-submitted, AI-generated document moving
// through the pending/approved/rejected review workflow. Content is
// written once at submission; only review fields mutate afterwards.
type Infographic struct {
	ID           string             `json:"id"`
	ResearcherID string             `json:"researcher_id"`
	Status       InfographicStatus  `json:"status"`
	Content      InfographicContent `json:"content"`

	// Kept for reference and audit; never re-processed.
	OriginalPaperText string `json:"original_paper_text,omitempty"`
	ResearcherNotes   string `json:"researcher_notes,omitempty"`

	// Review fields, set exactly once by an admin.
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tags is denormalized for API responses; not always populated.
	Tags []*Tag `json:"tags,omitempty"`
}

// IsPending returns true if the infographic is awaiting review.
func (i *Infographic) IsPending() bool {
	return i.Status == StatusPending
}

// IsReviewed returns true once the infographic reached a terminal state.
// Approved and rejected are both terminal; there is no path back to pending.
func (i *Infographic) IsReviewed() bool {
	return i.Status == StatusApproved || i.Status == StatusRejected
}

// Touch updates the UpdatedAt timestamp to the current time.
func (i *Infographic) Touch() {
	i.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (i *Infographic) InitTimestamps() {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}
