// Package generation turns raw research text into structured infographic
// content using an OpenAI-compatible chat completions backend.
package generation

import (
	"context"

	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/errors"
)

// ErrPDFNotSupported is returned when a caller submits a PDF instead of raw
// text. Extraction happens client-side for now.
var ErrPDFNotSupported = errors.Validation("PDF extraction not implemented - please paste text directly")

// Generator produces infographic content from a research paper.
type Generator interface {
	Generate(ctx context.Context, researchText, researcherNotes string) (*domain.InfographicContent, error)
}

// ExtractTextFromPDF would extract plain text from a PDF upload.
// Not implemented; callers must supply raw text.
func ExtractTextFromPDF(_ []byte) (string, error) {
	return "", ErrPDFNotSupported
}

const (
	minStatistics   = 3
	maxStatistics   = 5
	minSolutionPage = 3
)

// ValidateContent checks that a generated document is complete enough to
// persist. Every field the infographic renderer needs must be present;
// a partial document fails the whole submission. An incomplete document
// is an upstream model failure, not a caller mistake, so these surface
// as internal errors.
func ValidateContent(c *domain.InfographicContent) error {
	if c.Overview.Title == "" {
		return errors.Internal("generated overview is missing a title")
	}
	if c.Overview.Summary == "" {
		return errors.Internal("generated overview is missing a summary")
	}
	if n := len(c.Overview.Statistics); n < minStatistics || n > maxStatistics {
		return errors.Internalf("generated overview needs %d-%d statistics, got %d", minStatistics, maxStatistics, n)
	}
	for i, stat := range c.Overview.Statistics {
		if stat.Value == "" || stat.Label == "" {
			return errors.Internalf("generated statistic %d is missing a value or label", i+1)
		}
	}
	if len(c.Overview.Sources) == 0 {
		return errors.Internal("generated overview has no sources")
	}
	if len(c.Overview.Conclusions) == 0 {
		return errors.Internal("generated overview has no conclusions")
	}

	if c.Methods.Methodology == "" {
		return errors.Internal("generated methods section is missing the methodology")
	}
	if c.Methods.Participants == "" {
		return errors.Internal("generated methods section is missing the participants")
	}
	if c.Methods.StudyDesign == "" {
		return errors.Internal("generated methods section is missing the study design")
	}
	if len(c.Methods.TechnicalTerms) == 0 {
		return errors.Internal("generated methods section has no technical terms")
	}

	if len(c.Solutions) < minSolutionPage {
		return errors.Internalf("need at least %d solution pages, got %d", minSolutionPage, len(c.Solutions))
	}
	for i, page := range c.Solutions {
		if page.Badge <= 0 {
			return errors.Internalf("solution page %d has no badge number", i+1)
		}
		if page.Title == "" {
			return errors.Internalf("solution page %d is missing a title", i+1)
		}
		if len(page.Steps) == 0 {
			return errors.Internalf("solution page %d has no steps", i+1)
		}
	}

	return nil
}
