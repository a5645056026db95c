package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/distillapp/distill-server/internal/config"
	"github.com/distillapp/distill-server/internal/domain"
	"github.com/distillapp/distill-server/internal/errors"
)

// OpenAIClient calls an OpenAI-compatible chat completions API to generate
// infographic documents. One submission is exactly one API call; failed
// generations surface to the researcher and are never retried automatically.
type OpenAIClient struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger
}

// NewOpenAIClient creates a generation client from config.
func NewOpenAIClient(cfg config.GenerationConfig, logger *slog.Logger) *OpenAIClient {
	return &OpenAIClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	MaxTokens      int            `json:"max_completion_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// generatedDocument is the wire format the model is prompted to emit.
// Field names match the prompt, not the domain types.
type generatedDocument struct {
	SectionA struct {
		Title      string `json:"title"`
		Summary    string `json:"summary"`
		Statistics []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"statistics"`
		Sources     []string `json:"sources"`
		Conclusions []string `json:"conclusions"`
	} `json:"sectionA"`
	SectionB struct {
		Methodology    string   `json:"methodology"`
		Participants   string   `json:"participants"`
		TechnicalTerms []string `json:"technicalTerms"`
		StudyDesign    string   `json:"studyDesign"`
	} `json:"sectionB"`
	SectionC []struct {
		Badge int      `json:"badge"`
		Title string   `json:"title"`
		Steps []string `json:"steps"`
	} `json:"sectionC"`
}

// Generate produces a validated infographic document from research text.
// Returns a validation error if the backend is unconfigured, the call fails,
// the response is not parseable JSON, or the document is incomplete.
func (c *OpenAIClient) Generate(ctx context.Context, researchText, researcherNotes string) (*domain.InfographicContent, error) {
	if c.apiKey == "" {
		return nil, errors.Internal("generation backend is not configured: missing API key")
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(researchText, researcherNotes)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		MaxTokens:      c.maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return nil, errors.Internal("no content generated")
	}

	c.logger.Debug("generation call complete",
		"model", c.model,
		"duration", time.Since(start),
		"prompt_tokens", apiResp.Usage.PromptTokens,
		"completion_tokens", apiResp.Usage.CompletionTokens,
	)

	var doc generatedDocument
	if err := json.Unmarshal([]byte(apiResp.Choices[0].Message.Content), &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generated content is not valid JSON")
	}

	content := doc.toDomain()
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	return content, nil
}

// toDomain converts the wire document to the domain content type.
func (d *generatedDocument) toDomain() *domain.InfographicContent {
	content := &domain.InfographicContent{
		Overview: domain.OverviewSection{
			Title:       d.SectionA.Title,
			Summary:     d.SectionA.Summary,
			Sources:     d.SectionA.Sources,
			Conclusions: d.SectionA.Conclusions,
		},
		Methods: domain.MethodsSection{
			Methodology:    d.SectionB.Methodology,
			Participants:   d.SectionB.Participants,
			TechnicalTerms: d.SectionB.TechnicalTerms,
			StudyDesign:    d.SectionB.StudyDesign,
		},
	}

	for _, stat := range d.SectionA.Statistics {
		content.Overview.Statistics = append(content.Overview.Statistics, domain.Statistic{
			Value: stat.Value,
			Label: stat.Label,
		})
	}
	for _, page := range d.SectionC {
		content.Solutions = append(content.Solutions, domain.SolutionPage{
			Badge: page.Badge,
			Title: page.Title,
			Steps: page.Steps,
		})
	}

	return content
}
