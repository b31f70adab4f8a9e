// Package judge is the gateway to the external LLM judge. It scores leads and
// writes marketing copy and direct messages. Failures never propagate: every
// operation degrades to a visibly marked default.
package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/adk/model"

	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
)

// Disclaimer markers appended to generated text.
const (
	MarkerGenerated = "[AI-Generated Content]"
	MarkerAssisted  = "[AI-Assisted Content]"
)

// Fallback values used when the judge is unavailable or answers garbage.
const (
	FallbackScore     = 5
	FallbackReasoning = "Manual review needed"
	FallbackBriefing  = "Unable to auto-score. Please review manually."
	FallbackCategory  = CategoryWarm
)

const defaultTimeout = 45 * time.Second

// LeadSnapshot is the lead data the judge sees.
type LeadSnapshot struct {
	Name               string
	Email              string
	Phone              string
	LanguagePreference string
	PropertyInterests  map[string]any
	Notes              string
	LeadSource         string
}

// PropertySnapshot is the listing data the judge sees.
type PropertySnapshot struct {
	Title        string
	Location     string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Price        float64
	Currency     string
	AreaSqft     int
	Amenities    []string
	Description  string
}

// ScoreResult is the strict, normalized result of a scoring call.
type ScoreResult struct {
	Score     int
	Reasoning string
	Briefing  string
	Category  string
	// Fallback is true when the result is the manual-review default.
	Fallback bool
}

// CopyResult is one rendering of marketing copy.
type CopyResult struct {
	Content  string
	Hashtags string
	Fallback bool
}

// Gateway talks to the judge through three single-purpose agents.
type Gateway struct {
	scorer     Completer
	copywriter Completer
	messenger  Completer
	catalog    *Catalog
	timeout    time.Duration
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// New builds the gateway on top of an ADK model.
func New(llm model.LLM, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) (*Gateway, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}

	scorer, err := NewAgentCompleter(llm, "LeadScorer", "Scores real estate leads and writes agent briefings.", catalog.Scoring.Instruction)
	if err != nil {
		return nil, err
	}
	copywriter, err := NewAgentCompleter(llm, "ListingCopywriter", "Writes multilingual property marketing copy.", catalog.Copy.Instruction)
	if err != nil {
		return nil, err
	}
	messenger, err := NewAgentCompleter(llm, "ClientMessenger", "Writes short personal messages to clients.", catalog.Message.Instruction)
	if err != nil {
		return nil, err
	}

	return newGateway(scorer, copywriter, messenger, catalog, timeout, log, m), nil
}

func newGateway(scorer, copywriter, messenger Completer, catalog *Catalog, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		scorer:     scorer,
		copywriter: copywriter,
		messenger:  messenger,
		catalog:    catalog,
		timeout:    timeout,
		log:        log,
		metrics:    m,
	}
}

// Score asks the judge to qualify a lead.
func (g *Gateway) Score(ctx context.Context, lead LeadSnapshot) ScoreResult {
	raw, err := g.complete(ctx, "score", g.scorer, buildScorePrompt(lead))
	if err == nil {
		var result ScoreResult
		if result, err = ParseScore(raw); err == nil {
			return result
		}
		g.metrics.ObserveJudge("score", "malformed", 0)
	}

	g.log.WithContext(ctx).DependencyFallback("judge", "score", err, "lead_name", lead.Name)
	return ScoreResult{
		Score:     FallbackScore,
		Reasoning: FallbackReasoning,
		Briefing:  FallbackBriefing,
		Category:  FallbackCategory,
		Fallback:  true,
	}
}

// GenerateCopy writes marketing copy for one platform and language.
func (g *Gateway) GenerateCopy(ctx context.Context, property PropertySnapshot, platform, language string) CopyResult {
	prompt := buildCopyPrompt(property, platform, g.catalog.PlatformSpec(platform), language)
	raw, err := g.complete(ctx, "copy", g.copywriter, prompt)
	if err == nil {
		var result CopyResult
		if result, err = ParseCopy(raw); err == nil {
			result.Content = ensureMarker(result.Content, MarkerGenerated)
			return result
		}
		g.metrics.ObserveJudge("copy", "malformed", 0)
	}

	g.log.WithContext(ctx).DependencyFallback("judge", "generate_copy", err, "platform", platform, "language", language)
	return CopyResult{
		Content:  fmt.Sprintf("[Error generating content: %s]", err.Error()),
		Hashtags: "",
		Fallback: true,
	}
}

// GenerateMessage writes a direct message to a lead.
func (g *Gateway) GenerateMessage(ctx context.Context, lead LeadSnapshot, messageType, language string) string {
	prompt := buildMessagePrompt(lead, g.catalog.MessageBrief(messageType), messageType, language)
	raw, err := g.complete(ctx, "message", g.messenger, prompt)
	if err == nil {
		return ensureMarker(stripFence(raw), MarkerAssisted)
	}

	g.log.WithContext(ctx).DependencyFallback("judge", "generate_message", err, "message_type", messageType, "language", language)
	return fmt.Sprintf("[Unable to generate message: %s]", err.Error())
}

func (g *Gateway) complete(ctx context.Context, purpose string, c Completer, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := c.Complete(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
		if ctx.Err() != nil {
			status = "timeout"
		}
	}
	g.metrics.ObserveJudge(purpose, status, time.Since(start))
	return raw, err
}

func buildScorePrompt(lead LeadSnapshot) string {
	interests, err := json.Marshal(lead.PropertyInterests)
	if err != nil || lead.PropertyInterests == nil {
		interests = []byte("{}")
	}
	return fmt.Sprintf(`Score this lead:
Name: %s
Email: %s
Phone: %s
Language: %s
Source: %s
Property Interests: %s
Notes: %s

Return valid JSON only.`,
		orDefault(lead.Name, "Unknown"),
		orDefault(lead.Email, "N/A"),
		orDefault(lead.Phone, "N/A"),
		orDefault(lead.LanguagePreference, "English"),
		orDefault(lead.LeadSource, "Direct"),
		string(interests),
		orDefault(lead.Notes, "No notes"),
	)
}

func buildCopyPrompt(p PropertySnapshot, platform, spec, language string) string {
	return fmt.Sprintf(`Generate %s content in %s for this Dubai property.
Requirements: %s

Title: %s
Location: %s
Type: %s
Bedrooms: %d
Bathrooms: %d
Price: %.0f %s
Area: %d sqft
Amenities: %s
Description: %s

Return valid JSON only.`,
		platform, language, spec,
		orDefault(p.Title, "Luxury Property"),
		orDefault(p.Location, "Dubai"),
		orDefault(p.PropertyType, "Apartment"),
		p.Bedrooms,
		p.Bathrooms,
		p.Price, orDefault(p.Currency, "AED"),
		p.AreaSqft,
		strings.Join(p.Amenities, ", "),
		p.Description,
	)
}

func buildMessagePrompt(lead LeadSnapshot, brief, messageType, language string) string {
	return fmt.Sprintf(`Write %s in %s.
Lead Name: %s
Message Type: %s

Return the plain text message only.`,
		brief, language,
		orDefault(lead.Name, "Valued Client"),
		messageType,
	)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
