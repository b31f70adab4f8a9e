package judge

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Category buckets derived from a score.
const (
	CategoryHot  = "hot"
	CategoryWarm = "warm"
	CategoryCold = "cold"
)

const (
	MinScore = 0
	MaxScore = 10
)

// fenceTag matches a language tag on the opening fence line (json, JSON5,
// javascript), whether it ends the line or runs straight into the payload.
var fenceTag = regexp.MustCompile(`^[A-Za-z][\w+.-]*(\r?\n|[{\[])`)

// stripFence removes a surrounding ``` code fence and its language tag.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if end := strings.Index(text, "```"); end >= 0 {
		text = text[:end]
	}
	text = strings.TrimLeft(text, " \t")
	text = fenceTag.ReplaceAllString(text, "${1}")
	return strings.TrimSpace(text)
}

// flexibleScore accepts a JSON number or a numeric string.
type flexibleScore struct {
	value float64
	set   bool
}

func (s *flexibleScore) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		s.value, s.set = n, true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("score: unsupported type %s", string(data))
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	s.value, s.set = n, true
	return nil
}

// flexibleText accepts a string or a list of strings; lists become a bulleted block.
type flexibleText string

func (t *flexibleText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*t = flexibleText(str)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("briefing: unsupported type %s", string(data))
	}
	*t = flexibleText(bulleted(items))
	return nil
}

func bulleted(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "• " + strings.Join(cleaned, "\n• ")
}

type scorePayload struct {
	Score      flexibleScore `json:"score"`
	Reasoning  flexibleText  `json:"reasoning"`
	AIBriefing flexibleText  `json:"ai_briefing"`
	Briefing   flexibleText  `json:"briefing"`
	Category   string        `json:"category"`
}

type copyPayload struct {
	Content  string       `json:"content"`
	Hashtags flexibleText `json:"hashtags"`
}

// ParseScore converts a raw judge response into a ScoreResult.
func ParseScore(raw string) (ScoreResult, error) {
	var payload scorePayload
	if err := json.Unmarshal([]byte(stripFence(raw)), &payload); err != nil {
		return ScoreResult{}, fmt.Errorf("decode score response: %w", err)
	}
	if !payload.Score.set {
		return ScoreResult{}, fmt.Errorf("decode score response: missing score")
	}

	score := ClampScore(payload.Score.value)
	briefing := string(payload.AIBriefing)
	if briefing == "" {
		briefing = string(payload.Briefing)
	}

	return ScoreResult{
		Score:     score,
		Reasoning: strings.TrimSpace(string(payload.Reasoning)),
		Briefing:  strings.TrimSpace(briefing),
		Category:  normalizeCategory(payload.Category, score),
	}, nil
}

// ParseCopy converts a raw judge response into a CopyResult.
func ParseCopy(raw string) (CopyResult, error) {
	var payload copyPayload
	if err := json.Unmarshal([]byte(stripFence(raw)), &payload); err != nil {
		return CopyResult{}, fmt.Errorf("decode copy response: %w", err)
	}
	if strings.TrimSpace(payload.Content) == "" {
		return CopyResult{}, fmt.Errorf("decode copy response: empty content")
	}
	hashtags := strings.ReplaceAll(string(payload.Hashtags), "• ", "")
	hashtags = strings.ReplaceAll(hashtags, "\n", " ")
	return CopyResult{
		Content:  strings.TrimSpace(payload.Content),
		Hashtags: strings.TrimSpace(hashtags),
	}, nil
}

// ClampScore rounds and bounds a score to the 0..10 scale.
func ClampScore(value float64) int {
	switch {
	case math.IsNaN(value), value <= MinScore:
		return MinScore
	case value >= MaxScore:
		return MaxScore
	}
	return int(math.Round(value))
}

// CategoryForScore buckets a score into hot, warm, or cold.
func CategoryForScore(score int) string {
	switch {
	case score >= 8:
		return CategoryHot
	case score >= 6:
		return CategoryWarm
	default:
		return CategoryCold
	}
}

func normalizeCategory(raw string, score int) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CategoryHot:
		return CategoryHot
	case CategoryWarm:
		return CategoryWarm
	case CategoryCold:
		return CategoryCold
	default:
		return CategoryForScore(score)
	}
}

// ensureMarker appends marker on its own line unless text already carries an AI disclaimer.
func ensureMarker(text, marker string) string {
	trimmed := strings.TrimSpace(text)
	if strings.Contains(strings.ToLower(trimmed), strings.ToLower(marker)) {
		return trimmed
	}
	return trimmed + "\n\n" + marker
}
