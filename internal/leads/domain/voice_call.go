package domain

import (
	"fmt"
	"strings"
)

// Voice call sub-state of a lead: none → initiated|simulated → completed|failed.
const (
	VoiceCallNone      = "none"
	VoiceCallInitiated = "initiated"
	VoiceCallSimulated = "simulated"
	VoiceCallCompleted = "completed"
	VoiceCallFailed    = "failed"
)

// Qualification outcomes stored on call logs.
const (
	QualificationQualified     = "qualified"
	QualificationCallback      = "callback"
	QualificationNotInterested = "not_interested"
	QualificationUnknown       = "unknown"
)

// QualificationKeys are the call-analysis attributes merged into a lead's
// property interests.
var QualificationKeys = []string{"budget", "location", "timeline", "property_type", "bedrooms"}

// ExtractQualification picks the known attributes out of a call analysis,
// preferring custom_analysis_data over top-level analysis fields. Empty
// values are skipped.
func ExtractQualification(analysis map[string]any) map[string]any {
	out := make(map[string]any)
	custom, _ := analysis["custom_analysis_data"].(map[string]any)
	for _, key := range QualificationKeys {
		if value, ok := nonEmpty(custom[key]); ok {
			out[key] = value
			continue
		}
		if value, ok := nonEmpty(analysis[key]); ok {
			out[key] = value
		}
	}
	return out
}

// QualificationResult classifies a call from its analysis.
func QualificationResult(analysis map[string]any) string {
	custom, _ := analysis["custom_analysis_data"].(map[string]any)
	for _, source := range []map[string]any{custom, analysis} {
		if source == nil {
			continue
		}
		for _, key := range []string{"qualification_result", "qualification"} {
			if raw, ok := source[key].(string); ok {
				if result := normalizeQualification(raw); result != QualificationUnknown {
					return result
				}
			}
		}
		if callback, ok := source["callback_requested"].(bool); ok && callback {
			return QualificationCallback
		}
		if interested, ok := source["interested"].(bool); ok {
			if interested {
				return QualificationQualified
			}
			return QualificationNotInterested
		}
	}
	return QualificationUnknown
}

func normalizeQualification(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, " ", "_")
	switch value {
	case "qualified", "interested", "hot":
		return QualificationQualified
	case "callback", "call_back", "callback_requested":
		return QualificationCallback
	case "not_interested", "unqualified", "disqualified":
		return QualificationNotInterested
	default:
		return QualificationUnknown
	}
}

func nonEmpty(value any) (any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed != ""
	case float64, int, bool:
		return typed, true
	default:
		text := strings.TrimSpace(fmt.Sprint(typed))
		return typed, text != ""
	}
}
