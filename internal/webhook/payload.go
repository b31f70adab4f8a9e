package webhook

import (
	"math"

	"propboost_backend/internal/leads/transport"
)

// callWebhook is the voice provider's webhook envelope.
type callWebhook struct {
	Event string      `json:"event" validate:"required"`
	Call  callDetails `json:"call"`
}

type callDetails struct {
	CallID       string            `json:"call_id"`
	Metadata     map[string]any    `json:"metadata"`
	Transcript   string            `json:"transcript"`
	Duration     float64           `json:"duration"`
	DurationMs   int64             `json:"duration_ms"`
	StartMs      int64             `json:"start_timestamp"`
	EndMs        int64             `json:"end_timestamp"`
	CallAnalysis map[string]any    `json:"call_analysis"`
	DynamicVars  map[string]string `json:"retell_llm_dynamic_variables"`
}

func (w callWebhook) toEvent() transport.CallEvent {
	leadID, _ := w.Call.Metadata["lead_id"].(string)
	return transport.CallEvent{
		Event:           w.Event,
		CallID:          w.Call.CallID,
		LeadID:          leadID,
		Transcript:      w.Call.Transcript,
		DurationSeconds: w.Call.durationSeconds(),
		Analysis:        w.Call.CallAnalysis,
	}
}

// durationSeconds prefers duration (seconds), then duration_ms, then the
// start/end timestamps.
func (c callDetails) durationSeconds() int {
	if c.Duration > 0 && c.Duration < math.MaxInt32 {
		return int(math.Round(c.Duration))
	}
	ms := c.DurationMs
	if ms <= 0 && c.EndMs > c.StartMs && c.StartMs > 0 {
		ms = c.EndMs - c.StartMs
	}
	if ms <= 0 {
		return 0
	}
	return int((ms + 500) / 1000)
}
