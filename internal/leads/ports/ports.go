// Package ports declares what the leads context needs from the outside.
package ports

import (
	"context"

	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/providers"
)

// LeadScorer asks the judge for a qualification score.
type LeadScorer interface {
	Score(ctx context.Context, lead judge.LeadSnapshot) judge.ScoreResult
}

// VoiceCaller places an outbound call.
type VoiceCaller interface {
	CreateCall(ctx context.Context, req providers.CallRequest) providers.Result
}

// VoiceCallScheduler hands a call off to background execution.
type VoiceCallScheduler interface {
	ScheduleVoiceCall(ctx context.Context, leadID uuid.UUID, language string) error
}

// ActivityRecorder appends to the audit trail.
type ActivityRecorder interface {
	Activity(ctx context.Context, entry audit.ActivityEntry)
}
