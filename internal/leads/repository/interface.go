package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, error)
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error)
	UpdateScore(ctx context.Context, id uuid.UUID, params ScoreParams) (Lead, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage string, probability *int) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoiceCallStore tracks the voice-call sub-state of a lead.
type VoiceCallStore interface {
	// ClaimVoiceCall moves a lead from none to initiated. It reports false when
	// the lead is gone or a call already happened.
	ClaimVoiceCall(ctx context.Context, id uuid.UUID) (bool, error)
	SetVoiceCall(ctx context.Context, id uuid.UUID, status, callID string) (Lead, error)
	// ApplyCallOutcome merges the qualification attributes, completes the call
	// and stores the call log. It reports whether the log row was new.
	ApplyCallOutcome(ctx context.Context, params CallOutcomeParams) (bool, error)
	MarkStaleCalls(ctx context.Context, initiatedBefore time.Time) ([]uuid.UUID, error)
}

// StatsReader provides pipeline aggregates.
type StatsReader interface {
	PipelineStats(ctx context.Context) ([]StageStat, ScoreTotals, error)
}

// Repository is the full leads data access surface.
type Repository interface {
	LeadReader
	LeadWriter
	VoiceCallStore
	StatsReader
}
