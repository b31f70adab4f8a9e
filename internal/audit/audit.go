// Package audit records the append-only activity trail and compliance audits
// and serves them back for review.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
)

// ActorSystem attributes work done by the pipeline itself.
const ActorSystem = "system"

// Entity types used across the trail.
const (
	EntityLead     = "lead"
	EntityProperty = "property"
	EntityContent  = "content"
	EntityWhatsApp = "whatsapp"
	EntityEmail    = "email"
)

// ActivityEntry is one business event.
type ActivityEntry struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Actor      string
	Details    map[string]any
}

// ComplianceEntry is the outcome of one compliance check.
type ComplianceEntry struct {
	EntityType        string
	EntityID          uuid.UUID
	OriginalText      string
	Flags             []string
	IsCompliant       bool
	DisclaimerPresent bool
	ReviewedBy        string
}

// ActivityLog is a stored activity entry.
type ActivityLog struct {
	ID         uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Actor      string
	Details    map[string]any
	CreatedAt  time.Time
}

// ComplianceAudit is a stored compliance entry.
type ComplianceAudit struct {
	ID                uuid.UUID
	EntityType        string
	EntityID          uuid.UUID
	OriginalText      string
	Flags             []string
	IsCompliant       bool
	DisclaimerPresent bool
	ReviewedBy        string
	CreatedAt         time.Time
}

// Store persists audit records.
type Store interface {
	InsertActivity(ctx context.Context, entry ActivityEntry) error
	InsertCompliance(ctx context.Context, entry ComplianceEntry) error
	ListActivity(ctx context.Context, filter ActivityFilter) ([]ActivityLog, error)
	ListComplianceAudits(ctx context.Context, filter ComplianceFilter) ([]ComplianceAudit, error)
}

// Recorder writes audit records on behalf of the other contexts. A failed
// write is logged and counted but never surfaces to the caller.
type Recorder struct {
	store   Store
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewRecorder(store Store, log *logger.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{store: store, log: log, metrics: m}
}

// Activity appends an activity entry.
func (r *Recorder) Activity(ctx context.Context, entry ActivityEntry) {
	if entry.Actor == "" {
		entry.Actor = ActorSystem
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}
	if err := r.store.InsertActivity(ctx, entry); err != nil {
		r.log.AuditWriteFailed("activity", entry.EntityType, entry.EntityID.String(), err)
		r.metrics.AuditWriteFailed("activity")
	}
}

// Compliance appends a compliance audit.
func (r *Recorder) Compliance(ctx context.Context, entry ComplianceEntry) {
	if entry.ReviewedBy == "" {
		entry.ReviewedBy = ActorSystem
	}
	if entry.Flags == nil {
		entry.Flags = []string{}
	}
	if err := r.store.InsertCompliance(ctx, entry); err != nil {
		r.log.AuditWriteFailed("compliance", entry.EntityType, entry.EntityID.String(), err)
		r.metrics.AuditWriteFailed("compliance")
	}
}
