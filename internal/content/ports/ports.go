// Package ports declares what the content pipeline needs from the outside.
package ports

import (
	"context"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/judge"
)

// Copywriter renders marketing copy for a listing.
type Copywriter interface {
	GenerateCopy(ctx context.Context, property judge.PropertySnapshot, platform, language string) judge.CopyResult
}

// AuditRecorder appends to the activity trail and compliance audits.
type AuditRecorder interface {
	Activity(ctx context.Context, entry audit.ActivityEntry)
	Compliance(ctx context.Context, entry audit.ComplianceEntry)
}
