// Package ports declares what the messaging context needs from the outside.
package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/providers"
)

// LeadContact is the slice of a lead messaging needs.
type LeadContact struct {
	ID                 uuid.UUID
	Name               string
	Phone              string
	Email              string
	LanguagePreference string
	PropertyInterests  map[string]any
	Notes              string
	LeadSource         string
}

// LeadReader looks up a lead's contact data. Unknown leads yield ErrLeadNotFound.
type LeadReader interface {
	GetLeadContact(ctx context.Context, leadID uuid.UUID) (LeadContact, error)
}

// Messenger writes the message body.
type Messenger interface {
	GenerateMessage(ctx context.Context, lead judge.LeadSnapshot, messageType, language string) string
}

// Dispatcher sends one message on a channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipient, subject, body string) providers.Result
}

// AuditRecorder appends to the activity trail and compliance audits.
type AuditRecorder interface {
	Activity(ctx context.Context, entry audit.ActivityEntry)
	Compliance(ctx context.Context, entry audit.ComplianceEntry)
}

// ErrLeadNotFound is returned by LeadReader for unknown leads.
var ErrLeadNotFound = errors.New("lead not found")
