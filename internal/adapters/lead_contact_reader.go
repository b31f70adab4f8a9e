package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	leadsrepo "propboost_backend/internal/leads/repository"
	"propboost_backend/internal/messaging/ports"
)

// LeadContactReader adapts the leads repository to the contact data the
// messaging context needs.
type LeadContactReader struct {
	leads leadsrepo.LeadReader
}

// NewLeadContactReader creates a new contact reader adapter.
func NewLeadContactReader(leads leadsrepo.LeadReader) *LeadContactReader {
	return &LeadContactReader{leads: leads}
}

// GetLeadContact returns the lead's contact details.
func (a *LeadContactReader) GetLeadContact(ctx context.Context, leadID uuid.UUID) (ports.LeadContact, error) {
	lead, err := a.leads.GetByID(ctx, leadID)
	if errors.Is(err, leadsrepo.ErrNotFound) {
		return ports.LeadContact{}, ports.ErrLeadNotFound
	}
	if err != nil {
		return ports.LeadContact{}, fmt.Errorf("look up lead for message: %w", err)
	}

	return ports.LeadContact{
		ID:                 lead.ID,
		Name:               lead.Name,
		Phone:              lead.Phone,
		Email:              lead.Email,
		LanguagePreference: lead.LanguagePreference,
		PropertyInterests:  lead.PropertyInterests,
		Notes:              lead.Notes,
		LeadSource:         lead.LeadSource,
	}, nil
}

// Compile-time check.
var _ ports.LeadReader = (*LeadContactReader)(nil)
