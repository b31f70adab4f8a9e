package service

import (
	"propboost_backend/internal/messaging/repository"
	"propboost_backend/internal/messaging/transport"
)

func ToMessageResponse(m repository.Message) transport.MessageResponse {
	flags := m.ComplianceFlags
	if flags == nil {
		flags = []string{}
	}
	return transport.MessageResponse{
		ID:                m.ID,
		Channel:           m.Channel,
		LeadID:            m.LeadID,
		Recipient:         m.Recipient,
		Subject:           m.Subject,
		Body:              m.Body,
		Language:          m.Language,
		MessageType:       m.MessageType,
		Status:            m.Status,
		ProviderMessageID: m.ProviderMessageID,
		ProviderStatus:    m.ProviderStatus,
		ProviderError:     m.ProviderError,
		ComplianceFlags:   flags,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		SentAt:            m.SentAt,
	}
}
