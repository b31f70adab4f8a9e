package transport

import (
	"time"

	"github.com/google/uuid"
)

// GenerateMessageRequest asks for a draft. Channel is set from the route.
type GenerateMessageRequest struct {
	Channel     string    `json:"-" validate:"required,messagechannel"`
	LeadID      uuid.UUID `json:"lead_id" validate:"required"`
	MessageType string    `json:"message_type" validate:"required,oneof=reminder confirmation follow_up nurture"`
	Language    string    `json:"language" validate:"omitempty,max=30"`
}

type MessageResponse struct {
	ID                uuid.UUID  `json:"id"`
	Channel           string     `json:"channel"`
	LeadID            uuid.UUID  `json:"lead_id"`
	Recipient         string     `json:"recipient"`
	Subject           *string    `json:"subject,omitempty"`
	Body              string     `json:"body"`
	Language          string     `json:"language"`
	MessageType       string     `json:"message_type"`
	Status            string     `json:"status"`
	ProviderMessageID string     `json:"provider_message_id,omitempty"`
	ProviderStatus    string     `json:"provider_status,omitempty"`
	ProviderError     string     `json:"provider_error,omitempty"`
	ComplianceFlags   []string   `json:"compliance_flags"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
}
