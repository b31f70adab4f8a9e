// Package domain holds the message dispatch state machine.
package domain

// Dispatch channels share one store and one lifecycle.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// Channels lists every dispatch channel.
var Channels = []string{ChannelWhatsApp, ChannelEmail}

// Message statuses. Delivered is reserved for provider receipts and has no
// inbound or outbound edges yet.
const (
	StatusDraft     = "draft"
	StatusApproved  = "approved"
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Message types the messenger knows how to write.
const (
	TypeReminder     = "reminder"
	TypeConfirmation = "confirmation"
	TypeFollowUp     = "follow_up"
	TypeNurture      = "nurture"
)

var transitions = map[string][]string{
	StatusDraft:    {StatusApproved},
	StatusApproved: {StatusSent, StatusFailed},
}

// CanTransition reports whether a message may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiredPrior returns the status a message must be in to reach to.
func RequiredPrior(to string) string {
	for from, nexts := range transitions {
		for _, next := range nexts {
			if next == to {
				return from
			}
		}
	}
	return ""
}

var subjects = map[string]string{
	TypeReminder:     "Reminder: Your Property Viewing",
	TypeConfirmation: "Confirmed: Your Property Appointment",
	TypeFollowUp:     "Following Up on Your Property Interest",
	TypeNurture:      "New Properties Matching Your Interests",
}

// Subject returns the email subject for a message type.
func Subject(messageType string) string {
	if s, ok := subjects[messageType]; ok {
		return s
	}
	return "A Message from Your Property Advisor"
}
