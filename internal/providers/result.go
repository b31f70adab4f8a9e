// Package providers holds the outbound dispatch adapters for WhatsApp, email
// and voice calls. Adapters never return errors: absent credentials yield a
// simulated result and transport or provider errors yield a failed result.
package providers

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a dispatch attempt.
type Status string

const (
	StatusSent      Status = "sent"
	StatusSimulated Status = "simulated"
	StatusFailed    Status = "failed"
)

// Delivered reports whether the pipeline should treat the outcome as a successful send.
func (s Status) Delivered() bool {
	return s == StatusSent || s == StatusSimulated
}

// Result is the uniform outcome of every adapter call.
type Result struct {
	Status      Status
	ProviderRef string
	Message     string
}

// WhatsAppSender delivers a text message to a phone number.
type WhatsAppSender interface {
	Send(ctx context.Context, to, body string) Result
}

// EmailSender delivers an HTML email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) Result
}

// CallRequest describes an outbound qualification call.
type CallRequest struct {
	To           string
	LeadID       string
	CustomerName string
	LanguageCode string
	Budget       string
	Location     string
}

// VoiceCaller places outbound calls.
type VoiceCaller interface {
	CreateCall(ctx context.Context, req CallRequest) Result
}

const defaultTimeout = 15 * time.Second

func simulated(prefix, message string) Result {
	return Result{
		Status:      StatusSimulated,
		ProviderRef: "sim-" + prefix + "-" + uuid.New().String(),
		Message:     message,
	}
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Message: err.Error()}
}

func sent(ref, message string) Result {
	return Result{Status: StatusSent, ProviderRef: ref, Message: message}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
