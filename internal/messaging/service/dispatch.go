package service

import (
	"context"

	"propboost_backend/internal/messaging/ports"
	"propboost_backend/internal/providers"
)

type whatsAppDispatcher struct {
	sender providers.WhatsAppSender
}

// WhatsAppDispatcher sends message bodies as WhatsApp text; the subject is ignored.
func WhatsAppDispatcher(sender providers.WhatsAppSender) ports.Dispatcher {
	return whatsAppDispatcher{sender: sender}
}

func (d whatsAppDispatcher) Dispatch(ctx context.Context, recipient, _, body string) providers.Result {
	return d.sender.Send(ctx, recipient, body)
}

type emailDispatcher struct {
	sender providers.EmailSender
}

// EmailDispatcher sends message bodies as HTML email.
func EmailDispatcher(sender providers.EmailSender) ports.Dispatcher {
	return emailDispatcher{sender: sender}
}

func (d emailDispatcher) Dispatch(ctx context.Context, recipient, subject, body string) providers.Result {
	return d.sender.Send(ctx, recipient, subject, body)
}
