// Package service implements message generation, approval and dispatch for
// the WhatsApp and email channels.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/compliance"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/messaging/domain"
	"propboost_backend/internal/messaging/ports"
	"propboost_backend/internal/messaging/repository"
	"propboost_backend/internal/messaging/transport"
	"propboost_backend/internal/providers"
	"propboost_backend/platform/apperr"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
)

const (
	msgLeadNotFound    = "lead not found"
	msgMessageNotFound = "message not found"
	msgNoPhone         = "lead has no phone number"
	msgNoEmail         = "lead has no email address"

	defaultLanguage = "English"
)

// Service drives messages through draft, approved and sent or failed.
type Service struct {
	repo        repository.Repository
	leads       ports.LeadReader
	messenger   ports.Messenger
	dispatchers map[string]ports.Dispatcher
	audit       ports.AuditRecorder
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// New creates the messaging service. dispatchers is keyed by channel.
func New(repo repository.Repository, leads ports.LeadReader, messenger ports.Messenger, dispatchers map[string]ports.Dispatcher, recorder ports.AuditRecorder, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		leads:       leads,
		messenger:   messenger,
		dispatchers: dispatchers,
		audit:       recorder,
		log:         log,
		metrics:     m,
	}
}

// Generate writes a draft for a lead. Compliance flags are stored on the
// draft but do not block it.
func (s *Service) Generate(ctx context.Context, actor string, req transport.GenerateMessageRequest) (transport.MessageResponse, error) {
	lead, err := s.leads.GetLeadContact(ctx, req.LeadID)
	if errors.Is(err, ports.ErrLeadNotFound) {
		return transport.MessageResponse{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		return transport.MessageResponse{}, err
	}

	recipient, err := recipientFor(req.Channel, lead)
	if err != nil {
		return transport.MessageResponse{}, err
	}

	language := firstNonEmpty(req.Language, lead.LanguagePreference, defaultLanguage)
	text := s.messenger.GenerateMessage(ctx, judge.LeadSnapshot{
		Name:               lead.Name,
		Email:              lead.Email,
		Phone:              lead.Phone,
		LanguagePreference: lead.LanguagePreference,
		PropertyInterests:  lead.PropertyInterests,
		Notes:              lead.Notes,
		LeadSource:         lead.LeadSource,
	}, req.MessageType, language)
	check := compliance.Validate(text)

	params := repository.CreateMessageParams{
		Channel:         req.Channel,
		LeadID:          lead.ID,
		Recipient:       recipient,
		Body:            text,
		Language:        language,
		MessageType:     req.MessageType,
		ComplianceFlags: check.Violations,
	}
	if req.Channel == domain.ChannelEmail {
		subject := domain.Subject(req.MessageType)
		html, err := renderMessageEmail(subject, lead.Name, text)
		if err != nil {
			return transport.MessageResponse{}, err
		}
		params.Subject = &subject
		params.Body = html
	}

	msg, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.MessageResponse{}, err
	}

	if !check.Compliant {
		s.log.WithContext(ctx).Warn("generated message has compliance flags", "message_id", msg.ID, "channel", msg.Channel, "flags", check.Violations)
	}
	s.audit.Compliance(ctx, audit.ComplianceEntry{
		EntityType:        msg.Channel,
		EntityID:          msg.ID,
		OriginalText:      text,
		Flags:             check.Violations,
		IsCompliant:       check.Compliant,
		DisclaimerPresent: check.DisclaimerPresent,
		ReviewedBy:        audit.ActorSystem,
	})
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     msg.Channel + "_generated",
		EntityType: msg.Channel,
		EntityID:   msg.ID,
		Actor:      actor,
		Details: map[string]any{
			"lead_id":      msg.LeadID,
			"message_type": msg.MessageType,
			"language":     msg.Language,
			"flags":        len(check.Violations),
		},
	})

	return ToMessageResponse(msg), nil
}

// Approve moves a draft to approved.
func (s *Service) Approve(ctx context.Context, actor, channel string, id uuid.UUID) (transport.MessageResponse, error) {
	current, err := s.repo.GetByID(ctx, channel, id)
	if err != nil {
		return transport.MessageResponse{}, mapNotFound(err)
	}
	if !domain.CanTransition(current.Status, domain.StatusApproved) {
		return transport.MessageResponse{}, invalidTransition(current.Status, domain.StatusApproved)
	}

	msg, err := s.repo.Transition(ctx, channel, id, current.Status, domain.StatusApproved)
	if err != nil {
		return transport.MessageResponse{}, s.casError(ctx, channel, id, domain.StatusApproved, err)
	}

	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     channel + "_approved",
		EntityType: channel,
		EntityID:   msg.ID,
		Actor:      actor,
		Details:    map[string]any{"lead_id": msg.LeadID},
	})
	return ToMessageResponse(msg), nil
}

// Send dispatches an approved message through the channel's provider.
func (s *Service) Send(ctx context.Context, actor, channel string, id uuid.UUID) (transport.MessageResponse, error) {
	current, err := s.repo.GetByID(ctx, channel, id)
	if err != nil {
		return transport.MessageResponse{}, mapNotFound(err)
	}
	if !domain.CanTransition(current.Status, domain.StatusSent) {
		return transport.MessageResponse{}, invalidTransition(current.Status, domain.StatusSent)
	}

	dispatcher, ok := s.dispatchers[channel]
	if !ok {
		return transport.MessageResponse{}, fmt.Errorf("no dispatcher for channel %s", channel)
	}

	subject := ""
	if current.Subject != nil {
		subject = *current.Subject
	}
	result := dispatcher.Dispatch(ctx, current.Recipient, subject, current.Body)

	params := repository.DispatchParams{
		Status:            domain.StatusFailed,
		ProviderMessageID: result.ProviderRef,
		ProviderStatus:    string(result.Status),
	}
	if result.Status.Delivered() {
		now := time.Now().UTC()
		params.Status = domain.StatusSent
		params.SentAt = &now
	} else {
		params.ProviderError = result.Message
		s.log.WithContext(ctx).Warn("message dispatch failed", "message_id", id, "channel", channel, "error", result.Message)
	}

	msg, err := s.repo.RecordDispatch(ctx, channel, id, current.Status, params)
	if err != nil {
		return transport.MessageResponse{}, s.casError(ctx, channel, id, domain.StatusSent, err)
	}

	s.metrics.Dispatch(channel, string(result.Status))
	details := map[string]any{
		"lead_id":         msg.LeadID,
		"provider_status": string(result.Status),
		"provider_ref":    result.ProviderRef,
	}
	if result.Status == providers.StatusFailed {
		details["error"] = result.Message
	}
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     channel + "_" + params.Status,
		EntityType: channel,
		EntityID:   msg.ID,
		Actor:      actor,
		Details:    details,
	})
	return ToMessageResponse(msg), nil
}

func (s *Service) ListForLead(ctx context.Context, channel string, leadID uuid.UUID) ([]transport.MessageResponse, error) {
	items, err := s.repo.ListForLead(ctx, channel, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MessageResponse, len(items))
	for i, item := range items {
		out[i] = ToMessageResponse(item)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, channel string, id uuid.UUID) (transport.MessageResponse, error) {
	msg, err := s.repo.GetByID(ctx, channel, id)
	if err != nil {
		return transport.MessageResponse{}, mapNotFound(err)
	}
	return ToMessageResponse(msg), nil
}

// casError turns a lost compare-and-set into an invalid-transition error
// naming the status the message moved to.
func (s *Service) casError(ctx context.Context, channel string, id uuid.UUID, to string, err error) error {
	if !errors.Is(err, repository.ErrStatusChanged) {
		return mapNotFound(err)
	}
	latest, getErr := s.repo.GetByID(ctx, channel, id)
	if getErr != nil {
		return mapNotFound(getErr)
	}
	return invalidTransition(latest.Status, to)
}

func invalidTransition(current, to string) error {
	required := domain.RequiredPrior(to)
	return apperr.InvalidState(fmt.Sprintf("message must be %s to become %s (current status: %s)", required, to, current)).
		WithDetails(map[string]string{"current_status": current, "required_status": required})
}

func recipientFor(channel string, lead ports.LeadContact) (string, error) {
	switch channel {
	case domain.ChannelWhatsApp:
		if strings.TrimSpace(lead.Phone) == "" {
			return "", apperr.Validation(msgNoPhone)
		}
		return lead.Phone, nil
	case domain.ChannelEmail:
		if strings.TrimSpace(lead.Email) == "" {
			return "", apperr.Validation(msgNoEmail)
		}
		return lead.Email, nil
	default:
		return "", apperr.Validation("unknown channel " + channel)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgMessageNotFound)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func orDefault(value, fallback string) string {
	return firstNonEmpty(value, fallback)
}
