package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/leads/domain"
	"propboost_backend/internal/leads/repository"
	"propboost_backend/internal/leads/transport"
	"propboost_backend/internal/providers"
	"propboost_backend/platform/apperr"
)

const (
	actionVoiceCallTriggered = "voice_call_triggered"
	actionVoiceCallCompleted = "voice_call_completed"
	actionVoiceCallTimedOut  = "voice_call_timed_out"

	eventCallEnded = "call_ended"
)

var languageCodes = map[string]string{
	"english":  "en-US",
	"arabic":   "ar-SA",
	"hindi":    "hi-IN",
	"russian":  "ru-RU",
	"mandarin": "zh-CN",
	"chinese":  "zh-CN",
	"french":   "fr-FR",
}

// TriggerCall places a call right away, regardless of score.
func (s *Service) TriggerCall(ctx context.Context, actor string, req transport.TriggerCallRequest) (transport.VoiceCallResponse, error) {
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return transport.VoiceCallResponse{}, apperr.Validation("invalid lead_id")
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return transport.VoiceCallResponse{}, err
	}

	return s.placeCall(ctx, actor, lead, orDefault(req.Language, lead.LanguagePreference), "manual")
}

// PlaceScheduledCall is the background entry point for automatic calls. It is
// a no-op when the lead is gone or a call has already been placed.
func (s *Service) PlaceScheduledCall(ctx context.Context, leadID uuid.UUID, language string) error {
	claimed, err := s.repo.ClaimVoiceCall(ctx, leadID)
	if err != nil {
		return err
	}
	if !claimed {
		s.log.Info("scheduled voice call skipped", "lead_id", leadID)
		return nil
	}

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return mapNotFound(err)
	}

	_, err = s.placeCall(ctx, audit.ActorSystem, lead, orDefault(language, lead.LanguagePreference), "scheduled")
	return err
}

func (s *Service) placeCall(ctx context.Context, actor string, lead repository.Lead, language, trigger string) (transport.VoiceCallResponse, error) {
	result := s.caller.CreateCall(ctx, providers.CallRequest{
		To:           lead.Phone,
		LeadID:       lead.ID.String(),
		CustomerName: lead.Name,
		LanguageCode: LanguageCode(language),
		Budget:       interestText(lead.PropertyInterests, "budget"),
		Location:     interestText(lead.PropertyInterests, "location"),
	})

	status := voiceStatusFor(result.Status)
	updated, err := s.repo.SetVoiceCall(ctx, lead.ID, status, result.ProviderRef)
	if err != nil {
		return transport.VoiceCallResponse{}, mapNotFound(err)
	}

	s.metrics.VoiceCall(status)
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionVoiceCallTriggered,
		EntityType: audit.EntityLead,
		EntityID:   lead.ID,
		Actor:      actor,
		Details: map[string]any{
			"trigger":  trigger,
			"status":   status,
			"call_id":  result.ProviderRef,
			"language": language,
		},
	})
	if result.Status == providers.StatusFailed {
		s.log.Warn("voice call failed", "lead_id", lead.ID, "error", result.Message)
	}

	return transport.VoiceCallResponse{
		LeadID:  updated.ID,
		Status:  status,
		CallID:  updated.VoiceCallID,
		Message: result.Message,
	}, nil
}

// HandleCallEvent reconciles a provider webhook. Only call_ended events for a
// known lead change anything; redelivery of the same call is harmless.
func (s *Service) HandleCallEvent(ctx context.Context, event transport.CallEvent) (transport.CallEventResponse, error) {
	if event.Event != eventCallEnded {
		return transport.CallEventResponse{Status: "ignored", Message: fmt.Sprintf("event %q not handled", event.Event)}, nil
	}

	leadID, err := uuid.Parse(strings.TrimSpace(event.LeadID))
	if err != nil {
		return transport.CallEventResponse{}, apperr.NotFound(msgLeadNotFound)
	}
	if strings.TrimSpace(event.CallID) == "" {
		return transport.CallEventResponse{}, apperr.Validation("call_id is required")
	}

	analysis := event.Analysis
	if analysis == nil {
		analysis = map[string]any{}
	}
	attributes := domain.ExtractQualification(analysis)
	qualification := domain.QualificationResult(analysis)

	inserted, err := s.repo.ApplyCallOutcome(ctx, repository.CallOutcomeParams{
		LeadID:          leadID,
		CallID:          event.CallID,
		Transcript:      event.Transcript,
		Analysis:        analysis,
		DurationSeconds: event.DurationSeconds,
		Qualification:   qualification,
		Attributes:      attributes,
	})
	if err != nil {
		return transport.CallEventResponse{}, mapNotFound(err)
	}

	if inserted {
		s.metrics.VoiceCall(domain.VoiceCallCompleted)
		s.audit.Activity(ctx, audit.ActivityEntry{
			Action:     actionVoiceCallCompleted,
			EntityType: audit.EntityLead,
			EntityID:   leadID,
			Actor:      audit.ActorSystem,
			Details: map[string]any{
				"call_id":       event.CallID,
				"duration":      event.DurationSeconds,
				"qualification": qualification,
				"attributes":    attributes,
			},
		})
	}

	return transport.CallEventResponse{Status: "processed", LeadID: leadID.String(), Logged: inserted}, nil
}

// MarkStaleCalls fails calls that never reported back.
func (s *Service) MarkStaleCalls(ctx context.Context, olderThan time.Duration) (int, error) {
	ids, err := s.repo.MarkStaleCalls(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.metrics.VoiceCall("timed_out")
		s.audit.Activity(ctx, audit.ActivityEntry{
			Action:     actionVoiceCallTimedOut,
			EntityType: audit.EntityLead,
			EntityID:   id,
			Actor:      audit.ActorSystem,
			Details:    map[string]any{"stale_after": olderThan.String()},
		})
	}
	if len(ids) > 0 {
		s.log.Info("stale voice calls marked failed", "count", len(ids))
	}
	return len(ids), nil
}

// LanguageCode maps a language preference to the voice agent's locale.
func LanguageCode(language string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return code
	}
	return "en-US"
}

func voiceStatusFor(status providers.Status) string {
	switch status {
	case providers.StatusSent:
		return domain.VoiceCallInitiated
	case providers.StatusSimulated:
		return domain.VoiceCallSimulated
	default:
		return domain.VoiceCallFailed
	}
}

func interestText(interests map[string]any, key string) string {
	value, ok := interests[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
