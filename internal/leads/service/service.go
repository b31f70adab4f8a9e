// Package service implements the lead orchestration: scoring, pipeline
// placement, voice-call lifecycle and reconciliation.
package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/leads/domain"
	"propboost_backend/internal/leads/ports"
	"propboost_backend/internal/leads/repository"
	"propboost_backend/internal/leads/transport"
	"propboost_backend/platform/apperr"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/phone"
	"propboost_backend/platform/sanitize"
)

const (
	msgLeadNotFound = "lead not found"

	defaultLanguage   = "English"
	defaultLeadSource = "Direct"
)

const (
	actionLeadCreated     = "lead_created"
	actionLeadUpdated     = "lead_updated"
	actionLeadRescored    = "lead_rescored"
	actionLeadDeleted     = "lead_deleted"
	actionPipelineUpdated = "pipeline_updated"
)

// Service handles lead operations.
type Service struct {
	repo      repository.Repository
	scorer    ports.LeadScorer
	caller    ports.VoiceCaller
	scheduler ports.VoiceCallScheduler
	audit     ports.ActivityRecorder
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// New creates the lead service. The voice-call scheduler is attached later
// with SetVoiceCallScheduler; until then qualifying leads are not called.
func New(repo repository.Repository, scorer ports.LeadScorer, caller ports.VoiceCaller, recorder ports.ActivityRecorder, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		scorer:  scorer,
		caller:  caller,
		audit:   recorder,
		log:     log,
		metrics: m,
	}
}

// SetVoiceCallScheduler wires background execution of automatic calls.
func (s *Service) SetVoiceCallScheduler(scheduler ports.VoiceCallScheduler) {
	s.scheduler = scheduler
}

// Create scores a new lead, places it in the pipeline and schedules a call
// for hot leads.
func (s *Service) Create(ctx context.Context, actor string, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	params := repository.CreateLeadParams{
		Name:               sanitize.Text(req.Name),
		Phone:              phone.NormalizeE164(req.Phone),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		LanguagePreference: orDefault(req.LanguagePreference, defaultLanguage),
		PropertyInterests:  req.PropertyInterests,
		Notes:              sanitize.Text(req.Notes),
		LeadSource:         orDefault(sanitize.Text(req.LeadSource), defaultLeadSource),
		EstimatedDealValue: req.EstimatedDealValue,
	}
	if params.PropertyInterests == nil {
		params.PropertyInterests = map[string]any{}
	}

	result := s.scorer.Score(ctx, judge.LeadSnapshot{
		Name:               params.Name,
		Email:              params.Email,
		Phone:              params.Phone,
		LanguagePreference: params.LanguagePreference,
		PropertyInterests:  params.PropertyInterests,
		Notes:              params.Notes,
		LeadSource:         params.LeadSource,
	})

	params.Score = result.Score
	params.ScoreReasoning = result.Reasoning
	params.AIBriefing = result.Briefing
	params.Stage, params.Probability = domain.CreationDefaults(result.Score)

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.metrics.LeadScored(result.Category)
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionLeadCreated,
		EntityType: audit.EntityLead,
		EntityID:   lead.ID,
		Actor:      actor,
		Details: map[string]any{
			"score":    lead.Score,
			"category": result.Category,
			"stage":    lead.Stage,
			"fallback": result.Fallback,
		},
	})
	s.log.WithContext(ctx).Info("lead created", "lead_id", lead.ID, "score", lead.Score, "stage", lead.Stage)

	if domain.QualifiesForVoiceCall(lead.Score) {
		s.scheduleVoiceCall(ctx, lead)
	}

	return ToLeadResponse(lead), nil
}

func (s *Service) scheduleVoiceCall(ctx context.Context, lead repository.Lead) {
	if s.scheduler == nil {
		s.log.WithContext(ctx).Warn("voice call scheduler not configured, skipping automatic call", "lead_id", lead.ID)
		return
	}
	if err := s.scheduler.ScheduleVoiceCall(ctx, lead.ID, lead.LanguagePreference); err != nil {
		s.log.WithContext(ctx).Error("failed to schedule voice call", "lead_id", lead.ID, "error", err)
	}
}

// List returns leads matching the filter, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) ([]transport.LeadResponse, error) {
	leads, err := s.repo.List(ctx, repository.ListParams{
		Stage:      req.Stage,
		ScoreMin:   req.ScoreMin,
		ScoreMax:   req.ScoreMax,
		LeadSource: strings.TrimSpace(req.LeadSource),
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out, nil
}

// GetByID retrieves a lead by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(lead), nil
}

// Update edits the user-editable fields of a lead.
func (s *Service) Update(ctx context.Context, actor string, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{
		Name:               sanitize.TextPtr(req.Name),
		LanguagePreference: req.LanguagePreference,
		PropertyInterests:  req.PropertyInterests,
		Notes:              sanitize.TextPtr(req.Notes),
		LeadSource:         sanitize.TextPtr(req.LeadSource),
		EstimatedDealValue: req.EstimatedDealValue,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		params.Email = &normalized
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.LeadResponse{}, mapNotFound(err)
	}

	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionLeadUpdated,
		EntityType: audit.EntityLead,
		EntityID:   lead.ID,
		Actor:      actor,
		Details:    map[string]any{"fields": changedFields(req)},
	})
	return ToLeadResponse(lead), nil
}

// Rescore asks the judge again. Only the score, reasoning and briefing move;
// stage and probability stay where the pipeline put them.
func (s *Service) Rescore(ctx context.Context, actor string, id uuid.UUID) (transport.LeadResponse, error) {
	current, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	result := s.scorer.Score(ctx, snapshot(current))
	lead, err := s.repo.UpdateScore(ctx, id, repository.ScoreParams{
		Score:      result.Score,
		Reasoning:  result.Reasoning,
		AIBriefing: result.Briefing,
	})
	if err != nil {
		return transport.LeadResponse{}, mapNotFound(err)
	}

	s.metrics.LeadScored(result.Category)
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionLeadRescored,
		EntityType: audit.EntityLead,
		EntityID:   id,
		Actor:      actor,
		Details:    map[string]any{"old_score": current.Score, "new_score": lead.Score},
	})
	return ToLeadResponse(lead), nil
}

// Delete removes a lead. Its activity history is kept.
func (s *Service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionLeadDeleted,
		EntityType: audit.EntityLead,
		EntityID:   id,
		Actor:      actor,
	})
	return nil
}

// UpdateStage moves a lead to any pipeline stage.
func (s *Service) UpdateStage(ctx context.Context, actor string, id uuid.UUID, req transport.UpdateStageRequest) (transport.LeadResponse, error) {
	stage := strings.ToLower(strings.TrimSpace(req.Stage))
	if !domain.IsKnownPipelineStage(stage) {
		return transport.LeadResponse{}, apperr.Validation(domain.ValidStagesMessage()).
			WithDetails(map[string]any{"valid_stages": domain.PipelineStages})
	}
	if req.Probability != nil && (*req.Probability < 0 || *req.Probability > 100) {
		return transport.LeadResponse{}, apperr.Validation("probability must be between 0 and 100")
	}

	current, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.UpdateStage(ctx, id, stage, req.Probability)
	if err != nil {
		return transport.LeadResponse{}, mapNotFound(err)
	}

	s.audit.Activity(ctx, audit.ActivityEntry{
		Action:     actionPipelineUpdated,
		EntityType: audit.EntityLead,
		EntityID:   id,
		Actor:      actor,
		Details: map[string]any{
			"from":        current.Stage,
			"to":          lead.Stage,
			"probability": lead.Probability,
		},
	})
	return ToLeadResponse(lead), nil
}

// PipelineStats returns per-stage counts and the hot/warm/cold totals.
func (s *Service) PipelineStats(ctx context.Context) (transport.PipelineStatsResponse, error) {
	stats, totals, err := s.repo.PipelineStats(ctx)
	if err != nil {
		return transport.PipelineStatsResponse{}, err
	}

	out := transport.PipelineStatsResponse{
		Stages: make(map[string]transport.StageStatResponse, len(domain.PipelineStages)),
		Totals: transport.PipelineTotals(totals),
	}
	for _, stage := range domain.PipelineStages {
		out.Stages[stage] = transport.StageStatResponse{}
	}
	for _, stat := range stats {
		out.Stages[stat.Stage] = transport.StageStatResponse{
			Count:          stat.Count,
			AvgProbability: roundOne(stat.AvgProbability),
		}
	}
	return out, nil
}

func (s *Service) getLead(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, mapNotFound(err)
	}
	return lead, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgLeadNotFound)
	}
	return err
}

func snapshot(lead repository.Lead) judge.LeadSnapshot {
	return judge.LeadSnapshot{
		Name:               lead.Name,
		Email:              lead.Email,
		Phone:              lead.Phone,
		LanguagePreference: lead.LanguagePreference,
		PropertyInterests:  lead.PropertyInterests,
		Notes:              lead.Notes,
		LeadSource:         lead.LeadSource,
	}
}

func changedFields(req transport.UpdateLeadRequest) []string {
	fields := make([]string, 0, 8)
	if req.Name != nil {
		fields = append(fields, "name")
	}
	if req.Phone != nil {
		fields = append(fields, "phone")
	}
	if req.Email != nil {
		fields = append(fields, "email")
	}
	if req.LanguagePreference != nil {
		fields = append(fields, "language_preference")
	}
	if req.PropertyInterests != nil {
		fields = append(fields, "property_interests")
	}
	if req.Notes != nil {
		fields = append(fields, "notes")
	}
	if req.LeadSource != nil {
		fields = append(fields, "lead_source")
	}
	if req.EstimatedDealValue != nil {
		fields = append(fields, "estimated_deal_value")
	}
	sort.Strings(fields)
	return fields
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func roundOne(value float64) float64 {
	return math.Round(value*10) / 10
}
