package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	Name               string         `json:"name" validate:"required,min=1,max=200"`
	Phone              string         `json:"phone" validate:"omitempty,max=40"`
	Email              string         `json:"email" validate:"omitempty,email,max=254"`
	LanguagePreference string         `json:"language_preference" validate:"omitempty,max=40"`
	PropertyInterests  map[string]any `json:"property_interests"`
	Notes              string         `json:"notes" validate:"max=5000"`
	LeadSource         string         `json:"lead_source" validate:"omitempty,max=100"`
	EstimatedDealValue float64        `json:"estimated_deal_value" validate:"min=0"`
}

// UpdateLeadRequest edits contact and interest fields. Stage and probability
// are changed only through the pipeline endpoint.
type UpdateLeadRequest struct {
	Name               *string        `json:"name" validate:"omitempty,min=1,max=200"`
	Phone              *string        `json:"phone" validate:"omitempty,max=40"`
	Email              *string        `json:"email" validate:"omitempty,email,max=254"`
	LanguagePreference *string        `json:"language_preference" validate:"omitempty,max=40"`
	PropertyInterests  map[string]any `json:"property_interests"`
	Notes              *string        `json:"notes" validate:"omitempty,max=5000"`
	LeadSource         *string        `json:"lead_source" validate:"omitempty,max=100"`
	EstimatedDealValue *float64       `json:"estimated_deal_value" validate:"omitempty,min=0"`
}

type ListLeadsRequest struct {
	Stage      string `form:"stage" validate:"omitempty,pipelinestage"`
	ScoreMin   *int   `form:"score_min" validate:"omitempty,min=0,max=10"`
	ScoreMax   *int   `form:"score_max" validate:"omitempty,min=0,max=10"`
	LeadSource string `form:"lead_source" validate:"omitempty,max=100"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=1000"`
}

type UpdateStageRequest struct {
	Stage       string `json:"stage" validate:"required"`
	Probability *int   `json:"probability" validate:"omitempty,min=0,max=100"`
}

type TriggerCallRequest struct {
	LeadID   string `json:"lead_id" validate:"required,uuid"`
	Language string `json:"language" validate:"omitempty,max=40"`
}

type LeadResponse struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Phone              string         `json:"phone"`
	Email              string         `json:"email"`
	LanguagePreference string         `json:"language_preference"`
	PropertyInterests  map[string]any `json:"property_interests"`
	Notes              string         `json:"notes"`
	Score              int            `json:"score"`
	ScoreReasoning     string         `json:"score_reasoning"`
	Category           string         `json:"category"`
	Stage              string         `json:"stage"`
	Probability        int            `json:"probability"`
	AIBriefing         string         `json:"ai_briefing"`
	LeadSource         string         `json:"lead_source"`
	EstimatedDealValue float64        `json:"estimated_deal_value"`
	VoiceCallStatus    string         `json:"voice_call_status"`
	VoiceCallID        string         `json:"voice_call_id,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type StageStatResponse struct {
	Count          int     `json:"count"`
	AvgProbability float64 `json:"avg_probability"`
}

type PipelineTotals struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
}

type PipelineStatsResponse struct {
	Stages map[string]StageStatResponse `json:"stages"`
	Totals PipelineTotals               `json:"totals"`
}

type VoiceCallResponse struct {
	LeadID  uuid.UUID `json:"lead_id"`
	Status  string    `json:"status"`
	CallID  string    `json:"call_id"`
	Message string    `json:"message"`
}

// CallEvent is a voice provider webhook reduced to what reconciliation needs.
type CallEvent struct {
	Event           string
	CallID          string
	LeadID          string
	Transcript      string
	DurationSeconds int
	Analysis        map[string]any
}

type CallEventResponse struct {
	Status  string `json:"status"`
	LeadID  string `json:"lead_id,omitempty"`
	Logged  bool   `json:"logged"`
	Message string `json:"message,omitempty"`
}
