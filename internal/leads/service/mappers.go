package service

import (
	"propboost_backend/internal/judge"
	"propboost_backend/internal/leads/repository"
	"propboost_backend/internal/leads/transport"
)

// ToLeadResponse converts a stored lead to its API shape.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	interests := lead.PropertyInterests
	if interests == nil {
		interests = map[string]any{}
	}
	return transport.LeadResponse{
		ID:                 lead.ID,
		Name:               lead.Name,
		Phone:              lead.Phone,
		Email:              lead.Email,
		LanguagePreference: lead.LanguagePreference,
		PropertyInterests:  interests,
		Notes:              lead.Notes,
		Score:              lead.Score,
		ScoreReasoning:     lead.ScoreReasoning,
		Category:           judge.CategoryForScore(lead.Score),
		Stage:              lead.Stage,
		Probability:        lead.Probability,
		AIBriefing:         lead.AIBriefing,
		LeadSource:         lead.LeadSource,
		EstimatedDealValue: lead.EstimatedDealValue,
		VoiceCallStatus:    lead.VoiceCallStatus,
		VoiceCallID:        lead.VoiceCallID,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}
