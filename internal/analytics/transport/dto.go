package transport

import (
	"time"

	"github.com/google/uuid"
)

type LeadTotals struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
}

type ContentTotals struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Flagged  int `json:"flagged"`
}

type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type DashboardResponse struct {
	Leads             LeadTotals     `json:"leads"`
	Properties        int            `json:"properties"`
	Content           ContentTotals  `json:"content"`
	Pipeline          map[string]int `json:"pipeline"`
	ScoreDistribution []ScoreBucket  `json:"score_distribution"`
}

type LeaderboardEntry struct {
	Rank                  int     `json:"rank"`
	Source                string  `json:"source"`
	TotalLeads            int     `json:"total_leads"`
	ConvertedLeads        int     `json:"converted_leads"`
	ConversionRate        float64 `json:"conversion_rate"`
	AvgScore              float64 `json:"avg_score"`
	TotalProjectedRevenue float64 `json:"total_projected_revenue"`
}

type SourcePerformance struct {
	Source        string  `json:"source"`
	TotalLeads    int     `json:"total_leads"`
	HotLeads      int     `json:"hot_leads"`
	HotRate       float64 `json:"hot_rate"`
	AvgScore      float64 `json:"avg_score"`
	PipelineValue float64 `json:"pipeline_value"`
}

type VoiceStatsResponse struct {
	TotalCalls         int            `json:"total_calls"`
	ByStatus           map[string]int `json:"by_status"`
	Qualification      map[string]int `json:"qualification"`
	QualificationRate  float64        `json:"qualification_rate"`
	AvgDurationSeconds float64        `json:"avg_duration_seconds"`
}

type CallLogsRequest struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

type CallLogResponse struct {
	ID                  uuid.UUID      `json:"id"`
	CallID              string         `json:"call_id"`
	LeadID              uuid.UUID      `json:"lead_id"`
	LeadName            string         `json:"lead_name"`
	Transcript          string         `json:"transcript"`
	CallAnalysis        map[string]any `json:"call_analysis"`
	DurationSeconds     int            `json:"duration_seconds"`
	QualificationResult string         `json:"qualification_result"`
	CreatedAt           time.Time      `json:"created_at"`
}
