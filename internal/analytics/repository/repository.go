// Package repository reads aggregate figures straight from the pipeline tables.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LeadTotals struct {
	Total int
	Hot   int
	Warm  int
	Cold  int
}

type ContentTotals struct {
	Total    int
	Approved int
	Pending  int
	Flagged  int
}

type SourceStat struct {
	Source           string
	TotalLeads       int
	ConvertedLeads   int
	HotLeads         int
	AvgScore         float64
	PipelineValue    float64
	ProjectedRevenue float64
}

type CallTotals struct {
	TotalCalls         int
	AvgDurationSeconds float64
}

type CallLog struct {
	ID                  uuid.UUID
	CallID              string
	LeadID              uuid.UUID
	LeadName            string
	Transcript          string
	CallAnalysis        map[string]any
	DurationSeconds     int
	QualificationResult string
	CreatedAt           time.Time
}

// Reader is the analytics read model.
type Reader interface {
	LeadTotals(ctx context.Context) (LeadTotals, error)
	PropertyCount(ctx context.Context) (int, error)
	ContentTotals(ctx context.Context) (ContentTotals, error)
	StageCounts(ctx context.Context) (map[string]int, error)
	ScoreCounts(ctx context.Context) (map[int]int, error)
	SourceStats(ctx context.Context) ([]SourceStat, error)
	VoiceStatusCounts(ctx context.Context) (map[string]int, error)
	CallTotals(ctx context.Context) (CallTotals, error)
	QualificationCounts(ctx context.Context) (map[string]int, error)
	ListCallLogs(ctx context.Context, limit int) ([]CallLog, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Reader = (*Repo)(nil)

func (r *Repo) LeadTotals(ctx context.Context) (LeadTotals, error) {
	var t LeadTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE score >= 8),
			COUNT(*) FILTER (WHERE score BETWEEN 6 AND 7),
			COUNT(*) FILTER (WHERE score < 6)
		FROM leads`).Scan(&t.Total, &t.Hot, &t.Warm, &t.Cold)
	if err != nil {
		return LeadTotals{}, fmt.Errorf("lead totals: %w", err)
	}
	return t, nil
}

func (r *Repo) PropertyCount(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return 0, fmt.Errorf("property count: %w", err)
	}
	return n, nil
}

func (r *Repo) ContentTotals(ctx context.Context) (ContentTotals, error) {
	var t ContentTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE approved),
			COUNT(*) FILTER (WHERE NOT approved AND compliance_status <> 'flagged'),
			COUNT(*) FILTER (WHERE compliance_status = 'flagged')
		FROM generated_content`).Scan(&t.Total, &t.Approved, &t.Pending, &t.Flagged)
	if err != nil {
		return ContentTotals{}, fmt.Errorf("content totals: %w", err)
	}
	return t, nil
}

func (r *Repo) StageCounts(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "stage counts", `SELECT stage, COUNT(*) FROM leads GROUP BY stage`)
}

func (r *Repo) VoiceStatusCounts(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "voice status counts",
		`SELECT voice_call_status, COUNT(*) FROM leads WHERE voice_call_status <> 'none' GROUP BY voice_call_status`)
}

func (r *Repo) QualificationCounts(ctx context.Context) (map[string]int, error) {
	return r.countBy(ctx, "qualification counts",
		`SELECT qualification_result, COUNT(*) FROM voice_call_logs GROUP BY qualification_result`)
}

func (r *Repo) countBy(ctx context.Context, op, query string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func (r *Repo) ScoreCounts(ctx context.Context) (map[int]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT score, COUNT(*) FROM leads GROUP BY score`)
	if err != nil {
		return nil, fmt.Errorf("score counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var score, n int
		if err := rows.Scan(&score, &n); err != nil {
			return nil, fmt.Errorf("scan score counts: %w", err)
		}
		counts[score] = n
	}
	return counts, rows.Err()
}

func (r *Repo) SourceStats(ctx context.Context) ([]SourceStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lead_source,
			COUNT(*),
			COUNT(*) FILTER (WHERE stage = 'won'),
			COUNT(*) FILTER (WHERE score >= 8),
			COALESCE(AVG(score), 0)::float8,
			COALESCE(SUM(estimated_deal_value), 0)::float8,
			COALESCE(SUM(estimated_deal_value * probability / 100.0), 0)::float8
		FROM leads
		GROUP BY lead_source`)
	if err != nil {
		return nil, fmt.Errorf("source stats: %w", err)
	}
	defer rows.Close()

	stats := make([]SourceStat, 0)
	for rows.Next() {
		var s SourceStat
		if err := rows.Scan(&s.Source, &s.TotalLeads, &s.ConvertedLeads, &s.HotLeads, &s.AvgScore, &s.PipelineValue, &s.ProjectedRevenue); err != nil {
			return nil, fmt.Errorf("scan source stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *Repo) CallTotals(ctx context.Context) (CallTotals, error) {
	var t CallTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(duration_seconds), 0)::float8
		FROM voice_call_logs`).Scan(&t.TotalCalls, &t.AvgDurationSeconds)
	if err != nil {
		return CallTotals{}, fmt.Errorf("call totals: %w", err)
	}
	return t, nil
}

func (r *Repo) ListCallLogs(ctx context.Context, limit int) ([]CallLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.call_id, l.lead_id, COALESCE(ld.name, ''), l.transcript, l.call_analysis,
			l.duration_seconds, l.qualification_result, l.created_at
		FROM voice_call_logs l
		LEFT JOIN leads ld ON ld.id = l.lead_id
		ORDER BY l.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	logs := make([]CallLog, 0)
	for rows.Next() {
		var c CallLog
		var analysis []byte
		if err := rows.Scan(&c.ID, &c.CallID, &c.LeadID, &c.LeadName, &c.Transcript, &analysis,
			&c.DurationSeconds, &c.QualificationResult, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		c.CallAnalysis = map[string]any{}
		if len(analysis) > 0 {
			if err := json.Unmarshal(analysis, &c.CallAnalysis); err != nil {
				return nil, fmt.Errorf("decode call analysis: %w", err)
			}
		}
		logs = append(logs, c)
	}
	return logs, rows.Err()
}
