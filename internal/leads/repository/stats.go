package repository

import (
	"context"
	"fmt"
)

// StageStat is the lead count and mean probability of one stage.
type StageStat struct {
	Stage          string
	Count          int
	AvgProbability float64
}

// ScoreTotals buckets all leads by score.
type ScoreTotals struct {
	Total int
	Hot   int
	Warm  int
	Cold  int
}

func (r *Repo) PipelineStats(ctx context.Context) ([]StageStat, ScoreTotals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT stage, COUNT(*), COALESCE(AVG(probability), 0)::float8
		FROM leads
		GROUP BY stage`)
	if err != nil {
		return nil, ScoreTotals{}, fmt.Errorf("pipeline stage stats: %w", err)
	}
	defer rows.Close()

	stats := make([]StageStat, 0)
	for rows.Next() {
		var stat StageStat
		if err := rows.Scan(&stat.Stage, &stat.Count, &stat.AvgProbability); err != nil {
			return nil, ScoreTotals{}, fmt.Errorf("scan stage stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, ScoreTotals{}, err
	}

	var totals ScoreTotals
	if err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE score >= 8),
			COUNT(*) FILTER (WHERE score >= 6 AND score < 8),
			COUNT(*) FILTER (WHERE score < 6)
		FROM leads`).Scan(&totals.Total, &totals.Hot, &totals.Warm, &totals.Cold); err != nil {
		return nil, ScoreTotals{}, fmt.Errorf("pipeline score totals: %w", err)
	}

	return stats, totals, nil
}
