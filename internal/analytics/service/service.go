// Package service computes the dashboard and analytics views.
package service

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"propboost_backend/internal/analytics/repository"
	"propboost_backend/internal/analytics/transport"
	leaddomain "propboost_backend/internal/leads/domain"
)

const (
	defaultCallLogLimit = 50
	minScore            = 1
	maxScore            = 10
)

// Service answers read-only analytics queries.
type Service struct {
	reader repository.Reader
}

func New(reader repository.Reader) *Service {
	return &Service{reader: reader}
}

// Dashboard gathers the headline numbers in parallel.
func (s *Service) Dashboard(ctx context.Context) (transport.DashboardResponse, error) {
	var (
		leads   repository.LeadTotals
		props   int
		content repository.ContentTotals
		stages  map[string]int
		scores  map[int]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { leads, err = s.reader.LeadTotals(gctx); return })
	g.Go(func() (err error) { props, err = s.reader.PropertyCount(gctx); return })
	g.Go(func() (err error) { content, err = s.reader.ContentTotals(gctx); return })
	g.Go(func() (err error) { stages, err = s.reader.StageCounts(gctx); return })
	g.Go(func() (err error) { scores, err = s.reader.ScoreCounts(gctx); return })
	if err := g.Wait(); err != nil {
		return transport.DashboardResponse{}, err
	}

	pipeline := make(map[string]int, len(leaddomain.PipelineStages))
	for _, stage := range leaddomain.PipelineStages {
		pipeline[stage] = stages[stage]
	}

	return transport.DashboardResponse{
		Leads:             transport.LeadTotals(leads),
		Properties:        props,
		Content:           transport.ContentTotals(content),
		Pipeline:          pipeline,
		ScoreDistribution: buckets(scores),
	}, nil
}

// ScoreDistribution returns lead counts for every score from 1 to 10.
func (s *Service) ScoreDistribution(ctx context.Context) ([]transport.ScoreBucket, error) {
	scores, err := s.reader.ScoreCounts(ctx)
	if err != nil {
		return nil, err
	}
	return buckets(scores), nil
}

// Leaderboard ranks lead sources by conversion rate, then projected revenue.
func (s *Service) Leaderboard(ctx context.Context) ([]transport.LeaderboardEntry, error) {
	stats, err := s.reader.SourceStats(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]transport.LeaderboardEntry, len(stats))
	for i, st := range stats {
		entries[i] = transport.LeaderboardEntry{
			Source:                st.Source,
			TotalLeads:            st.TotalLeads,
			ConvertedLeads:        st.ConvertedLeads,
			ConversionRate:        percent(st.ConvertedLeads, st.TotalLeads),
			AvgScore:              roundOne(st.AvgScore),
			TotalProjectedRevenue: math.Round(st.ProjectedRevenue*100) / 100,
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ConversionRate != entries[j].ConversionRate {
			return entries[i].ConversionRate > entries[j].ConversionRate
		}
		if entries[i].TotalProjectedRevenue != entries[j].TotalProjectedRevenue {
			return entries[i].TotalProjectedRevenue > entries[j].TotalProjectedRevenue
		}
		return entries[i].Source < entries[j].Source
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// SourcePerformance reports lead quality per source, largest sources first.
func (s *Service) SourcePerformance(ctx context.Context) ([]transport.SourcePerformance, error) {
	stats, err := s.reader.SourceStats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.SourcePerformance, len(stats))
	for i, st := range stats {
		out[i] = transport.SourcePerformance{
			Source:        st.Source,
			TotalLeads:    st.TotalLeads,
			HotLeads:      st.HotLeads,
			HotRate:       percent(st.HotLeads, st.TotalLeads),
			AvgScore:      roundOne(st.AvgScore),
			PipelineValue: math.Round(st.PipelineValue*100) / 100,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalLeads != out[j].TotalLeads {
			return out[i].TotalLeads > out[j].TotalLeads
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

// VoiceStats summarises call outcomes across leads and call logs.
func (s *Service) VoiceStats(ctx context.Context) (transport.VoiceStatsResponse, error) {
	var (
		byStatus map[string]int
		quals    map[string]int
		totals   repository.CallTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { byStatus, err = s.reader.VoiceStatusCounts(gctx); return })
	g.Go(func() (err error) { quals, err = s.reader.QualificationCounts(gctx); return })
	g.Go(func() (err error) { totals, err = s.reader.CallTotals(gctx); return })
	if err := g.Wait(); err != nil {
		return transport.VoiceStatsResponse{}, err
	}

	qualification := map[string]int{
		leaddomain.QualificationQualified:     quals[leaddomain.QualificationQualified],
		leaddomain.QualificationCallback:      quals[leaddomain.QualificationCallback],
		leaddomain.QualificationNotInterested: quals[leaddomain.QualificationNotInterested],
		leaddomain.QualificationUnknown:       quals[leaddomain.QualificationUnknown],
	}

	return transport.VoiceStatsResponse{
		TotalCalls:         totals.TotalCalls,
		ByStatus:           byStatus,
		Qualification:      qualification,
		QualificationRate:  percent(qualification[leaddomain.QualificationQualified], totals.TotalCalls),
		AvgDurationSeconds: roundOne(totals.AvgDurationSeconds),
	}, nil
}

// CallLogs returns the most recent call logs.
func (s *Service) CallLogs(ctx context.Context, req transport.CallLogsRequest) ([]transport.CallLogResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultCallLogLimit
	}
	logs, err := s.reader.ListCallLogs(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CallLogResponse, len(logs))
	for i, l := range logs {
		out[i] = transport.CallLogResponse{
			ID:                  l.ID,
			CallID:              l.CallID,
			LeadID:              l.LeadID,
			LeadName:            l.LeadName,
			Transcript:          l.Transcript,
			CallAnalysis:        l.CallAnalysis,
			DurationSeconds:     l.DurationSeconds,
			QualificationResult: l.QualificationResult,
			CreatedAt:           l.CreatedAt,
		}
	}
	return out, nil
}

func buckets(scores map[int]int) []transport.ScoreBucket {
	out := make([]transport.ScoreBucket, 0, maxScore)
	for score := minScore; score <= maxScore; score++ {
		out = append(out, transport.ScoreBucket{Score: score, Count: scores[score]})
	}
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundOne(float64(part) * 100 / float64(total))
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
