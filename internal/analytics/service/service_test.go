package service

import (
	"context"
	"errors"
	"testing"

	"propboost_backend/internal/analytics/repository"
	"propboost_backend/internal/analytics/transport"
)

const unexpectedErrFmt = "unexpected error: %v"

type fakeReader struct {
	leads   repository.LeadTotals
	props   int
	content repository.ContentTotals
	stages  map[string]int
	scores  map[int]int
	sources []repository.SourceStat
	status  map[string]int
	quals   map[string]int
	calls   repository.CallTotals
	logs    []repository.CallLog
	limit   int
	err     error
}

func (f *fakeReader) LeadTotals(context.Context) (repository.LeadTotals, error) {
	return f.leads, f.err
}

func (f *fakeReader) PropertyCount(context.Context) (int, error) {
	return f.props, nil
}

func (f *fakeReader) ContentTotals(context.Context) (repository.ContentTotals, error) {
	return f.content, nil
}

func (f *fakeReader) StageCounts(context.Context) (map[string]int, error) {
	return f.stages, nil
}

func (f *fakeReader) ScoreCounts(context.Context) (map[int]int, error) {
	return f.scores, nil
}

func (f *fakeReader) SourceStats(context.Context) ([]repository.SourceStat, error) {
	return f.sources, nil
}

func (f *fakeReader) VoiceStatusCounts(context.Context) (map[string]int, error) {
	return f.status, nil
}

func (f *fakeReader) CallTotals(context.Context) (repository.CallTotals, error) {
	return f.calls, nil
}

func (f *fakeReader) QualificationCounts(context.Context) (map[string]int, error) {
	return f.quals, nil
}

func (f *fakeReader) ListCallLogs(_ context.Context, limit int) ([]repository.CallLog, error) {
	f.limit = limit
	return f.logs, nil
}

func TestDashboardFillsEveryStageAndScore(t *testing.T) {
	reader := &fakeReader{
		leads:   repository.LeadTotals{Total: 4, Hot: 2, Warm: 1, Cold: 1},
		props:   3,
		content: repository.ContentTotals{Total: 10, Approved: 6, Pending: 3, Flagged: 1},
		stages:  map[string]int{"new": 2, "won": 2},
		scores:  map[int]int{9: 2, 6: 1, 3: 1},
	}
	got, err := New(reader).Dashboard(context.Background())
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	if got.Leads.Hot != 2 || got.Properties != 3 || got.Content.Flagged != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if len(got.Pipeline) != 7 || got.Pipeline["negotiation"] != 0 || got.Pipeline["won"] != 2 {
		t.Fatalf("unexpected pipeline: %+v", got.Pipeline)
	}
	if len(got.ScoreDistribution) != 10 || got.ScoreDistribution[8].Count != 2 || got.ScoreDistribution[0].Score != 1 {
		t.Fatalf("unexpected distribution: %+v", got.ScoreDistribution)
	}
}

func TestDashboardPropagatesErrors(t *testing.T) {
	reader := &fakeReader{err: errors.New("db down")}
	if _, err := New(reader).Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestLeaderboardRanking(t *testing.T) {
	reader := &fakeReader{sources: []repository.SourceStat{
		{Source: "Bayut", TotalLeads: 10, ConvertedLeads: 2, AvgScore: 6.25, ProjectedRevenue: 500_000},
		{Source: "Referral", TotalLeads: 4, ConvertedLeads: 2, AvgScore: 8.5, ProjectedRevenue: 900_000},
		{Source: "Website", TotalLeads: 5, ConvertedLeads: 1, AvgScore: 5, ProjectedRevenue: 1_000_000},
		{Source: "Empty", TotalLeads: 0},
	}}
	got, err := New(reader).Leaderboard(context.Background())
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	order := []string{got[0].Source, got[1].Source, got[2].Source, got[3].Source}
	want := []string{"Referral", "Website", "Bayut", "Empty"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
	if got[0].Rank != 1 || got[0].ConversionRate != 50 {
		t.Fatalf("unexpected top entry: %+v", got[0])
	}
	if got[1].ConversionRate != 20 || got[2].ConversionRate != 20 {
		t.Fatalf("expected tie on 20%%, got %+v %+v", got[1], got[2])
	}
	if got[2].AvgScore != 6.3 {
		t.Fatalf("expected rounded avg score 6.3, got %v", got[2].AvgScore)
	}
}

func TestLeaderboardTieBreaksOnRevenue(t *testing.T) {
	reader := &fakeReader{sources: []repository.SourceStat{
		{Source: "A", TotalLeads: 10, ConvertedLeads: 1, ProjectedRevenue: 100},
		{Source: "B", TotalLeads: 10, ConvertedLeads: 1, ProjectedRevenue: 200},
	}}
	got, _ := New(reader).Leaderboard(context.Background())
	if got[0].Source != "B" {
		t.Fatalf("expected B first on revenue tie-break, got %s", got[0].Source)
	}
}

func TestSourcePerformance(t *testing.T) {
	reader := &fakeReader{sources: []repository.SourceStat{
		{Source: "Website", TotalLeads: 3, HotLeads: 1, PipelineValue: 1234.567},
		{Source: "Bayut", TotalLeads: 8, HotLeads: 4},
	}}
	got, err := New(reader).SourcePerformance(context.Background())
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if got[0].Source != "Bayut" || got[0].HotRate != 50 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].HotRate != 33.3 || got[1].PipelineValue != 1234.57 {
		t.Fatalf("unexpected rounding: %+v", got[1])
	}
}

func TestVoiceStats(t *testing.T) {
	reader := &fakeReader{
		status: map[string]int{"completed": 3, "failed": 1},
		quals:  map[string]int{"qualified": 1, "callback": 2},
		calls:  repository.CallTotals{TotalCalls: 3, AvgDurationSeconds: 95.56},
	}
	got, err := New(reader).VoiceStats(context.Background())
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if got.TotalCalls != 3 || got.ByStatus["completed"] != 3 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if got.Qualification["not_interested"] != 0 || got.Qualification["callback"] != 2 {
		t.Fatalf("expected every qualification key, got %+v", got.Qualification)
	}
	if got.QualificationRate != 33.3 || got.AvgDurationSeconds != 95.6 {
		t.Fatalf("unexpected rates: %+v", got)
	}
}

func TestCallLogsDefaultLimit(t *testing.T) {
	reader := &fakeReader{}
	if _, err := New(reader).CallLogs(context.Background(), transport.CallLogsRequest{}); err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if reader.limit != defaultCallLogLimit {
		t.Fatalf("expected default limit %d, got %d", defaultCallLogLimit, reader.limit)
	}
}
