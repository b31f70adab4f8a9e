package domain

import (
	"strings"
	"testing"
)

func TestCreationDefaults(t *testing.T) {
	cases := []struct {
		score       int
		stage       string
		probability int
	}{
		{10, StageQualified, 60},
		{8, StageQualified, 60},
		{7, StageNew, 30},
		{6, StageNew, 30},
		{5, StageNew, 10},
		{0, StageNew, 10},
	}
	for _, tc := range cases {
		stage, probability := CreationDefaults(tc.score)
		if stage != tc.stage || probability != tc.probability {
			t.Fatalf("score %d: expected %s/%d, got %s/%d", tc.score, tc.stage, tc.probability, stage, probability)
		}
	}
}

func TestVoiceCallThresholdIsStrict(t *testing.T) {
	if QualifiesForVoiceCall(7) {
		t.Fatal("score 7 must not trigger a call")
	}
	if !QualifiesForVoiceCall(8) {
		t.Fatal("score 8 must trigger a call")
	}
}

func TestValidStagesMessageListsEveryStage(t *testing.T) {
	msg := ValidStagesMessage()
	for _, stage := range PipelineStages {
		if !strings.Contains(msg, stage) {
			t.Fatalf("expected %q in %q", stage, msg)
		}
	}
	if IsKnownPipelineStage("archived") {
		t.Fatal("unexpected stage accepted")
	}
}

func TestExtractQualificationPrefersCustomData(t *testing.T) {
	analysis := map[string]any{
		"budget":   "1M AED",
		"location": "Marina",
		"custom_analysis_data": map[string]any{
			"budget":   "3M AED",
			"bedrooms": float64(2),
			"timeline": "  ",
		},
	}

	got := ExtractQualification(analysis)
	if got["budget"] != "3M AED" || got["location"] != "Marina" || got["bedrooms"] != float64(2) {
		t.Fatalf("unexpected extraction: %+v", got)
	}
	if _, ok := got["timeline"]; ok {
		t.Fatal("blank values must be skipped")
	}
}

func TestQualificationResult(t *testing.T) {
	cases := []struct {
		name     string
		analysis map[string]any
		want     string
	}{
		{"explicit custom", map[string]any{"custom_analysis_data": map[string]any{"qualification_result": "Interested"}}, QualificationQualified},
		{"callback flag", map[string]any{"callback_requested": true}, QualificationCallback},
		{"not interested", map[string]any{"custom_analysis_data": map[string]any{"interested": false}}, QualificationNotInterested},
		{"nothing", map[string]any{}, QualificationUnknown},
	}
	for _, tc := range cases {
		if got := QualificationResult(tc.analysis); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
