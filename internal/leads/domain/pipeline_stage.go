// Package domain holds the pipeline rules of the leads bounded context.
package domain

import "strings"

const (
	StageNew         = "new"
	StageQualified   = "qualified"
	StageViewing     = "viewing"
	StageNegotiation = "negotiation"
	StageClosing     = "closing"
	StageWon         = "won"
	StageLost        = "lost"
)

// PipelineStages lists the stages in pipeline order.
var PipelineStages = []string{
	StageNew,
	StageQualified,
	StageViewing,
	StageNegotiation,
	StageClosing,
	StageWon,
	StageLost,
}

var knownPipelineStages = map[string]struct{}{
	StageNew:         {},
	StageQualified:   {},
	StageViewing:     {},
	StageNegotiation: {},
	StageClosing:     {},
	StageWon:         {},
	StageLost:        {},
}

func IsKnownPipelineStage(stage string) bool {
	_, ok := knownPipelineStages[stage]
	return ok
}

// ValidStagesMessage is the validation error shown for an unknown stage.
func ValidStagesMessage() string {
	return "invalid stage, valid stages: " + strings.Join(PipelineStages, ", ")
}

// CreationDefaults derives the initial stage and probability from the score.
// These apply once, at creation; rescoring never moves a lead.
func CreationDefaults(score int) (stage string, probability int) {
	switch {
	case score >= 8:
		return StageQualified, 60
	case score >= 6:
		return StageNew, 30
	default:
		return StageNew, 10
	}
}

// VoiceCallThreshold is the score a lead must exceed to get an automatic call.
const VoiceCallThreshold = 7

func QualifiesForVoiceCall(score int) bool {
	return score > VoiceCallThreshold
}

// Score buckets used by the pipeline totals.
const (
	HotScoreMin  = 8
	WarmScoreMin = 6
)
