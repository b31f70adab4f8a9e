package scheduler

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TaskVoiceCall = "leads.voice_call"

type VoiceCallPayload struct {
	LeadID   string `json:"leadId"`
	Language string `json:"language"`
}

// voiceCallTaskID keys the task by lead so a lead is queued at most once.
func voiceCallTaskID(leadID uuid.UUID) string {
	return "voice-call:" + leadID.String()
}

func NewVoiceCallTask(payload VoiceCallPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoiceCall, data), nil
}

func ParseVoiceCallPayload(task *asynq.Task) (VoiceCallPayload, error) {
	var payload VoiceCallPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return VoiceCallPayload{}, err
	}
	return payload, nil
}
