package adapters

import (
	"context"

	"github.com/google/uuid"

	leadports "propboost_backend/internal/leads/ports"
	"propboost_backend/platform/logger"
)

// VoiceCallScheduler hands calls to the asynq queue and falls back to the
// in-process executor when the queue is absent or refuses the task.
type VoiceCallScheduler struct {
	queue leadports.VoiceCallScheduler
	local leadports.VoiceCallScheduler
	log   *logger.Logger
}

// NewVoiceCallScheduler creates the scheduler adapter. queue may be nil.
func NewVoiceCallScheduler(queue, local leadports.VoiceCallScheduler, log *logger.Logger) *VoiceCallScheduler {
	return &VoiceCallScheduler{queue: queue, local: local, log: log}
}

// ScheduleVoiceCall enqueues the call, running it locally if enqueueing fails.
func (a *VoiceCallScheduler) ScheduleVoiceCall(ctx context.Context, leadID uuid.UUID, language string) error {
	if a.queue != nil {
		err := a.queue.ScheduleVoiceCall(ctx, leadID, language)
		if err == nil {
			return nil
		}
		a.log.WithContext(ctx).DependencyFallback("redis", "enqueue_voice_call", err, "lead_id", leadID)
	}
	return a.local.ScheduleVoiceCall(ctx, leadID, language)
}

// Compile-time check.
var _ leadports.VoiceCallScheduler = (*VoiceCallScheduler)(nil)
