package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"propboost_backend/platform/apperr"
	"propboost_backend/platform/config"
	"propboost_backend/platform/logger"
)

// VoiceCallRunner places a scheduled call for a lead.
type VoiceCallRunner interface {
	PlaceScheduledCall(ctx context.Context, leadID uuid.UUID, language string) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	runner VoiceCallRunner
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, runner VoiceCallRunner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		runner: runner,
		log:    log,
	}

	mux.HandleFunc(TaskVoiceCall, w.handleVoiceCall)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleVoiceCall(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseVoiceCallPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	err = w.runner.PlaceScheduledCall(ctx, leadID, payload.Language)
	if apperr.Is(err, apperr.KindNotFound) {
		w.log.Info("voice call skipped, lead gone", "lead_id", leadID)
		return nil
	}
	if err != nil {
		w.log.Error("scheduled voice call failed", "lead_id", leadID, "error", err)
	}
	return err
}
