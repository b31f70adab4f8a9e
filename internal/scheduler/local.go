package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"propboost_backend/platform/logger"
)

const defaultLocalConcurrency = 4

// LocalExecutor runs voice calls in-process when no Redis is configured.
// Concurrency is bounded and a lead already in flight is not started twice.
type LocalExecutor struct {
	runner   VoiceCallRunner
	sem      *semaphore.Weighted
	timeout  time.Duration
	log      *logger.Logger
	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
	wg       sync.WaitGroup
}

func NewLocalExecutor(runner VoiceCallRunner, concurrency int, log *logger.Logger) *LocalExecutor {
	if concurrency < 1 {
		concurrency = defaultLocalConcurrency
	}
	return &LocalExecutor{
		runner:   runner,
		sem:      semaphore.NewWeighted(int64(concurrency)),
		timeout:  voiceCallTimeout,
		log:      log,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

// ScheduleVoiceCall starts the call in the background and returns at once.
// The call outlives the request that scheduled it.
func (e *LocalExecutor) ScheduleVoiceCall(ctx context.Context, leadID uuid.UUID, language string) error {
	e.mu.Lock()
	if _, busy := e.inFlight[leadID]; busy {
		e.mu.Unlock()
		return nil
	}
	e.inFlight[leadID] = struct{}{}
	e.mu.Unlock()

	runCtx := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer e.release(leadID)

		if err := e.sem.Acquire(runCtx, 1); err != nil {
			return
		}
		defer e.sem.Release(1)

		callCtx, cancel := context.WithTimeout(runCtx, e.timeout)
		defer cancel()
		if err := e.runner.PlaceScheduledCall(callCtx, leadID, language); err != nil {
			e.log.Error("local voice call failed", "lead_id", leadID, "error", err)
		}
	}()
	return nil
}

// Wait blocks until every started call has finished.
func (e *LocalExecutor) Wait() {
	e.wg.Wait()
}

func (e *LocalExecutor) release(leadID uuid.UUID) {
	e.mu.Lock()
	delete(e.inFlight, leadID)
	e.mu.Unlock()
}
