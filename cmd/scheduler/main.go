package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/leads"
	"propboost_backend/internal/providers"
	"propboost_backend/internal/scheduler"
	"propboost_backend/platform/ai/openaicompat"
	"propboost_backend/platform/config"
	"propboost_backend/platform/db"
	"propboost_backend/platform/logger"
	"propboost_backend/platform/metrics"
	"propboost_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := db.Retry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	m := metrics.Registry("propboost_scheduler")
	val := validator.New()

	// Worker-side call placement wiring (no HTTP handlers required).
	gateway, err := judge.New(openaicompat.NewModel(openaicompat.Config{
		APIKey:  cfg.GetLLMAPIKey(),
		BaseURL: cfg.GetLLMBaseURL(),
		Model:   cfg.GetLLMModel(),
	}), cfg.GetJudgeTimeout(), log, m)
	if err != nil {
		log.Error("failed to initialize judge", "error", err)
		panic("failed to initialize judge: " + err.Error())
	}

	voiceClient := providers.NewVoiceClient(cfg, cfg.GetProviderTimeout(), log)
	auditModule := audit.NewModule(pool, val, log, m)

	leadsModule, err := leads.NewModule(pool, gateway, voiceClient, auditModule.Recorder(), val, log, m)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	sweeper, err := scheduler.NewSweeper(cfg.GetVoiceCallSweepSchedule(), cfg.GetVoiceCallStaleAfter(), leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize stale call sweeper", "error", err)
		panic("failed to initialize stale call sweeper: " + err.Error())
	}
	sweeper.Start()
	defer sweeper.Stop()

	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; running stale call sweeper only")
		<-ctx.Done()
		return
	}

	worker, err := scheduler.NewWorker(cfg, leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}
