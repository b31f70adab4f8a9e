package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"propboost_backend/internal/adapters"
	"propboost_backend/internal/analytics"
	"propboost_backend/internal/audit"
	"propboost_backend/internal/content"
	apphttp "propboost_backend/internal/http"
	"propboost_backend/internal/http/router"
	"propboost_backend/internal/judge"
	"propboost_backend/internal/leads"
	leadports "propboost_backend/internal/leads/ports"
	"propboost_backend/internal/messaging"
	"propboost_backend/internal/providers"
	"propboost_backend/internal/scheduler"
	"propboost_backend/internal/webhook"
	"propboost_backend/migrations"
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
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := db.Retry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.Files, log)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

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
	log.Info("database connection established")

	health := db.NewPoolAdapter(pool)
	m := metrics.Registry("propboost")
	m.ObservePool("propboost", health.Stat)
	val := validator.New()

	gateway, err := judge.New(openaicompat.NewModel(openaicompat.Config{
		APIKey:  cfg.GetLLMAPIKey(),
		BaseURL: cfg.GetLLMBaseURL(),
		Model:   cfg.GetLLMModel(),
	}), cfg.GetJudgeTimeout(), log, m)
	if err != nil {
		log.Error("failed to initialize judge", "error", err)
		panic("failed to initialize judge: " + err.Error())
	}
	if cfg.GetLLMAPIKey() == "" {
		log.Warn("LLM_API_KEY not configured; scoring and generation fall back to defaults")
	}

	timeout := cfg.GetProviderTimeout()
	whatsappClient := providers.NewWhatsAppClient(cfg, timeout, log)
	emailSender := providers.NewEmailSender(cfg, timeout, log)
	voiceClient := providers.NewVoiceClient(cfg, timeout, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	auditModule := audit.NewModule(pool, val, log, m)
	recorder := auditModule.Recorder()

	leadsModule, err := leads.NewModule(pool, gateway, voiceClient, recorder, val, log, m)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	voiceScheduler, closeScheduler := initVoiceCallScheduler(cfg, leadsModule, log)
	defer closeScheduler()
	leadsModule.SetVoiceCallScheduler(voiceScheduler)

	contentModule := content.NewModule(pool, gateway, recorder, cfg, val, log, m)

	// Anti-Corruption Layer: messaging reads lead contact data through its own port
	leadContacts := adapters.NewLeadContactReader(leadsModule.Repository())
	messagingModule, err := messaging.NewModule(pool, leadContacts, gateway, whatsappClient, emailSender, recorder, val, log, m)
	if err != nil {
		log.Error("failed to initialize messaging module", "error", err)
		panic("failed to initialize messaging module: " + err.Error())
	}

	webhookModule := webhook.NewModule(leadsModule.Service(), cfg, val, log)
	if cfg.GetVoiceWebhookSecret() == "" {
		log.Warn("VOICE_WEBHOOK_SECRET not configured; voice webhook signatures are not verified")
	}

	analyticsModule := analytics.NewModule(pool, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  health,
		Metrics: m.Handler(),
		Modules: []apphttp.Module{
			leadsModule,
			contentModule,
			messagingModule,
			auditModule,
			analyticsModule,
			webhookModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initVoiceCallScheduler prefers the asynq queue and keeps an in-process
// executor for when Redis is absent or unreachable.
func initVoiceCallScheduler(cfg *config.Config, leadsModule *leads.Module, log *logger.Logger) (leadports.VoiceCallScheduler, func()) {
	local := scheduler.NewLocalExecutor(leadsModule.Service(), cfg.GetAsynqConcurrency(), log)

	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; voice calls run in-process")
		return adapters.NewVoiceCallScheduler(nil, local, log), local.Wait
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize voice call queue; voice calls run in-process", "error", err)
		return adapters.NewVoiceCallScheduler(nil, local, log), local.Wait
	}

	return adapters.NewVoiceCallScheduler(client, local, log), func() {
		_ = client.Close()
		local.Wait()
	}
}
