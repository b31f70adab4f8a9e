// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	GetDatabaseMaxConns() int
	GetDatabaseMinConns() int
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides Redis/asynq settings for background tasks.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// JudgeConfig provides settings for the LLM judge.
type JudgeConfig interface {
	GetLLMAPIKey() string
	GetLLMBaseURL() string
	GetLLMModel() string
	GetJudgeTimeout() time.Duration
}

// WhatsAppConfig provides settings for the WhatsApp gateway.
type WhatsAppConfig interface {
	GetWhatsAppURL() string
	GetWhatsAppKey() string
	GetWhatsAppDeviceID() string
}

// EmailConfig provides settings for outbound email.
type EmailConfig interface {
	GetSendGridAPIKey() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// VoiceConfig provides settings for the outbound voice-call provider.
type VoiceConfig interface {
	GetVoiceAPIURL() string
	GetVoiceAPIKey() string
	GetVoiceAgentID() string
	GetVoiceFromNumber() string
	GetVoiceWebhookSecret() string
}

// PipelineConfig provides tuning knobs for the engagement pipeline.
type PipelineConfig interface {
	GetProviderTimeout() time.Duration
	GetContentParallelism() int
	GetVoiceCallStaleAfter() time.Duration
	GetVoiceCallSweepSchedule() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	DatabaseMaxConns       int
	DatabaseMinConns       int
	JWTAccessSecret        string
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	RedisURL               string
	RedisTLSInsecure       bool
	AsynqQueueName         string
	AsynqConcurrency       int
	LLMAPIKey              string
	LLMBaseURL             string
	LLMModel               string
	JudgeTimeout           time.Duration
	WhatsAppURL            string
	WhatsAppKey            string
	WhatsAppDeviceID       string
	SendGridAPIKey         string
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	EmailFromName          string
	EmailFromAddress       string
	VoiceAPIURL            string
	VoiceAPIKey            string
	VoiceAgentID           string
	VoiceFromNumber        string
	VoiceWebhookSecret     string
	ProviderTimeout        time.Duration
	ContentParallelism     int
	VoiceCallStaleAfter    time.Duration
	VoiceCallSweepSchedule string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetDatabaseMaxConns() int { return c.DatabaseMaxConns }
func (c *Config) GetDatabaseMinConns() int { return c.DatabaseMinConns }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// JudgeConfig implementation
func (c *Config) GetLLMAPIKey() string           { return c.LLMAPIKey }
func (c *Config) GetLLMBaseURL() string          { return c.LLMBaseURL }
func (c *Config) GetLLMModel() string            { return c.LLMModel }
func (c *Config) GetJudgeTimeout() time.Duration { return c.JudgeTimeout }

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppURL() string      { return c.WhatsAppURL }
func (c *Config) GetWhatsAppKey() string      { return c.WhatsAppKey }
func (c *Config) GetWhatsAppDeviceID() string { return c.WhatsAppDeviceID }

// EmailConfig implementation
func (c *Config) GetSendGridAPIKey() string   { return c.SendGridAPIKey }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// VoiceConfig implementation
func (c *Config) GetVoiceAPIURL() string        { return c.VoiceAPIURL }
func (c *Config) GetVoiceAPIKey() string        { return c.VoiceAPIKey }
func (c *Config) GetVoiceAgentID() string       { return c.VoiceAgentID }
func (c *Config) GetVoiceFromNumber() string    { return c.VoiceFromNumber }
func (c *Config) GetVoiceWebhookSecret() string { return c.VoiceWebhookSecret }

// PipelineConfig implementation
func (c *Config) GetProviderTimeout() time.Duration     { return c.ProviderTimeout }
func (c *Config) GetContentParallelism() int            { return c.ContentParallelism }
func (c *Config) GetVoiceCallStaleAfter() time.Duration { return c.VoiceCallStaleAfter }
func (c *Config) GetVoiceCallSweepSchedule() string     { return c.VoiceCallSweepSchedule }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		DatabaseMaxConns:       mustInt(getEnv("DB_MAX_CONNS", "25")),
		DatabaseMinConns:       mustInt(getEnv("DB_MIN_CONNS", "2")),
		JWTAccessSecret:        getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:               getEnv("REDIS_URL", ""),
		RedisTLSInsecure:       strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		LLMAPIKey:              getEnv("LLM_API_KEY", ""),
		LLMBaseURL:             getEnv("LLM_BASE_URL", ""),
		LLMModel:               getEnv("LLM_MODEL", "gpt-4o-mini"),
		JudgeTimeout:           mustDuration(getEnv("JUDGE_TIMEOUT", "45s")),
		WhatsAppURL:            getEnv("WHATSAPP_URL", ""),
		WhatsAppKey:            getEnv("WHATSAPP_KEY", ""),
		WhatsAppDeviceID:       getEnv("WHATSAPP_DEVICE_ID", ""),
		SendGridAPIKey:         getEnv("SENDGRID_API_KEY", ""),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		EmailFromName:          getEnv("EMAIL_FROM_NAME", "PropBoost"),
		EmailFromAddress:       getEnv("EMAIL_FROM_ADDRESS", ""),
		VoiceAPIURL:            getEnv("VOICE_API_URL", "https://api.retellai.com"),
		VoiceAPIKey:            getEnv("VOICE_API_KEY", ""),
		VoiceAgentID:           getEnv("VOICE_AGENT_ID", ""),
		VoiceFromNumber:        getEnv("VOICE_FROM_NUMBER", ""),
		VoiceWebhookSecret:     getEnv("VOICE_WEBHOOK_SECRET", ""),
		ProviderTimeout:        mustDuration(getEnv("PROVIDER_TIMEOUT", "15s")),
		ContentParallelism:     mustInt(getEnv("CONTENT_PARALLELISM", "4")),
		VoiceCallStaleAfter:    mustDuration(getEnv("VOICE_CALL_STALE_AFTER", "2h")),
		VoiceCallSweepSchedule: getEnv("VOICE_CALL_SWEEP_SCHEDULE", "@every 10m"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if (cfg.SendGridAPIKey != "" || cfg.SMTPHost != "") && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.DatabaseMaxConns < 1 || cfg.DatabaseMinConns < 0 || cfg.DatabaseMinConns > cfg.DatabaseMaxConns {
		return nil, fmt.Errorf("DB_MAX_CONNS must be positive and DB_MIN_CONNS between 0 and DB_MAX_CONNS")
	}
	if cfg.JudgeTimeout <= 0 || cfg.ProviderTimeout <= 0 {
		return nil, fmt.Errorf("JUDGE_TIMEOUT and PROVIDER_TIMEOUT must be positive durations")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
