package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/propboost")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ALLOW_ALL", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetJudgeTimeout() != 45*time.Second {
		t.Fatalf("expected judge timeout 45s, got %s", cfg.GetJudgeTimeout())
	}
	if cfg.GetContentParallelism() != 4 {
		t.Fatalf("expected content parallelism 4, got %d", cfg.GetContentParallelism())
	}
	if cfg.GetDatabaseMaxConns() != 25 || cfg.GetDatabaseMinConns() != 2 {
		t.Fatalf("unexpected pool bounds %d/%d", cfg.GetDatabaseMaxConns(), cfg.GetDatabaseMinConns())
	}
	if cfg.GetVoiceCallStaleAfter() != 2*time.Hour {
		t.Fatalf("expected stale-after 2h, got %s", cfg.GetVoiceCallStaleAfter())
	}
}

func TestLoadRejectsInvertedPoolBounds(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/propboost")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_MIN_CONNS", "8")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_MIN_CONNS exceeds DB_MAX_CONNS")
	}
}

func TestLoadRejectsEmailWithoutSender(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/propboost")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when sendgrid is configured without a from address")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" a, ,b ,c")
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("unexpected split result: %v", got)
	}
}
