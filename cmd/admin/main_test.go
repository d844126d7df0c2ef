package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"event-booking-api/internal/core/config"
	"event-booking-api/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.DB.Driver = "sqlite"
	cfg.DB.DSN = "file:" + filepath.Join(t.TempDir(), "admin.db") + "?_pragma=foreign_keys(1)"
	cfg.DB.LogLevel = "silent"
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func TestRun_CreatesOnceThenReports(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	a := adminArgs{Username: "admin", Email: "admin@admin.com", Password: "password123"}

	id, created, err := run(ctx, cfg, zap.NewNop(), a)
	if err != nil || !created || id == "" {
		t.Fatalf("first run = %q, %v, %v", id, created, err)
	}
	again, created, err := run(ctx, cfg, zap.NewNop(), a)
	if err != nil || created || again != id {
		t.Fatalf("second run = %q, %v, %v", again, created, err)
	}
}

func TestRun_FailuresAreErrors(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	if _, _, err := run(ctx, cfg, zap.NewNop(), adminArgs{Username: "admin", Email: "admin@admin.com"}); !errors.Is(err, errNoPassword) {
		t.Fatalf("no password: %v", err)
	}
	long := adminArgs{Username: "admin", Email: "admin@admin.com", Password: strings.Repeat("p", 73)}
	if _, _, err := run(ctx, cfg, zap.NewNop(), long); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("long password: %v", err)
	}

	cfg.DB.Driver = "oracle"
	if _, _, err := run(ctx, cfg, zap.NewNop(), adminArgs{Username: "admin", Email: "admin@admin.com", Password: "pw"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
