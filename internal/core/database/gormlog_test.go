package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestZapGorm_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := newZapGorm(zap.New(core), logger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	gl.Trace(ctx, time.Now(), sql, nil)
	gl.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	if n := logs.Len(); n != 0 {
		t.Fatalf("warn level logged %d entries for fast / not-found queries", n)
	}

	gl.Trace(ctx, time.Now(), sql, errors.New("no such table: users"))
	gl.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	if logs.FilterMessage("query failed").Len() != 1 || logs.FilterMessage("slow query").Len() != 1 {
		t.Fatalf("entries = %+v", logs.All())
	}
	if got := logs.All()[0].LoggerName; got != "gorm" {
		t.Fatalf("logger name = %q", got)
	}

	gl.LogMode(logger.Silent).Trace(ctx, time.Now(), sql, errors.New("boom"))
	if logs.Len() != 2 {
		t.Fatal("silent mode should not log")
	}
}

func TestNewGorm_SQLThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file::memory:?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		LogLevel:     "info",
		Logger:       zap.New(core),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	var one int
	if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		t.Fatalf("select: %v", err)
	}
	if logs.FilterMessage("query").Len() == 0 {
		t.Fatal("sql not logged through zap")
	}
}
