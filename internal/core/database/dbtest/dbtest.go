// Package dbtest 提供测试用的内存 sqlite（已建表、开启外键）
package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"event-booking-api/internal/core/database"
)

// New 每次调用都是一个独立的内存库；单连接保证库在测试期间不被回收
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file::memory:?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
