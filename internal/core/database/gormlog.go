package database

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// zapGorm 把 gorm 的日志写入 zap
type zapGorm struct {
	l     *zap.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newZapGorm(l *zap.Logger, level logger.LogLevel) logger.Interface {
	return &zapGorm{l: l.Named("gorm"), level: level, slow: slowQuery}
}

func (g *zapGorm) LogMode(level logger.LogLevel) logger.Interface {
	n := *g
	n.level = level
	return &n
}

func (g *zapGorm) Info(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Info {
		g.l.Sugar().Infof(msg, args...)
	}
}

func (g *zapGorm) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Warn {
		g.l.Sugar().Warnf(msg, args...)
	}
}

func (g *zapGorm) Error(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Error {
		g.l.Sugar().Errorf(msg, args...)
	}
}

func (g *zapGorm) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	field := func() []zap.Field {
		sql, rows := fc()
		return []zap.Field{zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}
	}
	switch {
	case err != nil && g.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		g.l.Error("query failed", append(field(), zap.Error(err))...)
	case g.slow > 0 && elapsed > g.slow && g.level >= logger.Warn:
		g.l.Warn("slow query", field()...)
	case g.level >= logger.Info:
		g.l.Info("query", field()...)
	}
}
