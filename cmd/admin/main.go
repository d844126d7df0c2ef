// admin 初始化管理员账号：邮箱已存在时不做任何修改；失败时以非 0 状态退出
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"event-booking-api/internal/core/config"
	"event-booking-api/internal/core/database"
	"event-booking-api/internal/core/logger"
	"event-booking-api/internal/repo"
	"event-booking-api/internal/service"
)

var errNoPassword = errors.New("admin password is required: pass -password or set APP_ADMIN_PASSWORD")

type adminArgs struct {
	Username string
	Email    string
	Password string
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	var a adminArgs
	flag.StringVar(&a.Username, "username", cfg.Admin.Username, "admin username")
	flag.StringVar(&a.Email, "email", cfg.Admin.Email, "admin email")
	flag.StringVar(&a.Password, "password", cfg.Admin.Password, "admin password (or APP_ADMIN_PASSWORD)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, created, err := run(ctx, cfg, log, a)
	if err != nil {
		cancel()
		log.Fatal("create admin FAILED", zap.String("email", a.Email), zap.Error(err))
	}
	if !created {
		log.Info("admin already exists", zap.String("email", a.Email), zap.String("user_id", id))
		return
	}
	log.Info("admin created", zap.String("username", a.Username), zap.String("email", a.Email), zap.String("user_id", id))
}

// run 建表并确保管理员存在，返回用户 ID 以及是否新建
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, a adminArgs) (string, bool, error) {
	if a.Password == "" {
		return "", false, errNoPassword
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       2,
		MaxIdleConns:       1,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             log,
	})
	if err != nil {
		return "", false, fmt.Errorf("db open: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		return "", false, fmt.Errorf("automigrate: %w", err)
	}

	accounts := service.NewAccountService(repo.NewUserRepo(db), cfg.Security.BcryptCost, log)
	return accounts.EnsureAdmin(ctx, a.Username, a.Email, a.Password)
}
