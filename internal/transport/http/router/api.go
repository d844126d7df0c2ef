package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/core/server"
	"event-booking-api/internal/domain"
	"event-booking-api/internal/transport/http/handler"
	mdw "event-booking-api/internal/transport/http/middleware"
)

type Limits struct {
	RPS            float64
	Burst          int
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// 未配置时的兜底值
func (l Limits) withDefaults() Limits {
	if l.RPS <= 0 {
		l.RPS = 20
	}
	if l.Burst <= 0 {
		l.Burst = 40
	}
	if l.MaxConcurrent <= 0 {
		l.MaxConcurrent = 300
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = 1 << 20
	}
	if l.RequestTimeout <= 0 {
		l.RequestTimeout = 10 * time.Second
	}
	return l
}

type Deps struct {
	Log      *zap.Logger
	JWT      *auth.JWTer
	Accounts handler.Accounts
	Bookings handler.Bookings
	Limits   Limits
}

func NewAPIEngine(d Deps) *gin.Engine {
	lim := d.Limits.withDefaults()
	r := server.NewRouter(d.Log, lim.CORSOrigins)

	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst, 10*time.Minute),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(lim.RequestTimeout),
		mdw.Recovery(d.Log),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api")

	// 公共：注册 / 登录
	handler.NewAuthHandler(d.Accounts, d.JWT).Mount(api)

	bookingH := handler.NewBookingHandler(d.Bookings)

	// 需要登录
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT, ""))
	bookingH.Mount(authed)

	// 管理端（统一要求 admin 角色）
	admin := api.Group("/admin")
	admin.Use(mdw.AuthJWT(d.JWT, domain.RoleAdmin))
	bookingH.MountAdmin(admin)

	return r
}
