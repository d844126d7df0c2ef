package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	httpez "event-booking-api/internal/transport/http/ez"
)

// AuthJWT 校验 Bearer 令牌并把调用者写入上下文；requireRole 为空表示任意已登录用户
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			httpez.Abort(c, domain.ErrUnauthenticated, "")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			httpez.Abort(c, httpez.Unauthorized("invalid token"), "")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			httpez.Abort(c, domain.ErrForbidden, "")
			return
		}
		httpez.SetPrincipal(c, claims.Principal())
		c.Next()
	}
}
