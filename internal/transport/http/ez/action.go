package ez

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"event-booking-api/internal/domain"
	resp "event-booking-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定；非 JSON 或解析失败 → 415
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// KeyPrincipal context key，由 AuthJWT 写入
const KeyPrincipal = "principal"

// 统一错误对象
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 领域错误 → HTTP 状态码
var statusOf = []struct {
	err  error
	code int
}{
	{domain.ErrMissingFields, resp.CodeBadRequest},
	{domain.ErrInvalidInput, resp.CodeBadRequest},
	{domain.ErrMalformedRequest, resp.CodeUnsupportedMedia},
	{domain.ErrDuplicateIdentity, resp.CodeConflict},
	{domain.ErrInvalidCredentials, resp.CodeUnauthorized},
	{domain.ErrUnauthenticated, resp.CodeUnauthorized},
	{domain.ErrForbidden, resp.CodeForbidden},
	{domain.ErrNotFound, resp.CodeNotFound},
}

// Map 把任意错误转换成 AErr；5xx 一律使用 failMsg，不把内部错误文本返回给调用方
func Map(err error, failMsg string) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.Code >= 500 && failMsg != "" {
			return &AErr{Code: ae.Code, Msg: failMsg, Err: ae.Err}
		}
		return ae
	}
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			return &AErr{Code: s.code, Msg: capitalize(err.Error()), Err: err}
		}
	}
	if failMsg == "" {
		failMsg = resp.CodeMsgMap[resp.CodeServerError]
	}
	return &AErr{Code: resp.CodeServerError, Msg: failMsg, Err: err}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Abort 写错误响应，并把原始错误挂到 c.Errors 供访问日志输出；
// 请求已超过 Timeout 中间件的期限时 5xx 统一改为 504
func Abort(c *gin.Context, err error, failMsg string) {
	ae := Map(err, failMsg)
	if ae.Code >= 500 && errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
		ae = &AErr{Code: resp.CodeTimeout, Msg: resp.CodeMsgMap[resp.CodeTimeout], Err: err}
	}
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Msg))
}

func SetPrincipal(c *gin.Context, p domain.Principal) { c.Set(KeyPrincipal, p) }

// Principal 从上下文取出已校验的调用者；未登录时为零值
func Principal(c *gin.Context) domain.Principal {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return domain.Principal{}
	}
	p, _ := v.(domain.Principal)
	return p
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "DELETE"
	Path    string   // 例："/login"、"/bookings/:id/status"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录（检查 Principal）
	Roles   []string // 限定角色（可选）
	Status  int      // 成功状态码，默认 200
	FailMsg string   // 5xx 时返回给调用方的固定文案
	Handler func(c *gin.Context, in *I) (O, error)
}

func bindJSON(c *gin.Context, v any) error {
	if c.ContentType() != binding.MIMEJSON {
		return domain.ErrMalformedRequest
	}
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil // 空 body：交给业务做必填校验
		case errors.As(err, &tooLarge):
			return &AErr{Code: resp.CodeTooLarge, Msg: resp.CodeMsgMap[resp.CodeTooLarge]}
		default:
			return domain.ErrMalformedRequest
		}
	}
	return nil
}

func allowed(role string, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// RegisterAction 在路由分组下注册动作接口
func RegisterAction[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth || len(a.Roles) > 0 {
			p := Principal(c)
			if p.UserID == "" {
				Abort(c, domain.ErrUnauthenticated, "")
				return
			}
			if !allowed(p.Role, a.Roles) {
				Abort(c, domain.ErrForbidden, "")
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = bindJSON(c, &in)
		case BindQuery:
			if err := c.ShouldBindQuery(&in); err != nil {
				bindErr = &AErr{Code: resp.CodeBadRequest, Msg: "invalid query", Err: err}
			}
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			Abort(c, bindErr, "")
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		if err != nil {
			Abort(c, err, a.FailMsg)
			return
		}
		c.JSON(status, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}
