package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	"event-booking-api/internal/service"
	httpez "event-booking-api/internal/transport/http/ez"
)

type Accounts interface {
	Register(ctx context.Context, in service.RegisterInput) (string, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Profile, error)
}

type AuthHandler struct {
	accounts Accounts
	jwter    *auth.JWTer
}

func NewAuthHandler(accounts Accounts, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{accounts: accounts, jwter: jwter}
}

type registerOut struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}

// Mount 挂载 /register 与 /login（公共，无需登录）
func (h *AuthHandler) Mount(api *gin.RouterGroup) {
	httpez.RegisterAction(api, httpez.Action[service.RegisterInput, registerOut]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		FailMsg: "Registration failed",
		Handler: func(c *gin.Context, in *service.RegisterInput) (registerOut, error) {
			id, err := h.accounts.Register(c.Request.Context(), *in)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{Message: "User registered successfully", UserID: id}, nil
		},
	})

	httpez.RegisterAction(api, httpez.Action[loginIn, loginOut]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  httpez.BindJSON,
		FailMsg: "Login failed due to an internal error",
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			p, err := h.accounts.Authenticate(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			tok, err := h.jwter.Issue(p.UserID, p.Role)
			if err != nil {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Message: "Login successful", Token: tok, User: *p}, nil
		},
	})
}
