package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

type AccountService struct {
	users      domain.UserRepository
	bcryptCost int
	log        *zap.Logger
}

func NewAccountService(users domain.UserRepository, bcryptCost int, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{users: users, bcryptCost: bcryptCost, log: log.Named("account")}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 创建普通用户，返回新用户 ID
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (string, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return "", domain.Missing(missing...)
	}
	if len(in.Password) > utils.MaxPasswordBytes {
		return "", domain.ErrPasswordTooLong
	}
	return s.create(ctx, username, email, in.Password, domain.RoleUser)
}

func (s *AccountService) create(ctx context.Context, username, email, password, role string) (string, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.log.Error("hash password", zap.Error(err))
		return "", domain.ErrInternal
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return "", domain.ErrDuplicateIdentity
		}
		s.log.Error("create user", zap.String("email", email), zap.Error(err))
		return "", domain.ErrStorage
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", role))
	return u.ID, nil
}

// Authenticate 邮箱不存在与密码错误返回同一个错误
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("find user by email", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	p := u.Profile()
	return &p, nil
}

// EnsureAdmin 幂等：邮箱已存在则原样返回，不修改其角色和密码
func (s *AccountService) EnsureAdmin(ctx context.Context, username, email, password string) (string, bool, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", false, domain.ErrMissingFields
	}
	if len(password) > utils.MaxPasswordBytes {
		return "", false, domain.ErrPasswordTooLong
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("find admin by email", zap.Error(err))
		return "", false, domain.ErrStorage
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	id, err := s.create(ctx, username, email, password, domain.RoleAdmin)
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}
