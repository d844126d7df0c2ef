package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMalformedRequest   = errors.New("malformed request")
	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrStorage            = errors.New("storage error")
	ErrInternal           = errors.New("internal error")
)

// ErrPasswordTooLong bcrypt 只处理前 72 字节
var ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)

// Missing 返回带字段名的 ErrMissingFields；fields 为空时直接返回哨兵
func Missing(fields ...string) error {
	if len(fields) == 0 {
		return ErrMissingFields
	}
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(fields, ", "))
}
