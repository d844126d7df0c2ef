package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-booking-api/internal/domain"
	"event-booking-api/internal/service"
	httpez "event-booking-api/internal/transport/http/ez"
)

type Bookings interface {
	CreateBooking(ctx context.Context, p domain.Principal, in service.CreateBookingInput) (string, error)
	ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context) ([]domain.BookingWithUser, error)
	UpdateBookingStatus(ctx context.Context, bookingID, status string) (string, error)
}

type BookingHandler struct{ bookings Bookings }

func NewBookingHandler(bookings Bookings) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createOut struct {
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

type listQ struct {
	UserID string `form:"userId"`
}

type statusIn struct {
	Status string `json:"status"`
}

// Mount 挂载 /bookings 相关接口；authed 分组已经过 AuthJWT
func (h *BookingHandler) Mount(authed *gin.RouterGroup) {
	httpez.RegisterAction(authed, httpez.Action[service.CreateBookingInput, createOut]{
		Method:  http.MethodPost,
		Path:    "/bookings",
		Binder:  httpez.BindJSON,
		Auth:    true,
		Status:  http.StatusCreated,
		FailMsg: "Failed to create booking due to a database error",
		Handler: func(c *gin.Context, in *service.CreateBookingInput) (createOut, error) {
			id, err := h.bookings.CreateBooking(c.Request.Context(), httpez.Principal(c), *in)
			if err != nil {
				return createOut{}, err
			}
			return createOut{Message: "Booking created successfully", BookingID: id}, nil
		},
	})

	// 默认查自己的预订；管理员可以用 ?userId= 查看指定用户
	httpez.RegisterAction(authed, httpez.Action[listQ, []domain.Booking]{
		Method:  http.MethodGet,
		Path:    "/bookings",
		Binder:  httpez.BindQuery,
		Auth:    true,
		FailMsg: "Failed to fetch bookings due to a database error",
		Handler: func(c *gin.Context, in *listQ) ([]domain.Booking, error) {
			p := httpez.Principal(c)
			target := in.UserID
			if target == "" {
				target = p.UserID
			}
			if target != p.UserID && !p.IsAdmin() {
				return nil, domain.ErrForbidden
			}
			return h.bookings.ListUserBookings(c.Request.Context(), target)
		},
	})

	httpez.RegisterAction(authed, httpez.Action[statusIn, gin.H]{
		Method:  http.MethodPut,
		Path:    "/bookings/:id/status",
		Binder:  httpez.BindJSON,
		Roles:   []string{domain.RoleAdmin},
		FailMsg: "Failed to update booking status due to a database error",
		Handler: func(c *gin.Context, in *statusIn) (gin.H, error) {
			msg, err := h.bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), in.Status)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httpez.NotFound("Booking not found")
			}
			if err != nil {
				return nil, err
			}
			return gin.H{"message": msg}, nil
		},
	})
}

// MountAdmin 挂载 /admin/bookings；admin 分组已要求 admin 角色
func (h *BookingHandler) MountAdmin(admin *gin.RouterGroup) {
	httpez.RegisterAction(admin, httpez.Action[struct{}, []domain.BookingWithUser]{
		Method:  http.MethodGet,
		Path:    "/bookings",
		Binder:  httpez.BindNone,
		Roles:   []string{domain.RoleAdmin},
		FailMsg: "Failed to fetch bookings due to a database error",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.BookingWithUser, error) {
			return h.bookings.ListAllBookings(c.Request.Context())
		},
	})
}
