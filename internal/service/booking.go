package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"event-booking-api/internal/core/cache"
	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

const keyAllBookings = "bookings:all"

func keyUserBookings(userID string) string { return "bookings:user:" + userID }

type BookingService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	cache    *cache.Cache // nil 表示不缓存
	ttl      time.Duration
	log      *zap.Logger
}

func NewBookingService(bookings domain.BookingRepository, users domain.UserRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BookingService{bookings: bookings, users: users, cache: c, ttl: ttl, log: log.Named("booking")}
}

type CreateBookingInput struct {
	EventDate       string  `json:"eventDate"`
	EventType       string  `json:"eventType"`
	TimeSlot        string  `json:"timeSlot"`
	GuestCount      int     `json:"guestCount"`
	ContactNumber   string  `json:"contactNumber"`
	EventLocation   string  `json:"eventLocation"`
	SpecialRequests *string `json:"specialRequests"`
}

func (in *CreateBookingInput) normalize() {
	in.EventDate = strings.TrimSpace(in.EventDate)
	in.EventType = strings.TrimSpace(in.EventType)
	in.TimeSlot = strings.TrimSpace(in.TimeSlot)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.EventLocation = strings.TrimSpace(in.EventLocation)
	if in.SpecialRequests != nil {
		s := strings.TrimSpace(*in.SpecialRequests)
		if s == "" {
			in.SpecialRequests = nil
		} else {
			in.SpecialRequests = &s
		}
	}
}

func (in *CreateBookingInput) missing() []string {
	var out []string
	check := func(name, v string) {
		if v == "" {
			out = append(out, name)
		}
	}
	check("eventDate", in.EventDate)
	check("eventType", in.EventType)
	check("timeSlot", in.TimeSlot)
	if in.GuestCount <= 0 {
		out = append(out, "guestCount")
	}
	check("contactNumber", in.ContactNumber)
	check("eventLocation", in.EventLocation)
	return out
}

// CreateBooking 以 pending 状态落库，返回预订 ID；令牌对应的用户已不存在时视为未登录
func (s *BookingService) CreateBooking(ctx context.Context, p domain.Principal, in CreateBookingInput) (string, error) {
	if p.UserID == "" {
		return "", domain.ErrUnauthenticated
	}
	in.normalize()
	if m := in.missing(); len(m) > 0 {
		return "", domain.Missing(m...)
	}
	owner, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		s.log.Error("find booking owner", zap.String("user_id", p.UserID), zap.Error(err))
		return "", domain.ErrStorage
	}
	if owner == nil {
		return "", domain.ErrUnauthenticated
	}
	b := &domain.Booking{
		ID:              utils.NewID(),
		UserID:          p.UserID,
		EventDate:       in.EventDate,
		EventType:       in.EventType,
		TimeSlot:        in.TimeSlot,
		GuestCount:      in.GuestCount,
		ContactNumber:   in.ContactNumber,
		EventLocation:   in.EventLocation,
		SpecialRequests: in.SpecialRequests,
		Status:          domain.StatusPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		s.log.Error("create booking", zap.String("user_id", p.UserID), zap.Error(err))
		return "", domain.ErrStorage
	}
	bookingsCreated.Inc()
	s.invalidate(ctx, p.UserID)
	s.log.Info("booking created", zap.String("booking_id", b.ID), zap.String("user_id", p.UserID))
	return b.ID, nil
}

// ListUserBookings 无预订时返回空切片
func (s *BookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.Missing("userId")
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyUserBookings(userID), s.ttl,
		func(ctx context.Context) ([]domain.Booking, error) {
			return s.bookings.ListByUser(ctx, userID)
		})
	if err != nil {
		s.log.Error("list user bookings", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.ErrStorage
	}
	if out == nil {
		out = []domain.Booking{}
	}
	return out, nil
}

// ListAllBookings 不做鉴权，由路由层限制为管理员
func (s *BookingService) ListAllBookings(ctx context.Context) ([]domain.BookingWithUser, error) {
	out, err := cache.GetOrLoadJSON(s.cache, ctx, keyAllBookings, s.ttl,
		func(ctx context.Context) ([]domain.BookingWithUser, error) {
			return s.bookings.ListAllWithUser(ctx)
		})
	if err != nil {
		s.log.Error("list all bookings", zap.Error(err))
		return nil, domain.ErrStorage
	}
	if out == nil {
		out = []domain.BookingWithUser{}
	}
	return out, nil
}

// UpdateBookingStatus 任意非空状态值都接受，不校验状态流转
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID, status string) (string, error) {
	bookingID = strings.TrimSpace(bookingID)
	status = strings.TrimSpace(status)
	var missing []string
	if bookingID == "" {
		missing = append(missing, "id")
	}
	if status == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return "", domain.Missing(missing...)
	}
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("find booking", zap.String("booking_id", bookingID), zap.Error(err))
		return "", domain.ErrStorage
	}
	if b == nil {
		return "", domain.ErrNotFound
	}
	n, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		s.log.Error("update booking status", zap.String("booking_id", bookingID), zap.Error(err))
		return "", domain.ErrStorage
	}
	if n == 0 && b.Status != status {
		// 查询与更新之间记录消失
		return "", domain.ErrNotFound
	}
	statusUpdates.WithLabelValues(statusLabel(status)).Inc()
	s.invalidate(ctx, b.UserID)
	s.log.Info("booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("from", b.Status),
		zap.String("to", status),
	)
	return fmt.Sprintf("Booking %s status updated to %s", bookingID, status), nil
}

func (s *BookingService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, keyUserBookings(userID), keyAllBookings); err != nil {
		s.log.Warn("cache invalidate", zap.String("user_id", userID), zap.Error(err))
	}
}
