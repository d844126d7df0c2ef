package domain

import (
	"context"
	"time"
)

// 常见状态；status 字段本身是自由文本，这里只用于默认值和指标标签
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var KnownStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

func IsKnownStatus(s string) bool {
	for _, k := range KnownStatuses {
		if k == s {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	UserID          string    `gorm:"size:36;not null;index" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	EventDate       string    `gorm:"size:32;not null;index" json:"eventDate"`
	EventType       string    `gorm:"size:64;not null" json:"eventType"`
	TimeSlot        string    `gorm:"size:64;not null" json:"timeSlot"`
	GuestCount      int       `gorm:"not null" json:"guestCount"`
	ContactNumber   string    `gorm:"size:32;not null" json:"contactNumber"`
	EventLocation   string    `gorm:"size:255;not null" json:"eventLocation"`
	SpecialRequests *string   `gorm:"type:text" json:"specialRequests"`
	Status          string    `gorm:"size:64;not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

// BookingWithUser 管理端视图：附带下单用户的 username / email
type BookingWithUser struct {
	Booking
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListAllWithUser(ctx context.Context) ([]BookingWithUser, error)
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
}
