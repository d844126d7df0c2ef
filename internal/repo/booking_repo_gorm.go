package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-booking-api/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	// 只写 bookings 一张表，User 关联仅用于外键和联表查询
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingRepo) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser 按活动日期倒序；同一天按创建时间、ID 倒序保证次序稳定
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("event_date DESC").Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepo) ListAllWithUser(ctx context.Context) ([]domain.BookingWithUser, error) {
	var bs []domain.Booking
	err := r.db.WithContext(ctx).
		InnerJoins("User").
		Order("bookings.event_date DESC").Order("bookings.created_at DESC").Order("bookings.id DESC").
		Find(&bs).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookingWithUser, 0, len(bs))
	for _, b := range bs {
		row := domain.BookingWithUser{Booking: b}
		if b.User != nil {
			row.Username = b.User.Username
			row.Email = b.User.Email
		}
		row.Booking.User = nil
		out = append(out, row)
	}
	return out, nil
}

// UpdateStatus 返回受影响行数；MySQL 在新旧值相同时会返回 0，调用方应先 FindByID
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
