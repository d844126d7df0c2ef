package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"event-booking-api/internal/domain"
)

var (
	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Number of bookings created",
	})
	statusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "booking_status_updates_total", Help: "Booking status updates by target status"},
		[]string{"status"},
	)
)

func init() { prometheus.MustRegister(bookingsCreated, statusUpdates) }

// 状态是自由文本，未知值统一归到 other，避免标签基数失控
func statusLabel(s string) string {
	if domain.IsKnownStatus(s) {
		return s
	}
	return "other"
}
