package repo

import (
	"context"
	"errors"
	"testing"

	"event-booking-api/internal/core/database/dbtest"
	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

func seedUser(t *testing.T, r *UserRepo, username, email string) *domain.User {
	t.Helper()
	u := &domain.User{ID: utils.NewID(), Username: username, Email: email, PasswordHash: "x", Role: domain.RoleUser}
	if err := r.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func seedBooking(t *testing.T, r *BookingRepo, userID, date string) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ID:            utils.NewID(),
		UserID:        userID,
		EventDate:     date,
		EventType:     "wedding",
		TimeSlot:      "evening",
		GuestCount:    50,
		ContactNumber: "0800",
		EventLocation: "Hall A",
		Status:        domain.StatusPending,
	}
	if err := r.Create(context.Background(), b); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func TestUserRepo_DuplicateIdentity(t *testing.T) {
	db := dbtest.New(t)
	r := NewUserRepo(db)
	ctx := context.Background()
	seedUser(t, r, "alice", "a@x.com")

	err := r.Create(ctx, &domain.User{ID: utils.NewID(), Username: "bob", Email: "a@x.com", PasswordHash: "x", Role: "user"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("same email: expected ErrDuplicateIdentity, got %v", err)
	}
	err = r.Create(ctx, &domain.User{ID: utils.NewID(), Username: "alice", Email: "other@x.com", PasswordHash: "x", Role: "user"})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("same username: expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestUserRepo_Find(t *testing.T) {
	db := dbtest.New(t)
	r := NewUserRepo(db)
	ctx := context.Background()
	u := seedUser(t, r, "alice", "a@x.com")

	got, err := r.FindByEmail(ctx, "a@x.com")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("FindByEmail = %+v, %v", got, err)
	}
	got, err = r.FindByID(ctx, u.ID)
	if err != nil || got == nil || got.Email != "a@x.com" {
		t.Fatalf("FindByID = %+v, %v", got, err)
	}
	got, err = r.FindByEmail(ctx, "none@x.com")
	if err != nil || got != nil {
		t.Fatalf("missing email = %+v, %v", got, err)
	}
}

func TestBookingRepo_ListByUserOrdering(t *testing.T) {
	db := dbtest.New(t)
	users := NewUserRepo(db)
	r := NewBookingRepo(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice", "a@x.com")
	bob := seedUser(t, users, "bob", "b@x.com")

	seedBooking(t, r, alice.ID, "2025-01-10")
	seedBooking(t, r, alice.ID, "2025-03-01")
	seedBooking(t, r, alice.ID, "2024-12-24")
	seedBooking(t, r, bob.ID, "2026-01-01")

	got, err := r.ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"2025-03-01", "2025-01-10", "2024-12-24"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.UserID != alice.ID {
			t.Fatalf("booking %s belongs to %s", b.ID, b.UserID)
		}
		if b.EventDate != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, b.EventDate, want[i])
		}
	}

	none, err := r.ListByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestBookingRepo_ListAllWithUser(t *testing.T) {
	db := dbtest.New(t)
	users := NewUserRepo(db)
	r := NewBookingRepo(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice", "a@x.com")
	bob := seedUser(t, users, "bob", "b@x.com")
	seedBooking(t, r, alice.ID, "2025-01-10")
	seedBooking(t, r, bob.ID, "2025-06-01")

	rows, err := r.ListAllWithUser(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len = %d", len(rows))
	}
	if rows[0].Username != "bob" || rows[0].Email != "b@x.com" || rows[0].EventDate != "2025-06-01" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Username != "alice" || rows[1].Email != "a@x.com" {
		t.Fatalf("rows[1] = %+v", rows[1])
	}
	if rows[0].User != nil {
		t.Fatal("association should not leak into the admin row")
	}
}

func TestBookingRepo_ForeignKey(t *testing.T) {
	db := dbtest.New(t)
	r := NewBookingRepo(db)
	b := &domain.Booking{
		ID: utils.NewID(), UserID: "ghost", EventDate: "2025-01-01", EventType: "x",
		TimeSlot: "x", GuestCount: 1, ContactNumber: "1", EventLocation: "x", Status: "pending",
	}
	if err := r.Create(context.Background(), b); err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	db := dbtest.New(t)
	users := NewUserRepo(db)
	r := NewBookingRepo(db)
	ctx := context.Background()
	alice := seedUser(t, users, "alice", "a@x.com")
	b := seedBooking(t, r, alice.ID, "2025-01-10")

	n, err := r.UpdateStatus(ctx, b.ID, domain.StatusConfirmed)
	if err != nil || n != 1 {
		t.Fatalf("update = %d, %v", n, err)
	}
	got, _ := r.FindByID(ctx, b.ID)
	if got.Status != domain.StatusConfirmed {
		t.Fatalf("status = %s", got.Status)
	}

	n, err = r.UpdateStatus(ctx, "missing", domain.StatusConfirmed)
	if err != nil || n != 0 {
		t.Fatalf("update missing = %d, %v", n, err)
	}
}
