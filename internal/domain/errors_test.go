package domain

import (
	"errors"
	"testing"
)

func TestMissing(t *testing.T) {
	err := Missing("eventDate", "timeSlot")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if got, want := err.Error(), "missing required fields: eventDate, timeSlot"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if Missing() != ErrMissingFields {
		t.Fatal("Missing() without fields should return the sentinel")
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range KnownStatuses {
		if !IsKnownStatus(s) {
			t.Fatalf("%q should be known", s)
		}
	}
	if IsKnownStatus("on-hold") {
		t.Fatal("on-hold is not a known status")
	}
}

func TestPrincipal_IsAdmin(t *testing.T) {
	if !(Principal{UserID: "1", Role: RoleAdmin}).IsAdmin() {
		t.Fatal("admin principal")
	}
	if (Principal{UserID: "1", Role: RoleUser}).IsAdmin() {
		t.Fatal("user principal")
	}
}
