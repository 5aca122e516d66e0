package models

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

func TestValidateSlot(t *testing.T) {
	if err := ValidateSlot("2026-03-11", "14:00", 60, testNow); err != nil {
		t.Fatalf("valid slot rejected: %v", err)
	}

	cases := []struct {
		name     string
		date     string
		clock    string
		duration int
	}{
		{"missing date", "", "14:00", 60},
		{"missing time", "2026-03-11", "", 60},
		{"malformed date", "11-03-2026", "14:00", 60},
		{"malformed time", "2026-03-11", "2pm", 60},
		{"past session", "2026-03-09", "14:00", 60},
		{"too short", "2026-03-11", "14:00", 15},
		{"off step", "2026-03-11", "14:00", 50},
	}

	for _, tc := range cases {
		err := ValidateSlot(tc.date, tc.clock, tc.duration, testNow)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected validation kind, got %v", tc.name, err)
		}
	}
}

func TestBookingTransitions(t *testing.T) {
	b := Booking{Status: BookingStatusPending}
	if !b.CanCancel() || !b.CanReschedule() || !b.CanConfirm() {
		t.Error("pending booking should allow cancel, reschedule and confirm")
	}

	b.Status = BookingStatusRescheduled
	if !b.CanCancel() || !b.CanReschedule() || !b.CanConfirm() {
		t.Error("rescheduled booking should allow cancel, reschedule and confirm")
	}

	b.Status = BookingStatusConfirmed
	if !b.CanCancel() || !b.CanReschedule() {
		t.Error("confirmed booking should allow cancel and reschedule")
	}
	if b.CanConfirm() {
		t.Error("confirmed booking should not be confirmable again")
	}

	// Cancelled is terminal
	b.Status = BookingStatusCancelled
	if b.CanCancel() || b.CanReschedule() || b.CanConfirm() {
		t.Error("no transition should leave the cancelled state")
	}
}

func TestBookingOverlapsWith(t *testing.T) {
	requested := Booking{SessionDate: "2026-03-11", SessionTime: "14:00", Duration: 60}

	existing := Booking{
		SessionDate: "2026-03-11",
		SessionTime: "14:30",
		Duration:    60,
		Status:      BookingStatusPending,
	}
	overlap, err := requested.OverlapsWith(&existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !overlap {
		t.Error("intersecting slots on the same date should overlap")
	}

	// A cancelled booking never blocks the slot
	existing.Status = BookingStatusCancelled
	if overlap, _ := requested.OverlapsWith(&existing); overlap {
		t.Error("cancelled booking should not block a slot")
	}

	// Different dates never collide
	existing.Status = BookingStatusConfirmed
	existing.SessionDate = "2026-03-12"
	if overlap, _ := requested.OverlapsWith(&existing); overlap {
		t.Error("different dates should not overlap")
	}
}
