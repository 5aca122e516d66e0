package models

import (
	"errors"
	"testing"
)

func TestParseHourlyRate(t *testing.T) {
	rate, err := ParseHourlyRate("20.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 20.0 {
		t.Errorf("expected 20.0, got %v", rate)
	}

	if _, err := ParseHourlyRate("-5"); !errors.Is(err, ErrValidation) {
		t.Errorf("negative rate should be a validation error, got %v", err)
	}
	if _, err := ParseHourlyRate("twenty"); !errors.Is(err, ErrValidation) {
		t.Errorf("non-numeric rate should be a validation error, got %v", err)
	}
}

func TestParseRating(t *testing.T) {
	// Rating is optional on signup
	if rating, err := ParseRating(""); err != nil || rating != 0 {
		t.Errorf("empty rating should default to 0, got %v / %v", rating, err)
	}

	if rating, err := ParseRating("4.5"); err != nil || rating != 4.5 {
		t.Errorf("expected 4.5, got %v / %v", rating, err)
	}

	if _, err := ParseRating("6"); !errors.Is(err, ErrValidation) {
		t.Errorf("rating above 5 should be a validation error, got %v", err)
	}
	if _, err := ParseRating("-1"); !errors.Is(err, ErrValidation) {
		t.Errorf("negative rating should be a validation error, got %v", err)
	}
}

func TestTutorSearchable(t *testing.T) {
	tutor := Tutor{Verified: false, Status: TutorStatusPending}
	if tutor.Searchable() {
		t.Error("unverified tutor must not be searchable")
	}

	tutor.Verified = true
	tutor.Status = TutorStatusApproved
	if !tutor.Searchable() {
		t.Error("approved tutor should be searchable")
	}

	tutor.Status = TutorStatusRejected
	if tutor.Searchable() {
		t.Error("rejected tutor must not be searchable")
	}
}
