package models

import (
	"fmt"
	"time"

	"github.com/studyhive/studyhive-backend/pkg/utils"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusConfirmed   BookingStatus = "confirmed"
	BookingStatusCancelled   BookingStatus = "cancelled"
	BookingStatusRescheduled BookingStatus = "rescheduled"
)

type Booking struct {
	gorm.Model
	LearnerID   uint          `json:"learner_id" gorm:"column:learner_id;not null;index"`
	Learner     Student       `json:"learner"`
	TutorID     uint          `json:"tutor_id" gorm:"column:tutor_id;not null;index"`
	Tutor       Tutor         `json:"tutor"`
	SessionDate string        `json:"session_date" gorm:"column:session_date;not null"`
	SessionTime string        `json:"session_time" gorm:"column:session_time;not null"`
	Duration    int           `json:"duration" gorm:"column:duration;not null;default:60"`
	Status      BookingStatus `json:"status" gorm:"column:status;not null;default:'pending'"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// ValidateSlot checks the requested date, time and duration against the
// booking rules. It is applied on creation and again on reschedule.
func ValidateSlot(date, clock string, duration int, now time.Time) error {
	if date == "" {
		return fmt.Errorf("%w: session_date is required", ErrValidation)
	}
	if clock == "" {
		return fmt.Errorf("%w: session_time is required", ErrValidation)
	}
	past, err := utils.IsPastSession(date, clock, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if past {
		return fmt.Errorf("%w: session must not be in the past", ErrValidation)
	}
	if !utils.ValidSessionDuration(duration) {
		return fmt.Errorf("%w: duration must be at least %d minutes in steps of %d",
			ErrValidation, utils.MinSessionMinutes, utils.SessionStepMinutes)
	}
	return nil
}

// Cancelled bookings are terminal; nothing transitions out of them.
func (b *Booking) CanCancel() bool {
	return b.Status != BookingStatusCancelled
}

func (b *Booking) CanReschedule() bool {
	return b.Status != BookingStatusCancelled
}

func (b *Booking) CanConfirm() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusRescheduled
}

// OverlapsWith reports whether another booking on the same date for the same
// tutor collides with this one. Cancelled bookings never block a slot.
func (b *Booking) OverlapsWith(other *Booking) (bool, error) {
	if other.Status == BookingStatusCancelled || b.SessionDate != other.SessionDate {
		return false, nil
	}
	return utils.SessionsOverlap(b.SessionTime, b.Duration, other.SessionTime, other.Duration)
}
