package models

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

type TutorStatus string

const (
	TutorStatusPending  TutorStatus = "pending"
	TutorStatusApproved TutorStatus = "approved"
	TutorStatusRejected TutorStatus = "rejected"
)

type Tutor struct {
	gorm.Model
	FirstName    string      `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string      `json:"last_name" gorm:"column:last_name;not null"`
	CollegeEmail string      `json:"college_email" gorm:"column:college_email;unique;not null"`
	Modules      string      `json:"modules" gorm:"column:modules;not null"`
	HourlyRate   float64     `json:"hourly_rate" gorm:"column:hourly_rate;not null"`
	Bio          string      `json:"bio" gorm:"column:bio"`
	Rating       float64     `json:"rating" gorm:"column:rating;default:0"`
	Verified     bool        `json:"verified" gorm:"column:verified;not null;default:false"`
	Status       TutorStatus `json:"status" gorm:"column:status;not null;default:'pending'"`
	PhotoURL     string      `json:"photo_url" gorm:"column:photo_url"`
}

// TableName specifies the table name
func (Tutor) TableName() string {
	return "tutors"
}

// FullName returns the tutor's display name
func (t *Tutor) FullName() string {
	return t.FirstName + " " + t.LastName
}

// Searchable reports whether the tutor may appear in learner-facing search.
func (t *Tutor) Searchable() bool {
	return t.Verified && t.Status == TutorStatusApproved
}

// ParseHourlyRate converts a form value into a non-negative rate.
// The signup form submits the rate as free text.
func ParseHourlyRate(value string) (float64, error) {
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: hourly_rate must be a number", ErrValidation)
	}
	if rate < 0 {
		return 0, fmt.Errorf("%w: hourly_rate must not be negative", ErrValidation)
	}
	return rate, nil
}

// ParseRating converts an optional form value into a 0-5 rating.
func ParseRating(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: rating must be a number", ErrValidation)
	}
	if rating < 0 || rating > 5 {
		return 0, fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return rating, nil
}
