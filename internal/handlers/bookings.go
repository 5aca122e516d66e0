package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/models"
	"github.com/studyhive/studyhive-backend/internal/services"
	"github.com/studyhive/studyhive-backend/pkg/utils"
	"gorm.io/gorm"
)

// findBooking loads a booking with both parties, mapping storage failures
// onto the shared error kinds.
func findBooking(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := db.Preload("Learner").Preload("Tutor").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %s %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return &booking, nil
}

// checkTutorSlot rejects a requested slot when the tutor already has a
// non-cancelled booking intersecting it. excludeID skips the booking being
// rescheduled so it does not collide with itself.
func checkTutorSlot(db *gorm.DB, tutorID uint, excludeID uint, date, clock string, duration int) error {
	requested := models.Booking{
		SessionDate: date,
		SessionTime: clock,
		Duration:    duration,
	}

	var existing []models.Booking
	query := db.Where("tutor_id = ? AND session_date = ? AND status <> ?",
		tutorID, date, models.BookingStatusCancelled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&existing).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	for i := range existing {
		taken, err := requested.OverlapsWith(&existing[i])
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrStorage, err)
		}
		if taken {
			return fmt.Errorf("%w: tutor already has a booking in that time slot", models.ErrConflict)
		}
	}
	return nil
}

func notifyBookingChange(c *gin.Context, hub *services.Hub, eventType string, booking *models.Booking) {
	hub.NotifyBookingEvent(eventType, services.BookingEvent{
		BookingID:   booking.ID,
		LearnerID:   booking.LearnerID,
		TutorID:     booking.TutorID,
		Status:      string(booking.Status),
		SessionDate: booking.SessionDate,
		SessionTime: booking.SessionTime,
		Duration:    booking.Duration,
	})

	err := services.PublishBookingUpdate(c.Request.Context(), booking.ID, string(booking.Status), map[string]interface{}{
		"learner_id":   booking.LearnerID,
		"tutor_id":     booking.TutorID,
		"session_date": booking.SessionDate,
		"session_time": booking.SessionTime,
	})
	if err != nil {
		log.Printf("Failed to publish booking update: %v", err)
	}
}

// CreateBooking creates a session request between a learner and a tutor
func CreateBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			LearnerID   uint   `json:"learner_id" binding:"required"`
			TutorID     uint   `json:"tutor_id" binding:"required"`
			SessionDate string `json:"session_date" binding:"required"`
			SessionTime string `json:"session_time" binding:"required"`
			Duration    int    `json:"duration"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Duration == 0 {
			input.Duration = 60
		}

		if err := models.ValidateSlot(input.SessionDate, input.SessionTime, input.Duration, time.Now()); err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		var learner models.Student
		if err := db.First(&learner, input.LearnerID).Error; err != nil {
			c.JSON(400, gin.H{"error": "Learner not found"})
			return
		}

		var tutor models.Tutor
		if err := db.First(&tutor, input.TutorID).Error; err != nil {
			c.JSON(400, gin.H{"error": "Tutor not found"})
			return
		}
		if !tutor.Searchable() {
			c.JSON(400, gin.H{"error": "Tutor is not verified"})
			return
		}

		if err := checkTutorSlot(db, tutor.ID, 0, input.SessionDate, input.SessionTime, input.Duration); err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		booking := models.Booking{
			LearnerID:   learner.ID,
			TutorID:     tutor.ID,
			SessionDate: input.SessionDate,
			SessionTime: input.SessionTime,
			Duration:    input.Duration,
			Status:      models.BookingStatusPending,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		notifyBookingChange(c, hub, "booking_created", &booking)
		go utils.SendBookingConfirmation(learner.CollegeEmail, learner.FullName(),
			tutor.FullName(), booking.SessionDate, booking.SessionTime, booking.Duration)

		c.JSON(201, booking)
	}
}

// ConfirmBooking lets the tutor accept a pending or rescheduled session
func ConfirmBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := findBooking(db, c.Param("id"))
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		if !booking.CanConfirm() {
			c.JSON(409, gin.H{"error": "Booking cannot be confirmed from status " + string(booking.Status)})
			return
		}

		booking.Status = models.BookingStatusConfirmed
		if err := db.Save(booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to confirm booking"})
			return
		}

		notifyBookingChange(c, hub, "booking_confirmed", booking)
		c.JSON(200, booking)
	}
}

// CancelBooking cancels a session. Cancelled is terminal: cancelling twice
// reports that it already happened rather than pretending a change occurred.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := findBooking(db, c.Param("id"))
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		if !booking.CanCancel() {
			c.JSON(409, gin.H{"error": "Booking is already cancelled"})
			return
		}

		booking.Status = models.BookingStatusCancelled
		if err := db.Save(booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		notifyBookingChange(c, hub, "booking_cancelled", booking)
		go utils.SendBookingCancelled(booking.Learner.CollegeEmail, booking.Learner.FullName(),
			booking.Tutor.FullName(), booking.SessionDate, booking.SessionTime)

		c.JSON(200, booking)
	}
}

// RescheduleBooking moves a session to a new slot and marks it rescheduled.
// A rescheduled booking may be rescheduled again or cancelled.
func RescheduleBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SessionDate string `json:"session_date" binding:"required"`
			SessionTime string `json:"session_time" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := findBooking(db, c.Param("id"))
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		if !booking.CanReschedule() {
			c.JSON(409, gin.H{"error": "Cancelled bookings cannot be rescheduled"})
			return
		}

		if err := models.ValidateSlot(input.SessionDate, input.SessionTime, booking.Duration, time.Now()); err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		if err := checkTutorSlot(db, booking.TutorID, booking.ID, input.SessionDate, input.SessionTime, booking.Duration); err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		booking.SessionDate = input.SessionDate
		booking.SessionTime = input.SessionTime
		booking.Status = models.BookingStatusRescheduled
		if err := db.Save(booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to reschedule booking"})
			return
		}

		notifyBookingChange(c, hub, "booking_rescheduled", booking)
		go utils.SendBookingRescheduled(booking.Learner.CollegeEmail, booking.Learner.FullName(),
			booking.Tutor.FullName(), booking.SessionDate, booking.SessionTime)

		c.JSON(200, booking)
	}
}

// GetLearnerBookings lists a learner's bookings enriched with tutor identity
func GetLearnerBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if err := db.Where("learner_id = ?", c.Param("id")).
			Preload("Tutor").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		response := make([]gin.H, 0, len(bookings))
		for i := range bookings {
			b := &bookings[i]
			response = append(response, gin.H{
				"booking_id":   b.ID,
				"learner_id":   b.LearnerID,
				"tutor_id":     b.TutorID,
				"session_date": b.SessionDate,
				"session_time": b.SessionTime,
				"duration":     b.Duration,
				"status":       b.Status,
				"created_at":   b.CreatedAt,
				"tutor_name":   b.Tutor.FullName(),
				"tutor_email":  b.Tutor.CollegeEmail,
			})
		}

		c.JSON(200, response)
	}
}

// GetTutorBookings lists a tutor's bookings enriched with learner identity
func GetTutorBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if err := db.Where("tutor_id = ?", c.Param("id")).
			Preload("Learner").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		response := make([]gin.H, 0, len(bookings))
		for i := range bookings {
			b := &bookings[i]
			response = append(response, gin.H{
				"booking_id":    b.ID,
				"learner_id":    b.LearnerID,
				"tutor_id":      b.TutorID,
				"session_date":  b.SessionDate,
				"session_time":  b.SessionTime,
				"duration":      b.Duration,
				"status":        b.Status,
				"created_at":    b.CreatedAt,
				"learner_name":  b.Learner.FullName(),
				"learner_email": b.Learner.CollegeEmail,
			})
		}

		c.JSON(200, response)
	}
}

// GetBookingStatus retrieves a single booking with both parties' identities
func GetBookingStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		booking, err := findBooking(db, c.Param("id"))
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"booking_id":   booking.ID,
			"status":       booking.Status,
			"session_date": booking.SessionDate,
			"session_time": booking.SessionTime,
			"duration":     booking.Duration,
			"learner_name": booking.Learner.FullName(),
			"tutor_name":   booking.Tutor.FullName(),
			"created_at":   booking.CreatedAt,
		})
	}
}
