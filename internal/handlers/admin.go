package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/models"
	"github.com/studyhive/studyhive-backend/internal/services"
	"gorm.io/gorm"
)

// GetUnverifiedTutors returns the admin approval queue
func GetUnverifiedTutors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tutors []models.Tutor
		if err := db.Where("status = ?", models.TutorStatusPending).Find(&tutors).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch unverified tutors"})
			return
		}

		if tutors == nil {
			tutors = []models.Tutor{}
		}
		c.JSON(200, tutors)
	}
}

// VerifyTutor approves a tutor application. Approving an already verified
// tutor is a no-op.
func VerifyTutor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tutor models.Tutor
		if err := db.First(&tutor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tutor not found"})
			return
		}

		if !tutor.Searchable() {
			tutor.Verified = true
			tutor.Status = models.TutorStatusApproved
			if err := db.Save(&tutor).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to verify tutor"})
				return
			}

			if err := services.InvalidateTutorSearch(c.Request.Context()); err != nil {
				log.Printf("Failed to invalidate tutor search cache: %v", err)
			}
		}

		c.JSON(200, tutor)
	}
}

// RejectTutor marks an application rejected. The record is kept for audit and
// reapplication rather than deleted, and the tutor drops out of search and
// the admin queue.
func RejectTutor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tutor models.Tutor
		if err := db.First(&tutor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tutor not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			tutor.Verified = false
			tutor.Status = models.TutorStatusRejected
			if err := tx.Save(&tutor).Error; err != nil {
				return err
			}
			// A previously approved tutor may already hold bookings
			return tx.Model(&models.Booking{}).
				Where("tutor_id = ? AND status <> ?", tutor.ID, models.BookingStatusCancelled).
				Update("status", models.BookingStatusCancelled).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to reject tutor"})
			return
		}

		if err := services.InvalidateTutorSearch(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate tutor search cache: %v", err)
		}

		c.JSON(200, tutor)
	}
}

// DeleteTutor removes a tutor outright, cancelling their open bookings first
func DeleteTutor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tutor models.Tutor
		if err := db.First(&tutor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tutor not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Booking{}).
				Where("tutor_id = ? AND status <> ?", tutor.ID, models.BookingStatusCancelled).
				Update("status", models.BookingStatusCancelled).Error; err != nil {
				return err
			}
			return tx.Delete(&tutor).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete tutor"})
			return
		}

		if err := services.InvalidateTutorSearch(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate tutor search cache: %v", err)
		}

		c.JSON(200, gin.H{"message": "Tutor deleted successfully!"})
	}
}
