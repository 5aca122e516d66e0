package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/models"
	"gorm.io/gorm"
)

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// CreateStudent registers a new learner
func CreateStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName    string `json:"first_name" binding:"required"`
			LastName     string `json:"last_name" binding:"required"`
			CollegeEmail string `json:"college_email" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		student := models.Student{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			CollegeEmail: input.CollegeEmail,
		}

		if err := db.Create(&student).Error; err != nil {
			if isDuplicateErr(err) {
				// Surface the storage message verbatim on conflict
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to create student"})
			return
		}

		c.JSON(201, student)
	}
}

// GetStudents lists all registered learners
func GetStudents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var students []models.Student
		if err := db.Find(&students).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch students"})
			return
		}

		c.JSON(200, students)
	}
}

// UpdateStudent updates a learner's details
func UpdateStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName    *string `json:"first_name"`
			LastName     *string `json:"last_name"`
			CollegeEmail *string `json:"college_email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var student models.Student
		if err := db.First(&student, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Student not found"})
			return
		}

		if input.FirstName != nil {
			student.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			student.LastName = *input.LastName
		}
		if input.CollegeEmail != nil {
			student.CollegeEmail = *input.CollegeEmail
		}

		if err := db.Save(&student).Error; err != nil {
			if isDuplicateErr(err) {
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to update student"})
			return
		}

		c.JSON(200, student)
	}
}

// DeleteStudent removes a learner and cancels their open bookings so no
// active booking is left pointing at a missing record.
func DeleteStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var student models.Student
		if err := db.First(&student, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Student not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Booking{}).
				Where("learner_id = ? AND status <> ?", student.ID, models.BookingStatusCancelled).
				Update("status", models.BookingStatusCancelled).Error; err != nil {
				return err
			}
			return tx.Delete(&student).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete student"})
			return
		}

		c.JSON(200, gin.H{"message": "Student deleted successfully!"})
	}
}
