package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/models"
	"github.com/studyhive/studyhive-backend/internal/services"
	"gorm.io/gorm"
)

// RegisterTutor creates a tutor application. Tutors start unverified and stay
// out of search until an admin approves them.
func RegisterTutor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName    string `json:"first_name" binding:"required"`
			LastName     string `json:"last_name" binding:"required"`
			CollegeEmail string `json:"college_email" binding:"required,email"`
			Modules      string `json:"modules" binding:"required"`
			HourlyRate   string `json:"hourly_rate" binding:"required"`
			Rating       string `json:"rating"`
			Bio          string `json:"bio"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// The signup form submits rate and rating as free text
		rate, err := models.ParseHourlyRate(input.HourlyRate)
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		rating, err := models.ParseRating(input.Rating)
		if err != nil {
			c.JSON(models.ErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		tutor := models.Tutor{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			CollegeEmail: input.CollegeEmail,
			Modules:      input.Modules,
			HourlyRate:   rate,
			Rating:       rating,
			Bio:          input.Bio,
			Verified:     false,
			Status:       models.TutorStatusPending,
		}

		if err := db.Create(&tutor).Error; err != nil {
			if isDuplicateErr(err) {
				c.JSON(409, gin.H{"error": err.Error()})
				return
			}
			c.JSON(500, gin.H{"error": "Failed to register tutor"})
			return
		}

		if err := services.InvalidateTutorSearch(c.Request.Context()); err != nil {
			log.Printf("Failed to invalidate tutor search cache: %v", err)
		}

		c.JSON(201, tutor)
	}
}

// SearchTutors returns verified tutors whose modules contain the query text.
// Results are cached for a few minutes per query.
func SearchTutors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		module := strings.TrimSpace(c.Query("module"))
		if module == "" {
			c.JSON(400, gin.H{"error": "module query parameter is required"})
			return
		}

		ctx := c.Request.Context()
		if cached, err := services.GetCachedTutorSearch(ctx, module); err == nil {
			c.Data(200, "application/json; charset=utf-8", cached)
			return
		}

		var tutors []models.Tutor
		if err := db.Where("verified = ? AND status = ? AND LOWER(modules) LIKE ?",
			true, models.TutorStatusApproved, "%"+strings.ToLower(module)+"%").
			Find(&tutors).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to search tutors"})
			return
		}

		// An empty result set is a normal outcome, not an error
		if tutors == nil {
			tutors = []models.Tutor{}
		}

		if payload, err := json.Marshal(tutors); err == nil {
			if err := services.CacheTutorSearch(ctx, module, payload); err != nil {
				log.Printf("Failed to cache tutor search %q: %v", module, err)
			}
		}

		c.JSON(200, tutors)
	}
}

// UploadTutorPhoto stores a profile photo in S3 or local storage
func UploadTutorPhoto(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tutor models.Tutor
		if err := db.First(&tutor, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tutor not found"})
			return
		}

		file, err := c.FormFile("photo")
		if err != nil {
			c.JSON(400, gin.H{"error": "photo file is required"})
			return
		}

		url, err := services.UploadImage(file, "tutors")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload photo"})
			return
		}

		tutor.PhotoURL = url
		if err := db.Save(&tutor).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save photo"})
			return
		}

		c.JSON(200, gin.H{"photo_url": url})
	}
}
