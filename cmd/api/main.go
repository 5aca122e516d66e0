package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/studyhive/studyhive-backend/internal/database"
	"github.com/studyhive/studyhive-backend/internal/handlers"
	"github.com/studyhive/studyhive-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	// Serve uploaded tutor photos when running on local storage
	r.Static("/uploads", "./uploads")

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "StudyHive API is running"})
	})

	// Routes
	api := r.Group("/api")
	{
		// Booking event stream
		api.GET("/ws", handlers.WebSocketHandler(hub))

		students := api.Group("/students")
		{
			students.POST("", handlers.CreateStudent(db))
			students.GET("", handlers.GetStudents(db))
			students.PUT("/:id", handlers.UpdateStudent(db))
			students.DELETE("/:id", handlers.DeleteStudent(db))
		}

		tutors := api.Group("/tutors")
		{
			tutors.POST("", handlers.RegisterTutor(db))
			tutors.GET("", handlers.SearchTutors(db))
			tutors.GET("/unverified", handlers.GetUnverifiedTutors(db))
			tutors.PUT("/:id/verify", handlers.VerifyTutor(db))
			tutors.PUT("/:id/reject", handlers.RejectTutor(db))
			tutors.DELETE("/:id", handlers.DeleteTutor(db))
			tutors.POST("/:id/photo", handlers.UploadTutorPhoto(db))
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", handlers.CreateBooking(db, hub))
			bookings.GET("/:id/status", handlers.GetBookingStatus(db))
			bookings.GET("/learner/:id", handlers.GetLearnerBookings(db))
			bookings.GET("/tutor/:id", handlers.GetTutorBookings(db))
			bookings.PUT("/:id/confirm", handlers.ConfirmBooking(db, hub))
			bookings.PUT("/:id/cancel", handlers.CancelBooking(db, hub))
			bookings.PUT("/:id/reschedule", handlers.RescheduleBooking(db, hub))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
