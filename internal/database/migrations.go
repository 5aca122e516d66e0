package database

import (
	"github.com/studyhive/studyhive-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.Student{},
		&models.Tutor{},
		&models.Booking{},
	)
	if err != nil {
		return err
	}

	// Update tutors table for rows created before verification landed
	if db.Migrator().HasTable(&models.Tutor{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS verified boolean DEFAULT false",
			"ADD COLUMN IF NOT EXISTS status text DEFAULT 'pending'",
			"ADD COLUMN IF NOT EXISTS photo_url text DEFAULT ''",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE tutors " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		db.Exec(`ALTER TABLE tutors DROP CONSTRAINT IF EXISTS tutors_status_check`)
		db.Exec(`ALTER TABLE tutors ADD CONSTRAINT tutors_status_check CHECK (status IN ('pending', 'approved', 'rejected'))`)
		db.Exec(`ALTER TABLE tutors ADD CONSTRAINT tutors_hourly_rate_check CHECK (hourly_rate >= 0)`)
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		// Status and duration rules enforced at the schema level as well
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'cancelled', 'rescheduled'))`)
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_duration_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_duration_check CHECK (duration >= 30 AND duration % 15 = 0)`)

		// Backstop for orphaned bookings when an owner row is removed
		constraints := []struct {
			name string
			sql  string
		}{
			{"bookings_learner_fk", `ALTER TABLE bookings ADD CONSTRAINT bookings_learner_fk FOREIGN KEY (learner_id) REFERENCES students(id) ON DELETE CASCADE`},
			{"bookings_tutor_fk", `ALTER TABLE bookings ADD CONSTRAINT bookings_tutor_fk FOREIGN KEY (tutor_id) REFERENCES tutors(id) ON DELETE CASCADE`},
		}
		for _, c := range constraints {
			db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS ` + c.name)
			if err := db.Exec(c.sql).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
