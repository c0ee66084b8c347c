package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nkapoor/interview-coach-api/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Booking{}, &models.ContactMessage{}, &models.Testimonial{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Admin dashboards filter on these constantly; keep them indexed.
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`)
	db.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_messages_status ON contact_messages (status)`)

	return db
}
