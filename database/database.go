package database

import (
	"fmt"
	"log"

	"ieltsprep/config"
	"ieltsprep/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDb establishes a connection to PostgreSQL and runs migrations.
// The returned handle is passed down explicitly; there is no package-level instance.
func ConnectDb() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.AppConfig.DBHost,
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBName,
		config.AppConfig.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	return db
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.Skill{},
		&models.PracticeSet{},
		&models.ListeningTrack{},
		&models.Question{},
		&models.QuestionOption{},
		&models.PracticeSession{},
		&models.PracticeAnswer{},
		&models.ExamSession{},
		&models.ExamSectionResult{},
		&models.ExamAnswer{},
		&models.WritingEvaluation{},
		&models.SpeakingAttempt{},
		&models.SpeakingEvaluation{},
		&models.Profile{},
		&models.PremiumEvent{},
		&models.SubscriptionPlan{},
		&models.PaymentSession{},
		&models.Subscription{},
		&models.FAQ{},
		&models.Testimonial{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
