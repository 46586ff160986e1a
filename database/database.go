package database

import (
	"cyberacademy/models"
	courseModels "cyberacademy/models/course"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	runMigrations(db)

	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.SubscriptionPlan{},
		&models.EscudoTransaction{},
		&models.InstructorProfile{},
		&models.PopupNotification{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.LessonProgress{},
		&courseModels.Enrollment{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedSubscriptionPlans(db)

	log.Println("Migrations completed successfully.")
}

// seedSubscriptionPlans inserts the fixed upgrade-tier table if missing.
// Purchase eligibility depends on these rows existing and being ascending in
// both price and escudo grant.
func seedSubscriptionPlans(db *gorm.DB) {
	plans := []models.SubscriptionPlan{
		{Name: "CADETE", Price: 9.99, Escudos: 30, SortOrder: 1},
		{Name: "OPERADOR", Price: 19.99, Escudos: 80, SortOrder: 2},
		{Name: "ELITE", Price: 39.99, Escudos: 160, SortOrder: 3},
	}

	for _, plan := range plans {
		var existing models.SubscriptionPlan
		if err := db.Where("name = ?", plan.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Printf("Failed to seed plan %s: %v", plan.Name, err)
		}
	}
}
