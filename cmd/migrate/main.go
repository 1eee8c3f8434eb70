package main

import (
	"log"
	"os"

	"hiking-portal-be/internal/model"
	"hiking-portal-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('member', 'admin'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_status') THEN CREATE TYPE user_status AS ENUM ('pending', 'approved', 'archived', 'deleted'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.HikePayment{},
		&model.Feedback{},
		&model.Suggestion{},
		&model.HikeInterest{},
		&model.Photo{},
		&model.SigninLog{},
		&model.ActivityLog{},
		&model.LongLivedToken{},
		&model.NotificationLog{},
		&model.RetentionLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes the sweeps rely on
	log.Println("Step 3: Creating sweep indexes...")

	postMigrationSQL := []string{
		// Warning selector scans on inactivity and the retention pair
		`CREATE INDEX IF NOT EXISTS idx_users_retention_sweep ON users (last_active_at, retention_warning_sent_at) WHERE status NOT IN ('archived', 'deleted');`,
		// Deletion selector scans on the deadline
		`CREATE INDEX IF NOT EXISTS idx_users_scheduled_deletion ON users (scheduled_deletion_at) WHERE scheduled_deletion_at IS NOT NULL;`,
		// Audit queries filter by user and recency
		`CREATE INDEX IF NOT EXISTS idx_retention_logs_user_created ON retention_logs (user_id, created_at DESC);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
