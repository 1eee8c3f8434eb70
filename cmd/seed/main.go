package main

import (
	"log"
	"os"
	"time"

	"hiking-portal-be/internal/model"
	"hiking-portal-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds development fixtures: an admin, an active member and two members at
// interesting points in the retention lifecycle (one warning-due, one
// warned). Idempotent on email.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	password := hashPassword("password123")
	now := time.Now()

	threeYearsAgo := now.AddDate(-3, 0, -10)
	warnedAt := now.AddDate(0, 0, -30)
	deadline := warnedAt.AddDate(0, 0, 90)

	users := []model.User{
		{
			Email:        "admin@hiking.local",
			PasswordHash: password,
			FullName:     "Club Admin",
			Role:         "admin",
			Status:       "approved",
			LastActiveAt: &now,
		},
		{
			Email:        "active.member@hiking.local",
			PasswordHash: password,
			FullName:     "Active Member",
			Role:         "member",
			Status:       "approved",
			LastActiveAt: &now,
		},
		{
			Email:        "dormant.member@hiking.local",
			PasswordHash: password,
			FullName:     "Dormant Member",
			Role:         "member",
			Status:       "approved",
			LastActiveAt: &threeYearsAgo,
		},
		{
			Email:               "warned.member@hiking.local",
			PasswordHash:        password,
			FullName:            "Warned Member",
			Role:                "member",
			Status:              "approved",
			LastActiveAt:        &threeYearsAgo,
			WarningSentAt:       &warnedAt,
			ScheduledDeletionAt: &deadline,
		},
	}

	seedUsers(db, users)

	log.Println("✅ Success: Development fixtures seeded.")
}

func hashPassword(plain string) *string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}
	s := string(hash)
	return &s
}

func seedUsers(db *gorm.DB, users []model.User) {
	for _, u := range users {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&u).Error
		if err != nil {
			log.Printf("Warn: Failed to seed user %s: %v", u.Email, err)
			continue
		}
		log.Printf("Seeded user: %s (%s)", u.Email, u.Role)
	}
}
