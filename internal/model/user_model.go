package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	Phone        *string   `gorm:"type:varchar(50)"`
	Role         string    `gorm:"type:varchar(50);not null;default:'member'"`
	Status       string    `gorm:"type:varchar(50);not null;default:'pending';index"`

	AvatarURL         *string `gorm:"type:text"`
	EmergencyContact  *string `gorm:"type:text"`
	MedicalConditions *string `gorm:"type:text"`
	DietaryNotes      *string `gorm:"type:text"`

	LastActiveAt        *time.Time `gorm:"index"`
	WarningSentAt       *time.Time `gorm:"column:retention_warning_sent_at"`
	ScheduledDeletionAt *time.Time `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
