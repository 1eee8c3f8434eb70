package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type HikePayment struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	HikeId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserEmail string         `gorm:"type:varchar(255);not null"`
	Amount    int64          `gorm:"not null"`
	Currency  string         `gorm:"type:varchar(10);not null;default:'ZAR'"`
	Status    string         `gorm:"type:varchar(50);not null;default:'pending'"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (HikePayment) TableName() string {
	return "hike_payments"
}
