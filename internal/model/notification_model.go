package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationLog struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	Type      string     `gorm:"type:varchar(20);not null"`
	Recipient string     `gorm:"type:varchar(255);not null"`
	Subject   string     `gorm:"type:varchar(255)"`
	Status    string     `gorm:"type:varchar(20);not null;index"`
	Error     *string    `gorm:"type:text"`
	SentAt    time.Time  `gorm:"default:now();not null"`
}

func (NotificationLog) TableName() string {
	return "notification_log"
}
