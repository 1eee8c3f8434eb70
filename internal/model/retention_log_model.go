package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RetentionLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      *uuid.UUID     `gorm:"type:uuid;index"`
	Action      string         `gorm:"type:varchar(50);not null;index"`
	Reason      string         `gorm:"type:varchar(255);not null"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	PerformedBy string         `gorm:"type:varchar(100);not null;default:'system'"`
	CreatedAt   time.Time      `gorm:"default:now();not null;index"`
}

func (RetentionLog) TableName() string {
	return "retention_logs"
}
