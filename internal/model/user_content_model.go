package model

import (
	"time"

	"github.com/google/uuid"
)

// Tables below hold user-generated content owned by a member account. They
// are hard-deleted when the account is erased. The authoritative purge list
// lives in implementation.UserContentRepositoryImpl; adding a new user-owned
// table means adding a model here and one entry there.

type Feedback struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	HikeId    *uuid.UUID `gorm:"type:uuid;index"`
	Comment   string     `gorm:"type:text;not null"`
	Rating    *int
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string { return "feedback" }

type Suggestion struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Suggestion) TableName() string { return "suggestions" }

type HikeInterest struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	HikeId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Attending bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (HikeInterest) TableName() string { return "hike_interest" }

type Photo struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	HikeId    *uuid.UUID `gorm:"type:uuid;index"`
	URL       string     `gorm:"type:text;not null"`
	Caption   *string    `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Photo) TableName() string { return "photos" }

type SigninLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	IpAddress string    `gorm:"type:varchar(45)"`
	UserAgent string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SigninLog) TableName() string { return "signin_log" }

type ActivityLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ActivityLog) TableName() string { return "activity_log" }

type LongLivedToken struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LongLivedToken) TableName() string { return "long_lived_tokens" }
