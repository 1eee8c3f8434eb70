// FILE: internal/entity/payment_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// HikePayment is a ledger row for an event payment. On account erasure the
// row survives with its financial content intact; only the identifying
// fields are overwritten (tax and audit obligations outlive the membership).
type HikePayment struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	HikeId    uuid.UUID
	UserEmail string
	Amount    int64 // cents
	Currency  string
	Status    PaymentStatus
	Metadata  map[string]interface{}
	CreatedAt time.Time
	UpdatedAt time.Time
}
