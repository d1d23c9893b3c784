package entity

import "time"

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusApproved = "APPROVED"
	PaymentStatusDeclined = "DECLINED"
)

type Payment struct {
	TransactionID uint64

	OrderNumber string

	FirstName string
	LastName  string
	ZipCode   string

	// EncryptedCardNumber is the only persisted form of the card number.
	EncryptedCardNumber string

	Status string

	CreatedAt time.Time
}
