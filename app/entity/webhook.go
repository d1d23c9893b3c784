package entity

import "time"

type Webhook struct {
	ID uint64

	URL string

	CreatedAt time.Time
}
