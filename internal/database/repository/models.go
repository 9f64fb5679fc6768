package repository

import "time"

// User is one credential-store row. PasswordHash is a bcrypt hash.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// SeenPayment records a payment id the poller has already appended.
type SeenPayment struct {
	PaymentID string
	SeenAt    time.Time
}
