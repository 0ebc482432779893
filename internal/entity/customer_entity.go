package entity

import "time"

// Customer is the identity record created by registration. It is never
// updated afterwards.
type Customer struct {
	Id          int64
	FullName    string
	Email       string
	PhoneNumber string
	CreditScore int
	CreatedAt   time.Time
}
