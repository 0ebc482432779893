package entity

import "time"

// GovernmentID holds the single verified document record per customer.
// Created once at the first successful verification flow, never updated.
type GovernmentID struct {
	Id         int64
	CustomerId int64
	IdType     string
	IdNumber   string
	CreatedAt  time.Time
}
