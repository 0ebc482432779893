package entity

import "time"

type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "Pending"
	LoanStatusApproved LoanStatus = "Approved"
	LoanStatusRejected LoanStatus = "Rejected"
)

// LoanApplication is created in Pending state when all eligibility checks
// pass. Status moves exactly once, Pending -> Approved|Rejected, by the
// staff portal.
type LoanApplication struct {
	Id              int64
	CustomerId      int64
	Amount          int64
	Purpose         string
	ApplicationDate time.Time
	Status          LoanStatus
}
