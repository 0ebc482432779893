package model

import "time"

type LoanApplication struct {
	Id              int64     `gorm:"primaryKey;autoIncrement"`
	CustomerId      int64     `gorm:"not null;index"`
	Amount          int64     `gorm:"not null"`
	Purpose         string    `gorm:"type:text;not null"`
	ApplicationDate time.Time `gorm:"type:date;not null"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}
