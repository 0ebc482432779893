package model

import "time"

type Customer struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	FullName    string    `gorm:"type:text;not null"`
	Email       string    `gorm:"type:text;not null;uniqueIndex"`
	PhoneNumber string    `gorm:"type:varchar(32);not null"`
	CreditScore int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
