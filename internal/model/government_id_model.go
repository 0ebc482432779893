package model

import "time"

type GovernmentID struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	CustomerId int64     `gorm:"not null;uniqueIndex"` // at most one ID record per customer
	IdType     string    `gorm:"type:varchar(64);not null"`
	IdNumber   string    `gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (GovernmentID) TableName() string {
	return "government_ids"
}
