package models

import (
	"time"

	"github.com/google/uuid"
)

type ReconciliationFailure struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID    string     `gorm:"type:varchar(64);index"`
	EventType    string     `gorm:"type:varchar(64);not null"`
	Payload      string     `gorm:"type:jsonb;not null"`
	ErrorMessage string     `gorm:"type:text"`
	Attempts     int        `gorm:"not null;default:0"`
	ResolvedAt   *time.Time `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ReconciliationFailure) TableName() string {
	return "reconciliation_failures"
}
