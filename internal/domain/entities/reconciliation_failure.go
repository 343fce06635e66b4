package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReconciliationFailure is a dead-letter entry for an authenticated webhook
// whose status could not be written.
type ReconciliationFailure struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    string          `json:"accountId"`
	EventType    string          `json:"eventType"`
	Payload      json.RawMessage `json:"payload"`
	ErrorMessage string          `json:"errorMessage"`
	Attempts     int             `json:"attempts"`
	ResolvedAt   null.Time       `json:"resolvedAt"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// IsResolved reports whether an operator or replay has closed the entry
func (f *ReconciliationFailure) IsResolved() bool {
	return f.ResolvedAt.Valid
}

// ReconciliationFailureFilter narrows dead-letter listings
type ReconciliationFailureFilter struct {
	IncludeResolved bool `form:"includeResolved"`
	Page            int  `form:"page"`
	Limit           int  `form:"limit"`
}
