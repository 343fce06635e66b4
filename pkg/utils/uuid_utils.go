package utils

import (
	"github.com/google/uuid"
)

// NewRecordID returns a v7 UUID. Within one process successive ids are
// strictly increasing. It panics if the random source fails, like uuid.New.
func NewRecordID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
