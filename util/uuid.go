package util

import (
	"github.com/google/uuid"
)

// NewCorrelationId returns a time ordered id so request logs sort by arrival.
func NewCorrelationId() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
