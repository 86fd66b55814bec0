package services

import (
	"time"

	portssvc "github.com/Chrisphine10/intellicash-core/internal/core/ports/services"
)

type realClock struct{}

// NewRealClock returns a Clock backed by time.Now in UTC.
func NewRealClock() portssvc.Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}
