package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeNotFound  Outcome = "not_found"
)

// InvocationRecord is the persisted trace of one dispatched command.
type InvocationRecord struct {
	ID      uuid.UUID
	Command string
	Args    []string
	Sender  string
	Target  string
	Outcome Outcome
	Error   string
	At      time.Time
}
