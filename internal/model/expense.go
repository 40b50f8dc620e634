package model

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
)

// Valid reports whether s is one of the known expense statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Expense is a single budget entry. It references its owner by id only;
// navigation back to the user goes through the user repository.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
