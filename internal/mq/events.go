package mq

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for expense audit events.
const (
	ExpenseCreated = "expense.created"
	ExpenseUpdated = "expense.updated"
	ExpenseDeleted = "expense.deleted"
)

// ExpenseEventPayload is the audit record published after an expense write.
type ExpenseEventPayload struct {
	ExpenseID   uuid.UUID `json:"expense_id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
