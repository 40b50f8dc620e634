package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mybudget/internal/domain"
	"mybudget/internal/model"
	"mybudget/internal/mq"
	"mybudget/pkg/metrics"
)

// recordZone anchors the expense date column. Dates are calendar days in
// this offset, not the server's local zone.
var recordZone = time.FixedZone("-03:00", -3*60*60)

// Filter selects which expenses a listing returns.
type Filter string

const (
	FilterAll     Filter = "ALL"
	FilterPending Filter = "PENDING"
	FilterPaid    Filter = "PAID"
)

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Description *string       `json:"description"`
	Amount      *float64      `json:"amount"`
	Status      *model.Status `json:"status"`
}

// ExpenseStore is the slice of the expense repository the workflows need.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	UpdateExpense(ctx context.Context, e *model.Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID int64) ([]model.Expense, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status model.Status) ([]model.Expense, error)
}

// EventPublisher emits audit events after a successful write.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Service struct {
	expenses  ExpenseStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewService(expenses ExpenseStore, publisher EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		expenses:  expenses,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates and persists a new expense owned by user. Status always
// starts PENDING and the date is set server-side.
func (s *Service) Create(ctx context.Context, user *model.User, description string, amount float64) (*model.Expense, error) {
	if err := validateAmount(amount); err != nil {
		metrics.IncrementExpenseOp("create", "rejected")
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		metrics.IncrementExpenseOp("create", "rejected")
		return nil, err
	}

	e := &model.Expense{
		ID:          uuid.New(),
		UserID:      user.ID,
		Description: description,
		Amount:      amount,
		Date:        today(),
		Status:      model.StatusPending,
	}

	if err := s.expenses.CreateExpense(ctx, e); err != nil {
		metrics.IncrementExpenseOp("create", "error")
		return nil, err
	}

	s.publishEvent(mq.ExpenseCreated, e)
	metrics.IncrementExpenseOp("create", "success")
	return e, nil
}

// Update applies a partial update to an expense the user owns. Supplied
// fields are validated the same way as on create.
func (s *Service) Update(ctx context.Context, user *model.User, id uuid.UUID, input UpdateInput) (*model.Expense, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		metrics.IncrementExpenseOp("update", "rejected")
		return nil, err
	}

	if e.UserID != user.ID {
		metrics.IncrementExpenseOp("update", "rejected")
		return nil, fmt.Errorf("%w: you do not have permission to update this expense", domain.ErrUnauthorized)
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			metrics.IncrementExpenseOp("update", "rejected")
			return nil, err
		}
		e.Amount = *input.Amount
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			metrics.IncrementExpenseOp("update", "rejected")
			return nil, err
		}
		e.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			metrics.IncrementExpenseOp("update", "rejected")
			return nil, fmt.Errorf("%w: status must be PENDING or PAID", domain.ErrExpenseValidation)
		}
		e.Status = *input.Status
	}

	if err := s.expenses.UpdateExpense(ctx, e); err != nil {
		metrics.IncrementExpenseOp("update", "error")
		return nil, err
	}

	s.publishEvent(mq.ExpenseUpdated, e)
	metrics.IncrementExpenseOp("update", "success")
	return e, nil
}

// Delete removes an expense the user owns. PENDING expenses cannot be
// deleted by anyone, their owner included.
func (s *Service) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	e, err := s.load(ctx, id)
	if err != nil {
		metrics.IncrementExpenseOp("delete", "rejected")
		return err
	}

	if e.Status == model.StatusPending {
		metrics.IncrementExpenseOp("delete", "rejected")
		return fmt.Errorf("%w: a PENDING expense cannot be deleted", domain.ErrUnauthorized)
	}

	if e.UserID != user.ID {
		metrics.IncrementExpenseOp("delete", "rejected")
		return fmt.Errorf("%w: you do not have permission to delete this expense", domain.ErrUnauthorized)
	}

	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		metrics.IncrementExpenseOp("delete", "error")
		return err
	}

	s.publishEvent(mq.ExpenseDeleted, e)
	metrics.IncrementExpenseOp("delete", "success")
	return nil
}

// List returns the user's expenses matching the filter, oldest date first.
// An empty result is reported as not found.
func (s *Service) List(ctx context.Context, user *model.User, filter Filter) ([]model.Expense, error) {
	var (
		expenses []model.Expense
		err      error
	)

	switch filter {
	case FilterPending:
		expenses, err = s.expenses.ListByUserAndStatus(ctx, user.ID, model.StatusPending)
	case FilterPaid:
		expenses, err = s.expenses.ListByUserAndStatus(ctx, user.ID, model.StatusPaid)
	default:
		expenses, err = s.expenses.ListByUser(ctx, user.ID)
	}
	if err != nil {
		metrics.IncrementExpenseOp("list", "error")
		return nil, err
	}

	if len(expenses) == 0 {
		metrics.IncrementExpenseOp("list", "rejected")
		return nil, fmt.Errorf("%w: no expenses registered", domain.ErrExpenseNotFound)
	}

	metrics.IncrementExpenseOp("list", "success")
	return expenses, nil
}

// load fetches an expense; the store reports a missing id as
// domain.ErrExpenseNotFound.
func (s *Service) load(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	return s.expenses.FindByID(ctx, id)
}

// publishEvent emits an audit event. The audit trail is advisory: a publish
// failure is logged but never fails the request.
func (s *Service) publishEvent(routingKey string, e *model.Expense) {
	payload := mq.ExpenseEventPayload{
		ExpenseID:   e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount,
		Status:      string(e.Status),
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Warn("failed to publish expense event",
			zap.String("routing_key", routingKey),
			zap.String("expense_id", e.ID.String()),
			zap.Error(err),
		)
	}
}

// today is the current calendar date in the record zone.
func today() time.Time {
	now := time.Now().In(recordZone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, recordZone)
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: the amount must be greater than zero", domain.ErrExpenseValidation)
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: the description must not be empty", domain.ErrExpenseValidation)
	}
	return nil
}
