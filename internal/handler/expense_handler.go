package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mybudget/internal/model"
	"mybudget/internal/service/expense"
)

// ExpenseService covers the owner-scoped expense workflows.
type ExpenseService interface {
	Create(ctx context.Context, user *model.User, description string, amount float64) (*model.Expense, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, input expense.UpdateInput) (*model.Expense, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
	List(ctx context.Context, user *model.User, filter expense.Filter) ([]model.Expense, error)
}

type ExpenseHandler struct {
	expenseService ExpenseService
}

func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Register handles POST /mybudget/expense/register
func (h *ExpenseHandler) Register(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, err := h.expenseService.Create(c.Request.Context(), user, req.Description, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /mybudget/expense/update/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	var input expense.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	updated, err := h.expenseService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /mybudget/expense/delete/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAll handles GET /mybudget/expense/list-all
func (h *ExpenseHandler) ListAll(c *gin.Context) {
	h.list(c, expense.FilterAll)
}

// ListPending handles GET /mybudget/expense/pending
func (h *ExpenseHandler) ListPending(c *gin.Context) {
	h.list(c, expense.FilterPending)
}

// ListPaid handles GET /mybudget/expense/paid
func (h *ExpenseHandler) ListPaid(c *gin.Context) {
	h.list(c, expense.FilterPaid)
}

func (h *ExpenseHandler) list(c *gin.Context, filter expense.Filter) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), user, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// currentUser returns the identity attached by the auth middleware. When no
// identity was established the request is rejected here; downstream
// workflows always receive a resolved user.
func currentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}

	user, ok := value.(*model.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user identity"})
		return nil, false
	}
	return user, true
}
