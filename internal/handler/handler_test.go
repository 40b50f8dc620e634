package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mybudget/internal/domain"
	"mybudget/internal/model"
	"mybudget/internal/service/expense"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthService struct {
	registerErr error
	loginToken  string
	loginErr    error
}

func (s *stubAuthService) Register(_ context.Context, name, email, _ string) (*model.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &model.User{ID: 1, Name: name, Email: email, PasswordHash: "hashed"}, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, error) {
	return s.loginToken, s.loginErr
}

type stubExpenseService struct {
	created   *model.Expense
	err       error
	deleteErr error
	listed    []model.Expense
}

func (s *stubExpenseService) Create(_ context.Context, user *model.User, description string, amount float64) (*model.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &model.Expense{
		ID:          uuid.New(),
		UserID:      user.ID,
		Description: description,
		Amount:      amount,
		Status:      model.StatusPending,
	}
	return s.created, nil
}

func (s *stubExpenseService) Update(_ context.Context, user *model.User, id uuid.UUID, input expense.UpdateInput) (*model.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	e := &model.Expense{ID: id, UserID: user.ID, Description: "Rent", Amount: 1200, Status: model.StatusPending}
	if input.Status != nil {
		e.Status = *input.Status
	}
	if input.Amount != nil {
		e.Amount = *input.Amount
	}
	return e, nil
}

func (s *stubExpenseService) Delete(_ context.Context, _ *model.User, _ uuid.UUID) error {
	return s.deleteErr
}

func (s *stubExpenseService) List(_ context.Context, _ *model.User, _ expense.Filter) ([]model.Expense, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.listed, nil
}

// asUser simulates the auth middleware having resolved an identity.
func asUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

func newTestRouter(authSvc AuthService, expSvc ExpenseService, user *model.User) *gin.Engine {
	r := gin.New()
	authHandler := NewAuthHandler(authSvc)
	expenseHandler := NewExpenseHandler(expSvc)

	r.POST("/mybudget/login", authHandler.Login)
	r.POST("/mybudget/user-register", authHandler.Register)

	exp := r.Group("/mybudget/expense", asUser(user))
	exp.POST("/register", expenseHandler.Register)
	exp.PUT("/update/:id", expenseHandler.Update)
	exp.GET("/list-all", expenseHandler.ListAll)
	exp.DELETE("/delete/:id", expenseHandler.Delete)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterUserReturnsProjectionWithoutPassword(t *testing.T) {
	r := newTestRouter(&stubAuthService{}, &stubExpenseService{}, nil)

	w := doJSON(t, r, http.MethodPost, "/mybudget/user-register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "hashed")

	var resp struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ana@example.com", resp.Email)
}

func TestRegisterUserValidationFailure(t *testing.T) {
	svc := &stubAuthService{registerErr: fmt.Errorf("%w: the email provided is invalid", domain.ErrRegistration)}
	r := newTestRouter(svc, &stubExpenseService{}, nil)

	w := doJSON(t, r, http.MethodPost, "/mybudget/user-register", gin.H{
		"name": "Ana", "email": "bad", "password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	r := newTestRouter(&stubAuthService{loginToken: "jwt-abc"}, &stubExpenseService{}, nil)

	w := doJSON(t, r, http.MethodPost, "/mybudget/login", gin.H{
		"email": "ana@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"token":"jwt-abc"}`, w.Body.String())
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRouter(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, &stubExpenseService{}, nil)

	w := doJSON(t, r, http.MethodPost, "/mybudget/login", gin.H{
		"email": "ana@example.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateExpense(t *testing.T) {
	user := &model.User{ID: 1}
	r := newTestRouter(&stubAuthService{}, &stubExpenseService{}, user)

	w := doJSON(t, r, http.MethodPost, "/mybudget/expense/register", gin.H{
		"description": "Rent", "amount": 1200.00,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp model.Expense
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusPending, resp.Status)
	assert.Equal(t, 1200.00, resp.Amount)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestExpenseWithoutIdentity(t *testing.T) {
	r := newTestRouter(&stubAuthService{}, &stubExpenseService{}, nil)

	w := doJSON(t, r, http.MethodPost, "/mybudget/expense/register", gin.H{
		"description": "Rent", "amount": 1200.00,
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateExpenseInvalidID(t *testing.T) {
	r := newTestRouter(&stubAuthService{}, &stubExpenseService{}, &model.User{ID: 1})

	w := doJSON(t, r, http.MethodPut, "/mybudget/expense/update/not-a-uuid", gin.H{"amount": 1.0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteExpense(t *testing.T) {
	r := newTestRouter(&stubAuthService{}, &stubExpenseService{}, &model.User{ID: 1})

	w := doJSON(t, r, http.MethodDelete, "/mybudget/expense/delete/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeletePendingExpenseMapsTo401(t *testing.T) {
	svc := &stubExpenseService{deleteErr: fmt.Errorf("%w: a PENDING expense cannot be deleted", domain.ErrUnauthorized)}
	r := newTestRouter(&stubAuthService{}, svc, &model.User{ID: 1})

	w := doJSON(t, r, http.MethodDelete, "/mybudget/expense/delete/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListEmptyMapsTo404(t *testing.T) {
	svc := &stubExpenseService{err: fmt.Errorf("%w: no expenses registered", domain.ErrExpenseNotFound)}
	r := newTestRouter(&stubAuthService{}, svc, &model.User{ID: 1})

	w := doJSON(t, r, http.MethodGet, "/mybudget/expense/list-all", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorStatusTable(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrRegistration, http.StatusUnauthorized},
		{domain.ErrExpenseValidation, http.StatusUnauthorized},
		{domain.ErrExpenseNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusUnauthorized},
		{domain.ErrTokenCreation, http.StatusInternalServerError},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
