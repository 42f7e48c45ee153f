package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/middleware"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/testutils"
	"github.com/webshop/billing/internal/usecase"
)

func TestBillsHandlerServeHTTP(t *testing.T) {
	ls := &testutils.MockLedgerStorage{}
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ls.On("GetBillsByUserID", mock.Anything, int64(1)).Return([]models.Bill{
		{ID: 55, UserID: 1, Balance: 150},
	}, nil)
	ls.On("GetTransactionsByBillID", mock.Anything, int64(55)).Return([]models.Transaction{
		{ID: 1, BillID: 55, Deposit: 100, CreatedAt: createdAt},
		{ID: 2, BillID: 55, Deposit: 50, CreatedAt: createdAt},
	}, nil)

	handler := NewBillsHandler(usecase.NewBillsUseCase(ls))

	req := httptest.NewRequest(http.MethodGet, "/api/receive-bills-info", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: 1}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"bills": [
			{
				"id": 55,
				"balance": 150,
				"transactions": [
					{"id": 1, "deposit": 100, "created_at": "2024-05-01T12:00:00Z"},
					{"id": 2, "deposit": 50, "created_at": "2024-05-01T12:00:00Z"}
				]
			}
		]
	}`, w.Body.String())
}

func TestBillsHandlerEmpty(t *testing.T) {
	ls := &testutils.MockLedgerStorage{}
	ls.On("GetBillsByUserID", mock.Anything, int64(1)).Return([]models.Bill{}, nil)

	handler := NewBillsHandler(usecase.NewBillsUseCase(ls))

	req := httptest.NewRequest(http.MethodGet, "/api/receive-bills-info", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: 1}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bills":[]}`, w.Body.String())
}

func TestBillsHandlerUnauthorized(t *testing.T) {
	ls := &testutils.MockLedgerStorage{}
	handler := NewBillsHandler(usecase.NewBillsUseCase(ls))

	req := httptest.NewRequest(http.MethodGet, "/api/receive-bills-info", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
