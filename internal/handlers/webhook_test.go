package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/signature"
	"github.com/webshop/billing/internal/testutils"
	"github.com/webshop/billing/internal/usecase"
)

func TestWebhookHandlerServeHTTP(t *testing.T) {
	const privateKey = "Qsd@3fd"
	verifier := signature.NewVerifier(privateKey, false)

	payload := func(txID, userID, billID, amount int64) string {
		sig := verifier.Sign(txID, userID, billID, amount)
		return fmt.Sprintf(`{"signature":"%s","transaction_id":%d,"user_id":%d,"bill_id":%d,"amount":%d}`,
			sig, txID, userID, billID, amount)
	}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(*testutils.MockLedgerStorage, *testutils.MockUserStorage)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное пополнение существующего счёта",
			body: payload(1, 123, 55, 100),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
				us.On("GetUserByID", mock.Anything, int64(123)).Return(models.User{ID: 123, IsActive: true}, nil)
				ls.On("ApplyDeposit", mock.Anything, mock.AnythingOfType("models.Deposit")).Return(models.DepositApplied, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"The payment was completed successfully"}`,
		},
		{
			name: "успешное пополнение с созданием счёта",
			body: payload(2, 123, 77, 100),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
				us.On("GetUserByID", mock.Anything, int64(123)).Return(models.User{ID: 123, IsActive: true}, nil)
				ls.On("ApplyDeposit", mock.Anything, mock.AnythingOfType("models.Deposit")).Return(models.DepositBillCreated, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"message":"The payment was completed successfully, the bill was created"}`,
		},
		{
			name: "повторная доставка той же транзакции",
			body: payload(1, 123, 55, 100),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
				us.On("GetUserByID", mock.Anything, int64(123)).Return(models.User{ID: 123, IsActive: true}, nil)
				ls.On("ApplyDeposit", mock.Anything, mock.AnythingOfType("models.Deposit")).Return(models.DepositDuplicate, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"The payment was completed successfully"}`,
		},
		{
			name: "неверная подпись",
			body: strings.Replace(payload(1, 123, 55, 100), `"amount":100`, `"amount":200`, 1),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
			},
			expectedStatus: http.StatusNotAcceptable,
			expectedBody:   `{"error":"The signature is incorrect"}`,
		},
		{
			name: "пользователь не найден",
			body: payload(1, 999, 55, 100),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
				us.On("GetUserByID", mock.Anything, int64(999)).Return(models.User{}, models.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"The user was not found"}`,
		},
		{
			name: "неположительная сумма",
			body: payload(1, 123, 55, -5),
			setupMocks: func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {
				us.On("GetUserByID", mock.Anything, int64(123)).Return(models.User{ID: 123, IsActive: true}, nil)
			},
			expectedStatus: http.StatusPreconditionRequired,
			expectedBody:   `{"error":"The amount must be a positive number"}`,
		},
		{
			name:           "неверный формат запроса",
			body:           `invalid json`,
			setupMocks:     func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request format"}`,
		},
		{
			name:           "отсутствуют обязательные поля",
			body:           `{"signature":"abc"}`,
			setupMocks:     func(ls *testutils.MockLedgerStorage, us *testutils.MockUserStorage) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"signature, transaction_id, user_id, bill_id and amount are required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := &testutils.MockLedgerStorage{}
			us := &testutils.MockUserStorage{}
			tt.setupMocks(ls, us)

			uc := usecase.NewWebhookUseCase(verifier, ls, us)
			handler := NewWebhookHandler(uc)

			req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWebhookHandlerBadSignatureWritesNothing(t *testing.T) {
	verifier := signature.NewVerifier("Qsd@3fd", false)
	ls := &testutils.MockLedgerStorage{}
	us := &testutils.MockUserStorage{}
	handler := NewWebhookHandler(usecase.NewWebhookUseCase(verifier, ls, us))

	body := `{"signature":"deadbeef","transaction_id":1,"user_id":123,"bill_id":55,"amount":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotAcceptable, w.Code)
	ls.AssertNotCalled(t, "ApplyDeposit", mock.Anything, mock.Anything)
}
