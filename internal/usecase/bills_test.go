package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/testutils"
)

func TestGetUserBills(t *testing.T) {
	ledger := &testutils.MockLedgerStorage{}
	uc := NewBillsUseCase(ledger)

	ctx := context.Background()
	ledger.On("GetBillsByUserID", mock.Anything, int64(1)).Return([]models.Bill{
		{ID: 55, UserID: 1, Balance: 150},
		{ID: 56, UserID: 1, Balance: 0},
	}, nil)
	ledger.On("GetTransactionsByBillID", mock.Anything, int64(55)).Return([]models.Transaction{
		{ID: 1, BillID: 55, Deposit: 100},
		{ID: 2, BillID: 55, Deposit: 50},
	}, nil)
	ledger.On("GetTransactionsByBillID", mock.Anything, int64(56)).Return([]models.Transaction{}, nil)

	bills, err := uc.GetUserBills(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, bills, 2)
	assert.Equal(t, int64(55), bills[0].ID)
	assert.Equal(t, int64(150), bills[0].Balance)
	assert.Len(t, bills[0].Transactions, 2)
	assert.Empty(t, bills[1].Transactions)
}

func TestGetUserBills_NoBills(t *testing.T) {
	ledger := &testutils.MockLedgerStorage{}
	uc := NewBillsUseCase(ledger)

	ledger.On("GetBillsByUserID", mock.Anything, int64(1)).Return([]models.Bill{}, nil)

	bills, err := uc.GetUserBills(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, bills)
}

func TestGetUserBills_StorageError(t *testing.T) {
	ledger := &testutils.MockLedgerStorage{}
	uc := NewBillsUseCase(ledger)

	ledger.On("GetBillsByUserID", mock.Anything, int64(1)).Return([]models.Bill{}, errors.New("db error"))

	_, err := uc.GetUserBills(context.Background(), 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get bills")
}
