package usecase

import (
	"context"
	"fmt"

	"github.com/webshop/billing/internal/models"
)

type BillInfoStorage interface {
	GetBillsByUserID(ctx context.Context, userID int64) ([]models.Bill, error)
	GetTransactionsByBillID(ctx context.Context, billID int64) ([]models.Transaction, error)
}

type BillsUseCase struct {
	storage BillInfoStorage
}

func NewBillsUseCase(storage BillInfoStorage) *BillsUseCase {
	return &BillsUseCase{storage: storage}
}

func (uc *BillsUseCase) GetUserBills(ctx context.Context, userID int64) ([]models.BillInfo, error) {
	bills, err := uc.storage.GetBillsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}

	infos := make([]models.BillInfo, 0, len(bills))
	for _, bill := range bills {
		transactions, err := uc.storage.GetTransactionsByBillID(ctx, bill.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get transactions for bill %d: %w", bill.ID, err)
		}
		infos = append(infos, models.BillInfo{
			ID:           bill.ID,
			Balance:      bill.Balance,
			Transactions: transactions,
		})
	}
	return infos, nil
}
