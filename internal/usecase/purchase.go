package usecase

import (
	"context"
	"fmt"

	"github.com/webshop/billing/internal/models"
)

type PurchaseLedgerStorage interface {
	GetBill(ctx context.Context, billID, userID int64) (models.Bill, error)
	DebitBill(ctx context.Context, billID, userID, productID, price int64) error
	GetPurchasesByUserID(ctx context.Context, userID int64) ([]models.Purchase, error)
}

type PurchaseProductStorage interface {
	GetProductByID(ctx context.Context, productID int64) (models.Product, error)
}

type PurchaseUseCase struct {
	ledger   PurchaseLedgerStorage
	products PurchaseProductStorage
}

func NewPurchaseUseCase(ledger PurchaseLedgerStorage, products PurchaseProductStorage) *PurchaseUseCase {
	return &PurchaseUseCase{ledger: ledger, products: products}
}

// PurchaseProduct debits the price of a product from the caller's bill.
// The bill and product lookups decide which error the caller sees; the
// sufficiency check itself happens again inside DebitBill under the row
// lock, so a stale read here can never overdraw the bill.
func (uc *PurchaseUseCase) PurchaseProduct(ctx context.Context, userID, billID, productID int64) error {
	if _, err := uc.ledger.GetBill(ctx, billID, userID); err != nil {
		return err
	}

	product, err := uc.products.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := uc.ledger.DebitBill(ctx, billID, userID, productID, product.Price); err != nil {
		return err
	}
	return nil
}

func (uc *PurchaseUseCase) GetUserPurchases(ctx context.Context, userID int64) ([]models.Purchase, error) {
	purchases, err := uc.ledger.GetPurchasesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}
