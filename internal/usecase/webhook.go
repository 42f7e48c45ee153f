package usecase

import (
	"context"
	"fmt"

	"github.com/webshop/billing/internal/models"
)

type SignatureVerifier interface {
	Verify(transactionID, userID, billID, amount int64, signature string) bool
}

type DepositStorage interface {
	ApplyDeposit(ctx context.Context, deposit models.Deposit) (models.DepositOutcome, error)
}

type WebhookUserStorage interface {
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
}

type WebhookUseCase struct {
	verifier SignatureVerifier
	ledger   DepositStorage
	users    WebhookUserStorage
}

func NewWebhookUseCase(verifier SignatureVerifier, ledger DepositStorage, users WebhookUserStorage) *WebhookUseCase {
	return &WebhookUseCase{verifier: verifier, ledger: ledger, users: users}
}

// ProcessDeposit validates and applies one payment notification. Checks run
// in a fixed order: signature, user, amount, then the atomic credit. A
// redelivered transaction id reports the outcome of the original delivery
// without touching the ledger again.
func (uc *WebhookUseCase) ProcessDeposit(ctx context.Context, signature string, transactionID, userID, billID, amount int64) (models.DepositOutcome, error) {
	if !uc.verifier.Verify(transactionID, userID, billID, amount, signature) {
		return 0, models.ErrSignatureInvalid
	}

	if _, err := uc.users.GetUserByID(ctx, userID); err != nil {
		return 0, err
	}

	if amount <= 0 {
		return 0, models.ErrAmountNotPositive
	}

	outcome, err := uc.ledger.ApplyDeposit(ctx, models.Deposit{
		TransactionID: transactionID,
		UserID:        userID,
		BillID:        billID,
		Amount:        amount,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply deposit: %w", err)
	}
	return outcome, nil
}
