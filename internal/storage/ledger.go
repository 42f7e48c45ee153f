package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/webshop/billing/internal/constants"
	"github.com/webshop/billing/internal/models"
)

func (s *Storage) GetBill(ctx context.Context, billID, userID int64) (models.Bill, error) {
	var b models.Bill
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, balance FROM bills WHERE id = $1 AND user_id = $2`,
		billID, userID,
	).Scan(&b.ID, &b.UserID, &b.Balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Bill{}, models.ErrBillNotFound
	}
	if err != nil {
		return models.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (s *Storage) GetBillsByUserID(ctx context.Context, userID int64) ([]models.Bill, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, balance FROM bills WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("get bills: %w", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return bills, nil
}

func (s *Storage) GetTransactionsByBillID(ctx context.Context, billID int64) ([]models.Transaction, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, bill_id, deposit, created_at FROM transactions WHERE bill_id = $1 ORDER BY created_at`,
		billID)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&t.ID, &t.BillID, &t.Deposit, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.CreatedAt = createdAt.Time
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

func (s *Storage) GetPurchasesByUserID(ctx context.Context, userID int64) ([]models.Purchase, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, bill_id, product_id, price, created_at FROM purchases WHERE user_id = $1 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("get purchases: %w", err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&p.ID, &p.UserID, &p.BillID, &p.ProductID, &p.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.CreatedAt = createdAt.Time
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}

// ApplyDeposit credits a bill inside one transaction: lock (or create) the
// bill row, record the external transaction, bump the balance. A transaction
// id that was already recorded rolls everything back and reports
// DepositDuplicate, so webhook retries never credit twice.
func (s *Storage) ApplyDeposit(ctx context.Context, deposit models.Deposit) (models.DepositOutcome, error) {
	var outcome models.DepositOutcome
	var err error
	for attempt := 0; attempt < constants.TxAttempts; attempt++ {
		outcome, err = s.applyDepositTx(ctx, deposit)
		if err == nil || !isRetryable(err) {
			break
		}
	}
	return outcome, err
}

func (s *Storage) applyDepositTx(ctx context.Context, deposit models.Deposit) (models.DepositOutcome, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin deposit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	outcome := models.DepositApplied
	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM bills WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		deposit.BillID, deposit.UserID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO bills (id, user_id, balance) VALUES ($1, $2, 0)`,
			deposit.BillID, deposit.UserID); err != nil {
			return 0, fmt.Errorf("create bill: %w", err)
		}
		outcome = models.DepositBillCreated
	} else if err != nil {
		return 0, fmt.Errorf("lock bill: %w", err)
	}

	ct, err := tx.Exec(ctx,
		`INSERT INTO transactions (id, bill_id, deposit) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
		deposit.TransactionID, deposit.BillID, deposit.Amount)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Redelivery of an already-applied transaction. The rollback also
		// discards the bill row if one was created above.
		return models.DepositDuplicate, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE bills SET balance = balance + $1 WHERE id = $2`,
		deposit.Amount, deposit.BillID); err != nil {
		return 0, fmt.Errorf("credit bill: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit deposit tx: %w", err)
	}
	return outcome, nil
}

// DebitBill performs the check-and-debit for a purchase as one atomic unit.
// The FOR UPDATE lock closes the window where two purchases could both pass
// the sufficiency check against a stale balance.
func (s *Storage) DebitBill(ctx context.Context, billID, userID, productID, price int64) error {
	var err error
	for attempt := 0; attempt < constants.TxAttempts; attempt++ {
		err = s.debitBillTx(ctx, billID, userID, productID, price)
		if err == nil || !isRetryable(err) {
			break
		}
	}
	return err
}

func (s *Storage) debitBillTx(ctx context.Context, billID, userID, productID, price int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin debit tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM bills WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		billID, userID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrBillNotFound
	}
	if err != nil {
		return fmt.Errorf("lock bill: %w", err)
	}

	if balance < price {
		return models.ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx,
		`UPDATE bills SET balance = balance - $1 WHERE id = $2`,
		price, billID); err != nil {
		return fmt.Errorf("debit bill: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO purchases (user_id, bill_id, product_id, price) VALUES ($1, $2, $3, $4)`,
		userID, billID, productID, price); err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit debit tx: %w", err)
	}
	return nil
}
