package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             int64
	Username       string
	HashedPassword string
	IsActive       bool
	IsAdmin        bool
}

type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// Bill ids are assigned by the external payment system, not by the database.
type Bill struct {
	ID      int64
	UserID  int64
	Balance int64
}

// Transaction is an append-only credit record. Its id doubles as the
// idempotency key for webhook deliveries.
type Transaction struct {
	ID        int64
	BillID    int64
	Deposit   int64
	CreatedAt time.Time
}

// Purchase is a debit record, kept separate from Transaction because
// transaction ids belong to the external payment system.
type Purchase struct {
	ID        int64
	UserID    int64
	BillID    int64
	ProductID int64
	Price     int64
	CreatedAt time.Time
}

type Deposit struct {
	TransactionID int64
	UserID        int64
	BillID        int64
	Amount        int64
}

type DepositOutcome int

const (
	DepositApplied DepositOutcome = iota
	DepositBillCreated
	DepositDuplicate
)

type UserStorage interface {
	CreateUser(ctx context.Context, username, hashedPassword string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByID(ctx context.Context, userID int64) (User, error)
	SetUserActivity(ctx context.Context, userID int64, isActive bool) error
	GetUsersWithBills(ctx context.Context) ([]UserWithBills, error)
	CreateVerification(ctx context.Context, link uuid.UUID, userID int64) error
	GetVerification(ctx context.Context, link uuid.UUID) (int64, error)
}

type ProductStorage interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, productID int64) (Product, error)
	CreateProduct(ctx context.Context, title, description string, price int64) (int64, error)
	UpdateProduct(ctx context.Context, product Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type LedgerStorage interface {
	GetBill(ctx context.Context, billID, userID int64) (Bill, error)
	GetBillsByUserID(ctx context.Context, userID int64) ([]Bill, error)
	GetTransactionsByBillID(ctx context.Context, billID int64) ([]Transaction, error)
	GetPurchasesByUserID(ctx context.Context, userID int64) ([]Purchase, error)
	ApplyDeposit(ctx context.Context, deposit Deposit) (DepositOutcome, error)
	DebitBill(ctx context.Context, billID, userID, productID, price int64) error
}

type BillInfo struct {
	ID           int64
	Balance      int64
	Transactions []Transaction
}

type UserWithBills struct {
	ID       int64
	Username string
	IsActive bool
	IsAdmin  bool
	Bills    []Bill
}
