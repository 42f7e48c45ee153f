package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/webshop/billing/internal/models"
)

type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) CreateUser(ctx context.Context, username, hashedPassword string) (int64, error) {
	args := m.Called(ctx, username, hashedPassword)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserStorage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStorage) SetUserActivity(ctx context.Context, userID int64, isActive bool) error {
	args := m.Called(ctx, userID, isActive)
	return args.Error(0)
}

func (m *MockUserStorage) GetUsersWithBills(ctx context.Context) ([]models.UserWithBills, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserWithBills), args.Error(1)
}

func (m *MockUserStorage) CreateVerification(ctx context.Context, link uuid.UUID, userID int64) error {
	args := m.Called(ctx, link, userID)
	return args.Error(0)
}

func (m *MockUserStorage) GetVerification(ctx context.Context, link uuid.UUID) (int64, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductStorage struct {
	mock.Mock
}

func (m *MockProductStorage) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStorage) GetProductByID(ctx context.Context, productID int64) (models.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductStorage) CreateProduct(ctx context.Context, title, description string, price int64) (int64, error) {
	args := m.Called(ctx, title, description, price)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductStorage) UpdateProduct(ctx context.Context, product models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductStorage) DeleteProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockLedgerStorage struct {
	mock.Mock
}

func (m *MockLedgerStorage) GetBill(ctx context.Context, billID, userID int64) (models.Bill, error) {
	args := m.Called(ctx, billID, userID)
	return args.Get(0).(models.Bill), args.Error(1)
}

func (m *MockLedgerStorage) GetBillsByUserID(ctx context.Context, userID int64) ([]models.Bill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Bill), args.Error(1)
}

func (m *MockLedgerStorage) GetTransactionsByBillID(ctx context.Context, billID int64) ([]models.Transaction, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerStorage) GetPurchasesByUserID(ctx context.Context, userID int64) ([]models.Purchase, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *MockLedgerStorage) ApplyDeposit(ctx context.Context, deposit models.Deposit) (models.DepositOutcome, error) {
	args := m.Called(ctx, deposit)
	return args.Get(0).(models.DepositOutcome), args.Error(1)
}

func (m *MockLedgerStorage) DebitBill(ctx context.Context, billID, userID, productID, price int64) error {
	args := m.Called(ctx, billID, userID, productID, price)
	return args.Error(0)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(bool), args.Error(1)
}

func (m *MockTokenStore) Delete(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
