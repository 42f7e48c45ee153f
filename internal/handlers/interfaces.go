package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/webshop/billing/internal/models"
)

type UserStorage interface {
	CreateUser(ctx context.Context, username, hashedPassword string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	SetUserActivity(ctx context.Context, userID int64, isActive bool) error
	CreateVerification(ctx context.Context, link uuid.UUID, userID int64) error
	GetVerification(ctx context.Context, link uuid.UUID) (int64, error)
}

type AdminUserStorage interface {
	SetUserActivity(ctx context.Context, userID int64, isActive bool) error
	GetUsersWithBills(ctx context.Context) ([]models.UserWithBills, error)
}

type ProductStorage interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, title, description string, price int64) (int64, error)
	UpdateProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}

type TokenStore interface {
	Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	Delete(ctx context.Context, tokenID string) error
}
