package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webshop/billing/internal/models"
)

// Storage is the single access path to the database. Every balance mutation
// goes through one of its transaction helpers, so webhook credits and
// purchase debits are serialized by the same row locks.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) (*Storage, error) {
	if db == nil {
		return nil, errors.New("database pool is nil")
	}
	return &Storage{db: db}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isRetryable reports whether the transaction failed on a transient conflict:
// serialization failure, deadlock, or a unique violation from two requests
// creating the same bill at once.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01" || pgErr.Code == "23505"
}

func (s *Storage) CreateUser(ctx context.Context, username, hashedPassword string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (username, hashed_password) VALUES ($1, $2) RETURNING id`,
		username, hashedPassword,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, models.ErrUsernameTaken
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, hashed_password, is_active, is_admin FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive, &u.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (s *Storage) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, hashed_password, is_active, is_admin FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.HashedPassword, &u.IsActive, &u.IsAdmin)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (s *Storage) SetUserActivity(ctx context.Context, userID int64, isActive bool) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE users SET is_active = $1 WHERE id = $2`, isActive, userID)
	if err != nil {
		return fmt.Errorf("set user activity: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *Storage) GetUsersWithBills(ctx context.Context) ([]models.UserWithBills, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, username, is_active, is_admin FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	defer rows.Close()

	var users []models.UserWithBills
	for rows.Next() {
		var u models.UserWithBills
		if err := rows.Scan(&u.ID, &u.Username, &u.IsActive, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Bills = []models.Bill{}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	billRows, err := s.db.Query(ctx,
		`SELECT id, user_id, balance FROM bills ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get bills: %w", err)
	}
	defer billRows.Close()

	byUser := make(map[int64]int, len(users))
	for i, u := range users {
		byUser[u.ID] = i
	}
	for billRows.Next() {
		var b models.Bill
		if err := billRows.Scan(&b.ID, &b.UserID, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if i, ok := byUser[b.UserID]; ok {
			users[i].Bills = append(users[i].Bills, b)
		}
	}
	if err := billRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return users, nil
}

func (s *Storage) CreateVerification(ctx context.Context, link uuid.UUID, userID int64) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO user_verifications (uuid, user_id) VALUES ($1, $2)`, link, userID)
	if err != nil {
		return fmt.Errorf("create verification: %w", err)
	}
	return nil
}

func (s *Storage) GetVerification(ctx context.Context, link uuid.UUID) (int64, error) {
	var userID int64
	err := s.db.QueryRow(ctx,
		`SELECT user_id FROM user_verifications WHERE uuid = $1`, link).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, models.ErrVerificationNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get verification: %w", err)
	}
	return userID, nil
}

func (s *Storage) GetProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, title, description, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *Storage) GetProductByID(ctx context.Context, productID int64) (models.Product, error) {
	var p models.Product
	err := s.db.QueryRow(ctx,
		`SELECT id, title, description, price FROM products WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.Title, &p.Description, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *Storage) CreateProduct(ctx context.Context, title, description string, price int64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO products (title, description, price) VALUES ($1, $2, $3) RETURNING id`,
		title, description, price,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, product models.Product) error {
	ct, err := s.db.Exec(ctx,
		`UPDATE products SET title = $1, description = $2, price = $3 WHERE id = $4`,
		product.Title, product.Description, product.Price, product.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, productID int64) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
