package handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/webshop/billing/internal/constants"
)

// issueToken signs a JWT for the user and records its id in the token store
// so it can be revoked on logout.
func issueToken(ctx context.Context, store TokenStore, secret string, userID int64) (string, error) {
	tokenID := uuid.NewString()
	ttl := constants.TokenTTLHours * time.Hour

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"jti":     tokenID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	if err := store.Save(ctx, tokenID, userID, ttl); err != nil {
		return "", err
	}
	return tokenString, nil
}
