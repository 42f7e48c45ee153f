package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/utils"
)

type TokenChecker interface {
	Exists(ctx context.Context, tokenID string) (bool, error)
}

type UserGetter interface {
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
}

// Identity is the verified caller placed into the request context by Auth.
type Identity struct {
	UserID  int64
	IsAdmin bool
	TokenID string
}

type identityKey struct{}

const unauthorizedMessage = "Login to your account to use this functionality"

func Auth(secret string, tokenStore TokenChecker, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.Printf("Middleware: missing or invalid Authorization header")
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Printf("Middleware: invalid token: %v", err)
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				log.Printf("Middleware: invalid claims")
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			exp, ok := claims["exp"].(float64)
			if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
				log.Printf("Middleware: token expired or invalid exp claim")
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			userIDFloat, ok := claims["user_id"].(float64)
			if !ok {
				log.Printf("Middleware: user_id not found in claims")
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}
			userID := int64(userIDFloat)

			tokenID, ok := claims["jti"].(string)
			if !ok {
				log.Printf("Middleware: jti not found in claims")
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			issued, err := tokenStore.Exists(r.Context(), tokenID)
			if err != nil {
				log.Printf("Middleware: token store check failed: %v", err)
				utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !issued {
				log.Printf("Middleware: token %s revoked or unknown", tokenID)
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil || !user.IsActive {
				log.Printf("Middleware: user %d inactive or missing", userID)
				utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
				return
			}

			identity := Identity{UserID: user.ID, IsAdmin: user.IsAdmin, TokenID: tokenID}
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires an authenticated admin identity. Must be mounted inside an
// Auth group.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r)
		if !ok {
			utils.WriteJSONError(w, http.StatusUnauthorized, unauthorizedMessage)
			return
		}
		if !identity.IsAdmin {
			log.Printf("Middleware: user %d is not an admin", identity.UserID)
			utils.WriteJSONError(w, http.StatusForbidden, "You don't have access to use this functionality")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey{}).(Identity)
	return identity, ok
}

func GetUserID(r *http.Request) (int64, bool) {
	identity, ok := GetIdentity(r)
	return identity.UserID, ok
}

// WithIdentity is used by handler tests to inject a verified caller.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}
