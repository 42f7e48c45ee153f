package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type LoginHandler struct {
	store  UserStorage
	tokens TokenStore
	secret string
}

func NewLoginHandler(store UserStorage, tokens TokenStore, secret string) *LoginHandler {
	return &LoginHandler{store: store, tokens: tokens, secret: secret}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode login request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.WriteJSONError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Username, err)
		utils.WriteJSONError(w, http.StatusUnauthorized, "The username or password is entered incorrectly")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		log.Printf("Invalid password for user %s", req.Username)
		utils.WriteJSONError(w, http.StatusUnauthorized, "The username or password is entered incorrectly")
		return
	}

	token, err := issueToken(r.Context(), h.tokens, h.secret, user.ID)
	if err != nil {
		log.Printf("Failed to issue token for user %s: %v", req.Username, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": "Logged in successfully",
		"token":   token,
	}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
	log.Printf("User %s authenticated", req.Username)
}
