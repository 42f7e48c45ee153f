package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterHandler struct {
	store   UserStorage
	baseURL string
}

func NewRegisterHandler(store UserStorage, baseURL string) *RegisterHandler {
	return &RegisterHandler{store: store, baseURL: baseURL}
}

func isValidCredentials(username, password string) bool {
	if username == "" || len(username) > 64 {
		return false
	}
	return len(password) >= 8 && len(password) <= 64
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode register request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if !isValidCredentials(req.Username, req.Password) {
		log.Printf("Invalid credentials for username %q", req.Username)
		utils.WriteJSONError(w, http.StatusBadRequest,
			"Username length must not exceed 64 characters, password length must be between 8 and 64 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for username %s: %v", req.Username, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	userID, err := h.store.CreateUser(r.Context(), req.Username, string(hashedPassword))
	if err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			log.Printf("Username %s already exists", req.Username)
			utils.WriteJSONError(w, http.StatusBadRequest, "User with this username already exists")
			return
		}
		log.Printf("Failed to create user %s: %v", req.Username, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	link := uuid.New()
	if err := h.store.CreateVerification(r.Context(), link, userID); err != nil {
		log.Printf("Failed to create verification for user %d: %v", userID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	activationLink := fmt.Sprintf("%s/api/register/activate-user/%s", h.baseURL, link)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"activation_link": activationLink}); err != nil {
		log.Printf("Failed to encode register response: %v", err)
	}
	log.Printf("User %s registered, user_id: %d", req.Username, userID)
}
