package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/utils"
)

type ActivateHandler struct {
	store  UserStorage
	tokens TokenStore
	secret string
}

func NewActivateHandler(store UserStorage, tokens TokenStore, secret string) *ActivateHandler {
	return &ActivateHandler{store: store, tokens: tokens, secret: secret}
}

func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	link, err := uuid.Parse(chi.URLParam(r, "link"))
	if err != nil {
		log.Printf("Invalid activation link: %v", err)
		utils.WriteJSONError(w, http.StatusNotFound, "It seems you have proceeded the wrong link :(")
		return
	}

	userID, err := h.store.GetVerification(r.Context(), link)
	if err != nil {
		if errors.Is(err, models.ErrVerificationNotFound) {
			log.Printf("Verification link %s not found", link)
			utils.WriteJSONError(w, http.StatusNotFound, "It seems you have proceeded the wrong link :(")
			return
		}
		log.Printf("Failed to look up verification %s: %v", link, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.store.SetUserActivity(r.Context(), userID, true); err != nil {
		log.Printf("Failed to activate user %d: %v", userID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := issueToken(r.Context(), h.tokens, h.secret, userID)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", userID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": "Logged in successfully",
		"token":   token,
	}); err != nil {
		log.Printf("Failed to encode activation response: %v", err)
	}
	log.Printf("User %d activated", userID)
}
