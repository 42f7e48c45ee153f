package handlers

import (
	"log"
	"net/http"

	"github.com/webshop/billing/internal/middleware"
	"github.com/webshop/billing/internal/utils"
)

type LogoutHandler struct {
	tokens TokenStore
}

func NewLogoutHandler(tokens TokenStore) *LogoutHandler {
	return &LogoutHandler{tokens: tokens}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.tokens.Delete(r.Context(), identity.TokenID); err != nil {
		log.Printf("Failed to revoke token for user %d: %v", identity.UserID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Printf("User %d logged out", identity.UserID)
	utils.WriteJSONMessage(w, http.StatusOK, "Logged out successfully")
}
