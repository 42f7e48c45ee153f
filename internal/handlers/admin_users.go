package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/utils"
)

type AdminUsersHandler struct {
	store AdminUserStorage
}

func NewAdminUsersHandler(store AdminUserStorage) *AdminUsersHandler {
	return &AdminUsersHandler{store: store}
}

type adminBillResponse struct {
	ID      int64 `json:"id"`
	Balance int64 `json:"balance"`
}

type adminUserResponse struct {
	ID       int64               `json:"id"`
	Username string              `json:"username"`
	IsActive bool                `json:"is_active"`
	IsAdmin  bool                `json:"is_admin"`
	Bills    []adminBillResponse `json:"bills"`
}

func (h *AdminUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.GetUsersWithBills(r.Context())
	if err != nil {
		log.Printf("Failed to get users: %v", err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := struct {
		Users []adminUserResponse `json:"users"`
	}{Users: make([]adminUserResponse, 0, len(users))}

	for _, u := range users {
		user := adminUserResponse{
			ID:       u.ID,
			Username: u.Username,
			IsActive: u.IsActive,
			IsAdmin:  u.IsAdmin,
			Bills:    make([]adminBillResponse, 0, len(u.Bills)),
		}
		for _, b := range u.Bills {
			user.Bills = append(user.Bills, adminBillResponse{ID: b.ID, Balance: b.Balance})
		}
		response.Users = append(response.Users, user)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode users response: %v", err)
	}
}

func (h *AdminUsersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       int64 `json:"id"`
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode user patch request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.ID == 0 || req.IsActive == nil {
		utils.WriteJSONError(w, http.StatusBadRequest, "Id and is_active are required")
		return
	}

	if err := h.store.SetUserActivity(r.Context(), req.ID, *req.IsActive); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, "The user was not found")
			return
		}
		log.Printf("Failed to change activity of user %d: %v", req.ID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	message := "The user is deactivated"
	if *req.IsActive {
		message = "The user is activated"
	}
	log.Printf("User %d activity set to %v", req.ID, *req.IsActive)
	utils.WriteJSONMessage(w, http.StatusOK, message)
}
