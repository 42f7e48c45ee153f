package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/middleware"
	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/usecase"
	"github.com/webshop/billing/internal/utils"
)

type PurchaseHandler struct {
	purchaseUC *usecase.PurchaseUseCase
}

func NewPurchaseHandler(purchaseUC *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{purchaseUC: purchaseUC}
}

func (h *PurchaseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID int64 `json:"product_id"`
		BillID    int64 `json:"bill_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode purchase request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.purchaseUC.PurchaseProduct(r.Context(), userID, req.BillID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBillNotFound):
			log.Printf("Purchase rejected: bill %d not owned by user %d", req.BillID, userID)
			utils.WriteJSONError(w, http.StatusBadRequest, "The bill id entered incorrectly")
		case errors.Is(err, models.ErrProductNotFound):
			log.Printf("Purchase rejected: product %d not found", req.ProductID)
			utils.WriteJSONError(w, http.StatusNotFound, "The product was not found")
		case errors.Is(err, models.ErrInsufficientFunds):
			log.Printf("Purchase rejected: insufficient funds on bill %d for product %d", req.BillID, req.ProductID)
			utils.WriteJSONError(w, http.StatusUnprocessableEntity, "The product purchase failed, insufficient funds on the bill")
		default:
			log.Printf("Purchase failed for user %d: %v", userID, err)
			utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	log.Printf("User %d purchased product %d from bill %d", userID, req.ProductID, req.BillID)
	utils.WriteJSONMessage(w, http.StatusOK, "The product was successfully purchased")
}
