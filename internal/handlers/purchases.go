package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/webshop/billing/internal/middleware"
	"github.com/webshop/billing/internal/usecase"
	"github.com/webshop/billing/internal/utils"
)

type PurchasesHandler struct {
	purchaseUC *usecase.PurchaseUseCase
}

func NewPurchasesHandler(purchaseUC *usecase.PurchaseUseCase) *PurchasesHandler {
	return &PurchasesHandler{purchaseUC: purchaseUC}
}

type purchaseResponse struct {
	ID        int64  `json:"id"`
	BillID    int64  `json:"bill_id"`
	ProductID int64  `json:"product_id"`
	Price     int64  `json:"price"`
	CreatedAt string `json:"created_at"`
}

func (h *PurchasesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	purchases, err := h.purchaseUC.GetUserPurchases(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to get purchases for user %d: %v", userID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := struct {
		Purchases []purchaseResponse `json:"purchases"`
	}{Purchases: make([]purchaseResponse, 0, len(purchases))}

	for _, p := range purchases {
		response.Purchases = append(response.Purchases, purchaseResponse{
			ID:        p.ID,
			BillID:    p.BillID,
			ProductID: p.ProductID,
			Price:     p.Price,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode purchases response: %v", err)
	}
}
