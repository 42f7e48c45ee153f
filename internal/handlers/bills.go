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

type BillsHandler struct {
	billsUC *usecase.BillsUseCase
}

func NewBillsHandler(billsUC *usecase.BillsUseCase) *BillsHandler {
	return &BillsHandler{billsUC: billsUC}
}

type transactionResponse struct {
	ID        int64  `json:"id"`
	Deposit   int64  `json:"deposit"`
	CreatedAt string `json:"created_at"`
}

type billResponse struct {
	ID           int64                 `json:"id"`
	Balance      int64                 `json:"balance"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *BillsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bills, err := h.billsUC.GetUserBills(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to get bills for user %d: %v", userID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := struct {
		Bills []billResponse `json:"bills"`
	}{Bills: make([]billResponse, 0, len(bills))}

	for _, bill := range bills {
		b := billResponse{
			ID:           bill.ID,
			Balance:      bill.Balance,
			Transactions: make([]transactionResponse, 0, len(bill.Transactions)),
		}
		for _, t := range bill.Transactions {
			b.Transactions = append(b.Transactions, transactionResponse{
				ID:        t.ID,
				Deposit:   t.Deposit,
				CreatedAt: t.CreatedAt.Format(time.RFC3339),
			})
		}
		response.Bills = append(response.Bills, b)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode bills response: %v", err)
	}
}
