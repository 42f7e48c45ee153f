package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/usecase"
	"github.com/webshop/billing/internal/utils"
)

type WebhookHandler struct {
	webhookUC *usecase.WebhookUseCase
}

func NewWebhookHandler(webhookUC *usecase.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{webhookUC: webhookUC}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signature     string `json:"signature"`
		TransactionID int64  `json:"transaction_id"`
		UserID        int64  `json:"user_id"`
		BillID        int64  `json:"bill_id"`
		Amount        int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode webhook request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Signature == "" || req.TransactionID == 0 || req.UserID == 0 || req.BillID == 0 {
		utils.WriteJSONError(w, http.StatusBadRequest, "signature, transaction_id, user_id, bill_id and amount are required")
		return
	}

	outcome, err := h.webhookUC.ProcessDeposit(r.Context(),
		req.Signature, req.TransactionID, req.UserID, req.BillID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSignatureInvalid):
			log.Printf("Webhook rejected: bad signature for transaction %d", req.TransactionID)
			utils.WriteJSONError(w, http.StatusNotAcceptable, "The signature is incorrect")
		case errors.Is(err, models.ErrUserNotFound):
			log.Printf("Webhook rejected: user %d not found", req.UserID)
			utils.WriteJSONError(w, http.StatusNotFound, "The user was not found")
		case errors.Is(err, models.ErrAmountNotPositive):
			log.Printf("Webhook rejected: non-positive amount %d", req.Amount)
			utils.WriteJSONError(w, http.StatusPreconditionRequired, "The amount must be a positive number")
		default:
			log.Printf("Webhook failed for transaction %d: %v", req.TransactionID, err)
			utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	switch outcome {
	case models.DepositBillCreated:
		log.Printf("Webhook applied: transaction %d created bill %d", req.TransactionID, req.BillID)
		utils.WriteJSONMessage(w, http.StatusCreated, "The payment was completed successfully, the bill was created")
	case models.DepositDuplicate:
		log.Printf("Webhook duplicate: transaction %d already applied", req.TransactionID)
		utils.WriteJSONMessage(w, http.StatusOK, "The payment was completed successfully")
	default:
		log.Printf("Webhook applied: transaction %d credited bill %d", req.TransactionID, req.BillID)
		utils.WriteJSONMessage(w, http.StatusOK, "The payment was completed successfully")
	}
}
