package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/utils"
)

type ProductsListHandler struct {
	store ProductStorage
}

func NewProductsListHandler(store ProductStorage) *ProductsListHandler {
	return &ProductsListHandler{store: store}
}

func (h *ProductsListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.GetProducts(r.Context())
	if err != nil {
		log.Printf("Failed to get products: %v", err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"products": products}); err != nil {
		log.Printf("Failed to encode products response: %v", err)
	}
}
