package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/webshop/billing/internal/models"
	"github.com/webshop/billing/internal/utils"
)

// AdminProductsHandler serves the product CRUD for admins: one handler type,
// method-dispatched like the original admin surface.
type AdminProductsHandler struct {
	store ProductStorage
}

func NewAdminProductsHandler(store ProductStorage) *AdminProductsHandler {
	return &AdminProductsHandler{store: store}
}

func (h *AdminProductsHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *AdminProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode product create request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Title == "" || len(req.Title) > 64 || req.Price < 0 {
		utils.WriteJSONError(w, http.StatusBadRequest, "Title must be 1-64 characters and price must not be negative")
		return
	}

	id, err := h.store.CreateProduct(r.Context(), req.Title, req.Description, req.Price)
	if err != nil {
		log.Printf("Failed to create product %q: %v", req.Title, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Printf("Product %q created with id %d", req.Title, id)
	utils.WriteJSONMessage(w, http.StatusCreated, "The product was successfully created")
}

func (h *AdminProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode product update request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.ID == 0 || req.Title == "" || len(req.Title) > 64 || req.Price < 0 {
		utils.WriteJSONError(w, http.StatusBadRequest, "Id, title and a non-negative price are required")
		return
	}

	err := h.store.UpdateProduct(r.Context(), models.Product{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, "The product was not found")
			return
		}
		log.Printf("Failed to update product %d: %v", req.ID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSONMessage(w, http.StatusOK, "The product was successfully updated")
}

func (h *AdminProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to decode product delete request: %v", err)
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.store.DeleteProduct(r.Context(), req.ID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, "The product was not found")
			return
		}
		log.Printf("Failed to delete product %d: %v", req.ID, err)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.WriteJSONMessage(w, http.StatusOK, "The product was successfully deleted")
}
