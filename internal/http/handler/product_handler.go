package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/propmart/catalog-backend/internal/http/response"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Search serves the filtered catalog listing. Unknown sort fields and
// malformed filter parameters come back as 400 with per-field details.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseProductFilter(r)
	if len(fieldErrors) > 0 {
		response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid filter parameters", map[string]any{"fields": fieldErrors})
		return
	}

	page, err := h.svc.Search(r.Context(), filter, r.URL.Query().Get("sort_by"), parseLimitOffset(r))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortField) {
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid filter parameters", map[string]any{
				"fields": map[string]string{"sort_by": "not a sortable field"},
			})
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to search products", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, paginated(r, page))
}

type productPayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Brand       *string          `json:"brand"`
	Rating      *float64         `json:"rating"`
	Quantity    *int             `json:"quantity"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body productPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	input := service.CreateProductInput{}
	if body.Name != nil {
		input.Name = *body.Name
	}
	if body.Description != nil {
		input.Description = *body.Description
	}
	if body.Price != nil {
		input.Price = *body.Price
	}
	if body.Category != nil {
		input.Category = *body.Category
	}
	if body.Brand != nil {
		input.Brand = *body.Brand
	}
	if body.Rating != nil {
		input.Rating = *body.Rating
	}
	if body.Quantity != nil {
		input.Quantity = *body.Quantity
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		if isProductValidationError(err) {
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create product", nil)
		return
	}
	response.JSON(w, r, http.StatusCreated, created)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	product, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load product", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	var body productPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, service.UpdateProductInput{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Brand:       body.Brand,
		Rating:      body.Rating,
		Quantity:    body.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		case isProductValidationError(err) || errors.Is(err, service.ErrProductNoUpdates):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update product", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete product", nil)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func isProductValidationError(err error) bool {
	return errors.Is(err, service.ErrProductInvalidName) ||
		errors.Is(err, service.ErrProductInvalidCategory) ||
		errors.Is(err, service.ErrProductInvalidPrice) ||
		errors.Is(err, service.ErrProductInvalidRating) ||
		errors.Is(err, service.ErrProductInvalidQuantity)
}
