package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propmart/catalog-backend/internal/http/middleware"
	"github.com/propmart/catalog-backend/internal/http/response"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/service"
)

type CartHandler struct {
	svc service.CartService
}

func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type cartItemPayload struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CurrentUserID(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	view, err := h.svc.View(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "cart is empty, add something first", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load cart", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, view)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CurrentUserID(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var body cartItemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	item, err := h.svc.Add(r.Context(), userID, body.ProductID, body.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartInvalidQuantity):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, repository.ErrProductNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to add to cart", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CurrentUserID(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var body cartItemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	item, err := h.svc.UpdateQuantity(r.Context(), userID, body.ProductID, body.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartInvalidQuantity):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, repository.ErrCartNotFound), errors.Is(err, repository.ErrCartItemNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update cart", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, item)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CurrentUserID(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var body cartItemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	if err := h.svc.Remove(r.Context(), userID, body.ProductID); err != nil {
		if errors.Is(err, repository.ErrCartNotFound) || errors.Is(err, repository.ErrCartItemNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "cart item not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to remove from cart", nil)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}
