package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/http/middleware"
	"github.com/propmart/catalog-backend/internal/http/response"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/service"
)

type PropertyHandler struct {
	svc service.PropertyService
}

func NewPropertyHandler(svc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

type propertyPayload struct {
	Content  *string `json:"content"`
	Priority *string `json:"priority"`
	Flag     *string `json:"flag"`
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list records", nil)
		return
	}
	if listing == nil {
		listing = []domain.Property{}
	}
	response.JSON(w, r, http.StatusOK, listing)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid record id", nil)
		return
	}
	property, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "record not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load record", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, property)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.CurrentUserID(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var body propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	input := service.CreatePropertyInput{OwnerID: userID}
	if body.Content != nil {
		input.Content = *body.Content
	}
	if body.Priority != nil {
		input.Priority = *body.Priority
	}
	if body.Flag != nil {
		input.Flag = *body.Flag
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrPropertyInvalidContent) {
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create record", nil)
		return
	}
	response.JSON(w, r, http.StatusCreated, created)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid record id", nil)
		return
	}
	var body propertyPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, service.UpdatePropertyInput{
		Content:  body.Content,
		Priority: body.Priority,
		Flag:     body.Flag,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPropertyNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "record not found", nil)
		case errors.Is(err, service.ErrPropertyInvalidContent), errors.Is(err, service.ErrPropertyNoUpdates):
			response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update record", nil)
		}
		return
	}
	response.JSON(w, r, http.StatusOK, updated)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid record id", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "record not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete record", nil)
		return
	}
	response.JSON(w, r, http.StatusNoContent, nil)
}

func (h *PropertyHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.DueToday(r.Context())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list records", nil)
		return
	}
	if listing == nil {
		listing = []domain.Property{}
	}
	response.JSON(w, r, http.StatusOK, listing)
}

func (h *PropertyHandler) DueNext7Days(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.DueNext7Days(r.Context())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list records", nil)
		return
	}
	if listing == nil {
		listing = []domain.Property{}
	}
	response.JSON(w, r, http.StatusOK, listing)
}
