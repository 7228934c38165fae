package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/propmart/catalog-backend/internal/domain"
	"github.com/propmart/catalog-backend/internal/repository"
	"github.com/propmart/catalog-backend/internal/service"
)

type stubProductService struct {
	page       repository.Page[domain.Product]
	searchErr  error
	lastFilter repository.ProductFilter
	lastSort   string
	lastPage   repository.LimitOffset
	created    *domain.Product
	createErr  error
}

func (s *stubProductService) Create(ctx context.Context, input service.CreateProductInput) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Product{ID: 1, Name: input.Name}, nil
}

func (s *stubProductService) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, repository.ErrProductNotFound
}

func (s *stubProductService) Search(ctx context.Context, filter repository.ProductFilter, sortBy string, page repository.LimitOffset) (repository.Page[domain.Product], error) {
	s.lastFilter = filter
	s.lastSort = sortBy
	s.lastPage = page
	if s.searchErr != nil {
		return repository.Page[domain.Product]{}, s.searchErr
	}
	return s.page, nil
}

func (s *stubProductService) Update(ctx context.Context, id uint, input service.UpdateProductInput) (*domain.Product, error) {
	return nil, repository.ErrProductNotFound
}

func (s *stubProductService) Delete(ctx context.Context, id uint) error {
	return repository.ErrProductNotFound
}

func productRouterForTest(svc service.ProductService) http.Handler {
	h := NewProductHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/v1/search", h.Search)
	r.Get("/api/v1/products/{id}", h.Get)
	r.Post("/api/v1/products", h.Create)
	r.Put("/api/v1/products/{id}", h.Update)
	r.Delete("/api/v1/products/{id}", h.Delete)
	return r
}

func TestSearchParsesTypedFilters(t *testing.T) {
	svc := &stubProductService{}
	r := productRouterForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?name=loft&brand=b1&min_price=10.5&max_price=99&min_quantity=1&max_quantity=5&rating=4.2&created_at=2026-05-10&sort_by=price", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	f := svc.lastFilter
	if f.Name != "loft" || f.Brand != "b1" {
		t.Fatalf("text filters not parsed: %+v", f)
	}
	if f.MinPrice == nil || f.MinPrice.String() != "10.5" || f.MaxPrice == nil {
		t.Fatalf("price bounds not parsed: %+v", f)
	}
	if f.MinQuantity == nil || *f.MinQuantity != 1 || f.MaxQuantity == nil || *f.MaxQuantity != 5 {
		t.Fatalf("quantity bounds not parsed: %+v", f)
	}
	if f.Rating == nil || *f.Rating != 4.2 {
		t.Fatalf("rating not parsed: %+v", f)
	}
	if f.CreatedAt == nil || f.CreatedAt.Day() != 10 {
		t.Fatalf("created_at not parsed: %+v", f)
	}
	if svc.lastSort != "price" {
		t.Fatalf("sort_by not forwarded, got %q", svc.lastSort)
	}
}

func TestSearchRejectsMalformedParams(t *testing.T) {
	r := productRouterForTest(&stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?min_price=abc&rating=x&created_at=tomorrow", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields map[string]string `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
	for _, field := range []string{"min_price", "rating", "created_at"} {
		if env.Error.Details.Fields[field] == "" {
			t.Fatalf("expected per-field message for %s, got %v", field, env.Error.Details.Fields)
		}
	}
}

func TestSearchRejectsUnknownSortField(t *testing.T) {
	r := productRouterForTest(&stubProductService{searchErr: repository.ErrInvalidSortField})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?sort_by=password_hash", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "sort_by") {
		t.Fatalf("expected sort_by in details, got %s", rr.Body.String())
	}
}

func TestSearchPaginationEnvelope(t *testing.T) {
	svc := &stubProductService{page: repository.Page[domain.Product]{
		Items:  []domain.Product{{ID: 3, Name: "Gamma"}, {ID: 4, Name: "Delta"}},
		Count:  10,
		Limit:  2,
		Offset: 2,
	}}
	r := productRouterForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?limit=2&offset=2", nil)
	req.Host = "api.example.test"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var env struct {
		Count    int64             `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if env.Count != 10 || len(env.Results) != 2 {
		t.Fatalf("unexpected envelope count=%d results=%d", env.Count, len(env.Results))
	}
	if env.Next == nil || !strings.Contains(*env.Next, "offset=4") {
		t.Fatalf("unexpected next link %v", env.Next)
	}
	if env.Previous == nil || !strings.Contains(*env.Previous, "offset=0") {
		t.Fatalf("unexpected previous link %v", env.Previous)
	}
}

func TestGetProductNotFound(t *testing.T) {
	r := productRouterForTest(&stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCreateProductValidationMapsTo400(t *testing.T) {
	r := productRouterForTest(&stubProductService{createErr: service.ErrProductInvalidCategory})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Lamp","category":"industrial","price":"10"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
