package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propmart/catalog-backend/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedSearchCatalog(t *testing.T, repo ProductRepository) {
	t.Helper()
	day := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	products := []domain.Product{
		{Name: "Alpha", Brand: "b1", Category: domain.CategoryResidential, Price: dec("10.00"), Rating: 3.5, Quantity: 5, CreatedAt: day},
		{Name: "Beta", Brand: "b2", Category: domain.CategoryCommercial, Price: dec("20.00"), Rating: 4.0, Quantity: 8, CreatedAt: day.Add(2 * time.Hour)},
		{Name: "Gamma", Brand: "b1", Category: domain.CategoryResidential, Price: dec("40.00"), Rating: 4.2, Quantity: 2, CreatedAt: day.Add(26 * time.Hour)},
		{Name: "Delta", Brand: "b3", Category: domain.CategoryCommercial, Price: dec("50.00"), Rating: 3.9, Quantity: 12, CreatedAt: day.Add(30 * time.Hour)},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			t.Fatalf("seeding %s: %v", products[i].Name, err)
		}
	}
}

func searchNames(t *testing.T, repo ProductRepository, filter ProductFilter, sortBy string) []string {
	t.Helper()
	page, err := repo.Search(filter, sortBy, LimitOffset{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	names := make([]string, 0, len(page.Items))
	for _, p := range page.Items {
		names = append(names, p.Name)
	}
	return names
}

func assertNames(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSearchByBrand(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	assertNames(t, searchNames(t, repo, ProductFilter{Brand: "b1"}, "name"), "Alpha", "Gamma")
}

func TestSearchPriceRangeIsInclusive(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	min, max := dec("20"), dec("50")
	got := searchNames(t, repo, ProductFilter{MinPrice: &min, MaxPrice: &max}, "name")
	assertNames(t, got, "Beta", "Delta", "Gamma")
}

func TestSearchSingleBoundIsNoOp(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	min := dec("20")
	got := searchNames(t, repo, ProductFilter{MinPrice: &min}, "name")
	if len(got) != 4 {
		t.Fatalf("a lone lower bound must not filter, got %v", got)
	}

	maxQty := 5
	got = searchNames(t, repo, ProductFilter{MaxQuantity: &maxQty}, "name")
	if len(got) != 4 {
		t.Fatalf("a lone upper bound must not filter, got %v", got)
	}
}

func TestSearchQuantityRange(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	minQty, maxQty := 2, 8
	got := searchNames(t, repo, ProductFilter{MinQuantity: &minQty, MaxQuantity: &maxQty}, "name")
	assertNames(t, got, "Alpha", "Beta", "Gamma")
}

func TestSearchNameSubstringFoldsCase(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	assertNames(t, searchNames(t, repo, ProductFilter{Name: "alph"}, "name"), "Alpha")
	assertNames(t, searchNames(t, repo, ProductFilter{Name: "ETA"}, "name"), "Beta")
}

func TestSearchCategoryAndRatingAreExact(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	assertNames(t, searchNames(t, repo, ProductFilter{Category: "commercial"}, "name"), "Beta", "Delta")

	rating := 4.2
	assertNames(t, searchNames(t, repo, ProductFilter{Rating: &rating}, "name"), "Gamma")
}

func TestSearchCreatedAtMatchesWholeDay(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	day := time.Date(2026, 5, 10, 18, 45, 0, 0, time.UTC)
	got := searchNames(t, repo, ProductFilter{CreatedAt: &day}, "name")
	assertNames(t, got, "Alpha", "Beta")
}

func TestSearchFiltersIntersect(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	min, max := dec("20"), dec("50")
	got := searchNames(t, repo, ProductFilter{Brand: "b1", MinPrice: &min, MaxPrice: &max}, "name")
	assertNames(t, got, "Gamma")
}

func TestSearchSortByPrice(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	assertNames(t, searchNames(t, repo, ProductFilter{}, "price"), "Alpha", "Beta", "Gamma", "Delta")
}

func TestSearchPagination(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))
	seedSearchCatalog(t, repo)

	page, err := repo.Search(ProductFilter{}, "name", LimitOffset{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if page.Count != 4 {
		t.Fatalf("count must reflect the full match set, got %d", page.Count)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Alpha" || page.Items[1].Name != "Beta" {
		t.Fatalf("unexpected first page: %+v", page.Items)
	}

	page, err = repo.Search(ProductFilter{}, "name", LimitOffset{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Delta" {
		t.Fatalf("unexpected second page: %+v", page.Items)
	}
}

func TestResolveProductSort(t *testing.T) {
	allowed := []string{"name", "category", "brand", "rating", "price", "quantity", "created_at"}
	for _, field := range allowed {
		got, err := ResolveProductSort(field)
		if err != nil {
			t.Fatalf("%s must be sortable: %v", field, err)
		}
		if got != field {
			t.Fatalf("expected %q, got %q", field, got)
		}
	}

	if got, err := ResolveProductSort(""); err != nil || got != "name" {
		t.Fatalf("empty sort must default to name, got %q err %v", got, err)
	}
	if got, err := ResolveProductSort(" Price "); err != nil || got != "price" {
		t.Fatalf("sort resolution must trim and fold case, got %q err %v", got, err)
	}

	rejected := []string{"password_hash", "id", "updated_at", "description", "price; drop table products", "unknown"}
	for _, field := range rejected {
		if _, err := ResolveProductSort(field); !errors.Is(err, ErrInvalidSortField) {
			t.Fatalf("%q must be rejected, got %v", field, err)
		}
	}
}
