package repository

import (
	"errors"
	"testing"

	"github.com/propmart/catalog-backend/internal/domain"
)

func TestProductCreateAndFind(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	product := &domain.Product{Name: "Loft Epsilon", Brand: "b1", Category: domain.CategoryResidential, Price: dec("120.50"), Rating: 4.8, Quantity: 1}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected assigned id")
	}

	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Name != "Loft Epsilon" {
		t.Fatalf("unexpected name %q", found.Name)
	}
	if !found.Price.Equal(dec("120.50")) {
		t.Fatalf("price round trip lost precision: %s", found.Price)
	}
}

func TestProductFindMissing(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	if _, err := repo.FindByID(404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductUpdate(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	product := &domain.Product{Name: "Old", Brand: "b1", Category: domain.CategoryResidential, Price: dec("10"), Quantity: 1}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Update(product.ID, map[string]any{"name": "New", "quantity": 7}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	found, err := repo.FindByID(product.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.Name != "New" || found.Quantity != 7 {
		t.Fatalf("update not applied: %+v", found)
	}

	if err := repo.Update(404, map[string]any{"name": "X"}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for missing row, got %v", err)
	}
}

func TestProductDelete(t *testing.T) {
	repo := NewProductRepository(newRepositoryDBForTest(t))

	product := &domain.Product{Name: "Gone", Brand: "b1", Category: domain.CategoryResidential, Price: dec("10")}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.DeleteByID(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got %v", err)
	}
	if err := repo.DeleteByID(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound on double delete, got %v", err)
	}
}
