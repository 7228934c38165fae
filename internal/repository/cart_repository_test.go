package repository

import (
	"errors"
	"sync"
	"testing"
)

func TestCartFindOrCreateIsStable(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	first, err := repo.FindOrCreate(1)
	if err != nil {
		t.Fatalf("first find-or-create failed: %v", err)
	}
	second, err := repo.FindOrCreate(1)
	if err != nil {
		t.Fatalf("second find-or-create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same user got two carts: %d and %d", first.ID, second.ID)
	}
}

func TestCartFindOrCreateConcurrent(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	const workers = 8
	ids := make([]uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart, err := repo.FindOrCreate(42)
			if err == nil {
				ids[i] = cart.ID
			}
		}()
	}
	wg.Wait()

	var want uint
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if want == 0 {
			want = id
		}
		if id != want {
			t.Fatalf("concurrent find-or-create produced distinct carts: %v", ids)
		}
	}
	if want == 0 {
		t.Fatal("no worker obtained a cart")
	}
}

func TestCartFindByUserMissing(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	if _, err := repo.FindByUser(9); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestCartAddItemKeepsDuplicateRows(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	cart, err := repo.FindOrCreate(1)
	if err != nil {
		t.Fatalf("find-or-create failed: %v", err)
	}
	if _, err := repo.AddItem(cart.ID, 7, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := repo.AddItem(cart.ID, 7, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows for the same product, got %d", len(items))
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	cart, err := repo.FindOrCreate(1)
	if err != nil {
		t.Fatalf("find-or-create failed: %v", err)
	}
	if _, err := repo.AddItem(cart.ID, 7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	item, err := repo.UpdateItemQuantity(cart.ID, 7, 9)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if item.Quantity != 9 {
		t.Fatalf("expected quantity 9, got %d", item.Quantity)
	}

	if _, err := repo.UpdateItemQuantity(cart.ID, 404, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartRemoveItem(t *testing.T) {
	repo := NewCartRepository(newRepositoryDBForTest(t))

	cart, err := repo.FindOrCreate(1)
	if err != nil {
		t.Fatalf("find-or-create failed: %v", err)
	}
	if _, err := repo.AddItem(cart.ID, 7, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.RemoveItem(cart.ID, 7); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := repo.RemoveItem(cart.ID, 7); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on second remove, got %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}
}
