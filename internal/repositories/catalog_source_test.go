package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
)

type fakeRestaurantRepo struct {
	rows    []models.Restaurant
	batches int
}

func (f *fakeRestaurantRepo) BulkCreate(_ context.Context, rs []models.Restaurant) error {
	f.batches++
	f.rows = append(f.rows, rs...)
	return nil
}
func (f *fakeRestaurantRepo) GetAll(context.Context) ([]models.Restaurant, error) { return f.rows, nil }
func (f *fakeRestaurantRepo) Count(context.Context) (int, error)                  { return len(f.rows), nil }
func (f *fakeRestaurantRepo) DeleteAll(context.Context) error {
	f.rows = nil
	return nil
}

type fakeMenuItemRepo struct {
	rows   []models.MenuItem
	failOn int
	lose   int
}

func (f *fakeMenuItemRepo) BulkCreate(_ context.Context, items []models.MenuItem) error {
	if f.failOn > 0 && len(f.rows)+len(items) >= f.failOn {
		return errors.New("copy failed")
	}
	f.rows = append(f.rows, items...)
	return nil
}
func (f *fakeMenuItemRepo) GetAll(context.Context) ([]models.MenuItem, error) { return f.rows, nil }
func (f *fakeMenuItemRepo) Count(context.Context) (int, error)                { return len(f.rows) - f.lose, nil }
func (f *fakeMenuItemRepo) DeleteAll(context.Context) error {
	f.rows = nil
	return nil
}

func TestSeedCatalogThenLoad(t *testing.T) {
	ctx := context.Background()
	rr := &fakeRestaurantRepo{rows: []models.Restaurant{{ID: 99, Name: "stale"}}}
	mr := &fakeMenuItemRepo{}
	restaurants, items := catalog.DefaultData()

	written := 0
	if err := SeedCatalog(ctx, rr, mr, restaurants, items, 2, func(n int) { written += n }); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if written != len(restaurants)+len(items) {
		t.Fatalf("expected progress for %d records, got %d", len(restaurants)+len(items), written)
	}
	if rr.batches != 2 {
		t.Fatalf("expected 2 restaurant batches, got %d", rr.batches)
	}

	c, err := catalog.Load(ctx, NewCatalogSource(rr, mr))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Restaurants()) != 3 || len(c.Items()) != 8 {
		t.Fatalf("expected seeded catalog, got %d restaurants and %d items", len(c.Restaurants()), len(c.Items()))
	}
}

func TestSeedCatalogReportsInsertFailure(t *testing.T) {
	restaurants, items := catalog.DefaultData()
	err := SeedCatalog(context.Background(), &fakeRestaurantRepo{}, &fakeMenuItemRepo{failOn: 5}, restaurants, items, 4, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSeedCatalogVerifiesCounts(t *testing.T) {
	restaurants, items := catalog.DefaultData()
	err := SeedCatalog(context.Background(), &fakeRestaurantRepo{}, &fakeMenuItemRepo{lose: 1}, restaurants, items, 4, nil)
	if err == nil || !strings.Contains(err.Error(), "menu items") {
		t.Fatalf("expected a menu item count mismatch, got %v", err)
	}
}
