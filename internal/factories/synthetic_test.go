package factories

import (
	"context"
	"testing"

	"github.com/chrisdamba/foodstore/internal/catalog"
)

func TestSyntheticSourceIsReproducible(t *testing.T) {
	r1, i1 := NewSyntheticSource(4, 3, 7).Generate()
	r2, i2 := NewSyntheticSource(4, 3, 7).Generate()

	if len(r1) != 4 || len(i1) != 12 {
		t.Fatalf("expected 4 restaurants and 12 items, got %d and %d", len(r1), len(i1))
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Fatalf("restaurant %d differs: %+v vs %+v", i, r1[i], r2[i])
		}
	}
	for i := range i1 {
		if i1[i] != i2[i] {
			t.Fatalf("item %d differs: %+v vs %+v", i, i1[i], i2[i])
		}
	}
}

func TestSyntheticSourceBuildsValidCatalog(t *testing.T) {
	c, err := catalog.Load(context.Background(), NewSyntheticSource(10, 8, 42))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	seen := map[string]bool{}
	for _, r := range c.Restaurants() {
		if seen[r.Name] {
			t.Fatalf("duplicate restaurant name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Rating < 3 || r.Rating > 5 {
			t.Fatalf("rating out of range: %v", r.Rating)
		}
	}
	for _, item := range c.Items() {
		if item.Price < 5 || item.Price > 30 {
			t.Fatalf("price out of range: %v", item.Price)
		}
		if item.Restaurant == "" || item.Category == "" {
			t.Fatalf("item missing restaurant or category: %+v", item)
		}
	}
}
