package catalog

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstore/internal/models"
)

// Source supplies the raw records a Catalog is built from.
type Source interface {
	Restaurants(ctx context.Context) ([]models.Restaurant, error)
	MenuItems(ctx context.Context) ([]models.MenuItem, error)
}

// Load reads both lists from src and builds a Catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	restaurants, err := src.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	items, err := src.MenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	c, err := New(restaurants, items)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// StaticSource serves fixed slices, by default the built-in catalog.
type StaticSource struct {
	RestaurantList []models.Restaurant
	MenuItemList   []models.MenuItem
}

var _ Source = (*StaticSource)(nil)

func NewStaticSource() *StaticSource {
	restaurants, items := DefaultData()
	return &StaticSource{RestaurantList: restaurants, MenuItemList: items}
}

func (s *StaticSource) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.RestaurantList, nil
}

func (s *StaticSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.MenuItemList, nil
}
