package repositories

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
)

// CatalogSource reads the storefront catalog out of the repositories.
type CatalogSource struct {
	restaurants RestaurantRepository
	menuItems   MenuItemRepository
}

var _ catalog.Source = (*CatalogSource)(nil)

func NewCatalogSource(restaurants RestaurantRepository, menuItems MenuItemRepository) *CatalogSource {
	return &CatalogSource{restaurants: restaurants, menuItems: menuItems}
}

func (s *CatalogSource) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurants.GetAll(ctx)
}

func (s *CatalogSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.menuItems.GetAll(ctx)
}

// SeedCatalog replaces the stored catalog with the given records, writing in
// batches of batchSize, and checks the stored counts afterwards. progress, if set, receives the number of records
// written after each batch.
func SeedCatalog(
	ctx context.Context,
	restaurantRepo RestaurantRepository,
	menuItemRepo MenuItemRepository,
	restaurants []models.Restaurant,
	menuItems []models.MenuItem,
	batchSize int,
	progress func(n int),
) error {
	if batchSize < 1 {
		batchSize = 100
	}
	if progress == nil {
		progress = func(int) {}
	}

	if err := menuItemRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear menu items: %w", err)
	}
	if err := restaurantRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear restaurants: %w", err)
	}

	for start := 0; start < len(restaurants); start += batchSize {
		end := min(start+batchSize, len(restaurants))
		if err := restaurantRepo.BulkCreate(ctx, restaurants[start:end]); err != nil {
			return fmt.Errorf("failed to insert restaurants: %w", err)
		}
		progress(end - start)
	}
	for start := 0; start < len(menuItems); start += batchSize {
		end := min(start+batchSize, len(menuItems))
		if err := menuItemRepo.BulkCreate(ctx, menuItems[start:end]); err != nil {
			return fmt.Errorf("failed to insert menu items: %w", err)
		}
		progress(end - start)
	}
	return verifyCounts(ctx, restaurantRepo, menuItemRepo, len(restaurants), len(menuItems))
}

func verifyCounts(ctx context.Context, restaurantRepo RestaurantRepository, menuItemRepo MenuItemRepository, restaurants, menuItems int) error {
	stored, err := restaurantRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if stored != restaurants {
		return fmt.Errorf("seeded %d restaurants but found %d", restaurants, stored)
	}
	stored, err = menuItemRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count menu items: %w", err)
	}
	if stored != menuItems {
		return fmt.Errorf("seeded %d menu items but found %d", menuItems, stored)
	}
	return nil
}
