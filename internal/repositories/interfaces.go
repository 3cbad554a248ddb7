package repositories

import (
	"context"

	"github.com/chrisdamba/foodstore/internal/models"
)

type RestaurantRepository interface {
	BulkCreate(ctx context.Context, restaurants []models.Restaurant) error
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type MenuItemRepository interface {
	BulkCreate(ctx context.Context, menuItems []models.MenuItem) error
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
