package postgres

import (
	"context"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const menuItemColumns = "id, restaurant_id, name, price, category, image, rating"

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

var _ repositories.MenuItemRepository = (*MenuItemRepository)(nil)

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []models.MenuItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{"id", "restaurant_id", "name", "price", "category", "image", "rating"},
		pgx.CopyFromSlice(len(menuItems), func(i int) ([]interface{}, error) {
			return []interface{}{
				menuItems[i].ID,
				menuItems[i].RestaurantID,
				menuItems[i].Name,
				menuItems[i].Price,
				menuItems[i].Category,
				menuItems[i].Image,
				menuItems[i].Rating,
			}, nil
		}),
	)
	return err
}

func (r *MenuItemRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE menu_items CASCADE")
	return err
}

func scanMenuItems(rows pgx.Rows) ([]models.MenuItem, error) {
	defer rows.Close()

	var menuItems []models.MenuItem
	for rows.Next() {
		var menuItem models.MenuItem
		err := rows.Scan(
			&menuItem.ID,
			&menuItem.RestaurantID,
			&menuItem.Name,
			&menuItem.Price,
			&menuItem.Category,
			&menuItem.Image,
			&menuItem.Rating,
		)
		if err != nil {
			return nil, err
		}
		menuItems = append(menuItems, menuItem)
	}
	return menuItems, rows.Err()
}
