package postgres

import (
	"context"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

var _ repositories.RestaurantRepository = (*RestaurantRepository)(nil)

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []models.Restaurant) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"restaurants"},
		[]string{"id", "name", "cuisine", "rating", "delivery_time", "image"},
		pgx.CopyFromSlice(len(restaurants), func(i int) ([]interface{}, error) {
			return []interface{}{
				restaurants[i].ID,
				restaurants[i].Name,
				restaurants[i].Cuisine,
				restaurants[i].Rating,
				restaurants[i].DeliveryTime,
				restaurants[i].Image,
			}, nil
		}),
	)
	return err
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	query := `
        SELECT id, name, cuisine, rating, delivery_time, image
        FROM restaurants
        ORDER BY id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var restaurant models.Restaurant
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Cuisine,
			&restaurant.Rating,
			&restaurant.DeliveryTime,
			&restaurant.Image,
		)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE restaurants CASCADE")
	return err
}
