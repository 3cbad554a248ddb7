package factories

import (
	"context"
	"math/rand"
	"sync"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/jaswdr/faker"
)

// SyntheticSource generates a reproducible fake catalog. The same seed and
// counts always produce the same records.
type SyntheticSource struct {
	RestaurantCount    int
	ItemsPerRestaurant int
	Seed               int64

	once        sync.Once
	restaurants []models.Restaurant
	items       []models.MenuItem
}

func NewSyntheticSource(restaurants, itemsPerRestaurant int, seed int64) *SyntheticSource {
	return &SyntheticSource{
		RestaurantCount:    restaurants,
		ItemsPerRestaurant: itemsPerRestaurant,
		Seed:               seed,
	}
}

// Generate builds the catalog on first use and returns it.
func (s *SyntheticSource) Generate() ([]models.Restaurant, []models.MenuItem) {
	s.once.Do(func() {
		fake := faker.NewWithSeed(rand.NewSource(s.Seed))
		rf := NewRestaurantFactory(fake)
		mf := NewMenuItemFactory(fake)

		s.restaurants = make([]models.Restaurant, 0, s.RestaurantCount)
		s.items = make([]models.MenuItem, 0, s.RestaurantCount*s.ItemsPerRestaurant)
		for i := 0; i < s.RestaurantCount; i++ {
			r := rf.CreateRestaurant()
			s.restaurants = append(s.restaurants, r)
			for j := 0; j < s.ItemsPerRestaurant; j++ {
				s.items = append(s.items, mf.CreateMenuItem(r))
			}
		}
	})
	return s.restaurants, s.items
}

func (s *SyntheticSource) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	restaurants, _ := s.Generate()
	return restaurants, nil
}

func (s *SyntheticSource) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, items := s.Generate()
	return items, nil
}
