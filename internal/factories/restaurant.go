package factories

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/jaswdr/faker"
)

var cuisines = []string{"Italian", "American", "Japanese", "Indian", "Mexican", "Chinese", "Thai", "Greek", "French", "Mediterranean"}

// RestaurantFactory hands out restaurants with sequential ids and unique names.
type RestaurantFactory struct {
	fake      faker.Faker
	nextID    int
	slugCache map[string]bool
}

func NewRestaurantFactory(fake faker.Faker) *RestaurantFactory {
	return &RestaurantFactory{fake: fake, nextID: 1, slugCache: make(map[string]bool)}
}

func (rf *RestaurantFactory) CreateRestaurant() models.Restaurant {
	name, slug := rf.createUniqueName(rf.fake.Company().Name())
	minutes := rf.fake.IntBetween(2, 5) * 5

	r := models.Restaurant{
		ID:           rf.nextID,
		Name:         name,
		Cuisine:      rf.fake.RandomStringElement(cuisines),
		Rating:       rf.fake.Float64(1, 30, 50) / 10,
		DeliveryTime: fmt.Sprintf("%d-%d min", minutes, minutes+10),
		Image:        fmt.Sprintf("https://picsum.photos/seed/%s/400/300", slug),
	}
	rf.nextID++
	return r
}

// createUniqueName suffixes repeated company names so the storefront never
// shows two restaurants with the same label.
func (rf *RestaurantFactory) createUniqueName(name string) (string, string) {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)

	slug, label := base, name
	for counter := 2; rf.slugCache[slug]; counter++ {
		slug = fmt.Sprintf("%s-%d", base, counter)
		label = fmt.Sprintf("%s %d", name, counter)
	}
	rf.slugCache[slug] = true
	return label, slug
}
