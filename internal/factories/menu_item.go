package factories

import (
	"fmt"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/jaswdr/faker"
)

type dish struct {
	name     string
	category string
}

var dishesByCuisine = map[string][]dish{
	"Italian":       {{"Margherita Pizza", "Pizza"}, {"Pepperoni Pizza", "Pizza"}, {"Spaghetti Carbonara", "Pasta"}, {"Lasagna", "Pasta"}, {"Tiramisu", "Desserts"}},
	"American":      {{"Classic Burger", "Burgers"}, {"BBQ Bacon Burger", "Burgers"}, {"Hot Dog", "Street Food"}, {"BBQ Ribs", "Grill"}, {"Apple Pie", "Desserts"}},
	"Japanese":      {{"California Roll", "Sushi"}, {"Salmon Nigiri", "Sushi"}, {"Ramen", "Noodles"}, {"Tempura", "Sides"}, {"Miso Soup", "Soups"}},
	"Indian":        {{"Chicken Tikka Masala", "Curry"}, {"Vegetable Curry", "Curry"}, {"Naan Bread", "Sides"}, {"Biryani", "Rice"}},
	"Mexican":       {{"Tacos", "Street Food"}, {"Burrito", "Street Food"}, {"Guacamole", "Sides"}, {"Quesadilla", "Street Food"}},
	"Chinese":       {{"Kung Pao Chicken", "Wok"}, {"Fried Rice", "Rice"}, {"Dumplings", "Sides"}, {"Mapo Tofu", "Wok"}},
	"Thai":          {{"Pad Thai", "Noodles"}, {"Green Curry", "Curry"}, {"Tom Yum Soup", "Soups"}, {"Mango Sticky Rice", "Desserts"}},
	"Greek":         {{"Gyros", "Street Food"}, {"Greek Salad", "Salads"}, {"Moussaka", "Mains"}, {"Baklava", "Desserts"}},
	"French":        {{"Coq au Vin", "Mains"}, {"Beef Bourguignon", "Mains"}, {"Ratatouille", "Mains"}, {"Crème Brûlée", "Desserts"}},
	"Mediterranean": {{"Falafel", "Street Food"}, {"Hummus", "Sides"}, {"Tabbouleh", "Salads"}, {"Grilled Halloumi", "Grill"}},
}

// MenuItemFactory hands out menu items with sequential ids across restaurants.
type MenuItemFactory struct {
	fake   faker.Faker
	nextID int
}

func NewMenuItemFactory(fake faker.Faker) *MenuItemFactory {
	return &MenuItemFactory{fake: fake, nextID: 1}
}

// CreateMenuItem returns a dish matching the restaurant's cuisine, linked to it
// by id.
func (mf *MenuItemFactory) CreateMenuItem(restaurant models.Restaurant) models.MenuItem {
	d := mf.randomDish(restaurant.Cuisine)
	item := models.MenuItem{
		ID:           mf.nextID,
		RestaurantID: restaurant.ID,
		Restaurant:   restaurant.Name,
		Name:         d.name,
		Price:        mf.fake.Float64(2, 5, 30),
		Category:     d.category,
		Image:        fmt.Sprintf("https://picsum.photos/seed/item-%d/300/200", mf.nextID),
		Rating:       mf.fake.Float64(1, 35, 50) / 10,
	}
	mf.nextID++
	return item
}

func (mf *MenuItemFactory) randomDish(cuisine string) dish {
	dishes, ok := dishesByCuisine[cuisine]
	if !ok {
		return dish{name: "Special of the Day", category: "Specials"}
	}
	return dishes[mf.fake.IntBetween(0, len(dishes)-1)]
}
