package catalog

import "github.com/chrisdamba/foodstore/internal/models"

var defaultRestaurants = []models.Restaurant{
	{ID: 1, Name: "Pizza Palace", Cuisine: "Italian", Rating: 4.5, DeliveryTime: "30-40 min", Image: "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400&h=300&fit=crop"},
	{ID: 2, Name: "Burger House", Cuisine: "American", Rating: 4.3, DeliveryTime: "25-35 min", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&h=300&fit=crop"},
	{ID: 3, Name: "Sushi Express", Cuisine: "Japanese", Rating: 4.7, DeliveryTime: "40-50 min", Image: "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=400&h=300&fit=crop"},
}

var defaultItems = []models.MenuItem{
	{ID: 1, RestaurantID: 1, Name: "Margherita Pizza", Price: 12.99, Category: "Pizza", Rating: 4.6, Image: "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?w=300&h=200&fit=crop"},
	{ID: 2, RestaurantID: 1, Name: "Pepperoni Pizza", Price: 14.99, Category: "Pizza", Rating: 4.7, Image: "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=300&h=200&fit=crop"},
	{ID: 3, RestaurantID: 2, Name: "Classic Burger", Price: 9.99, Category: "Burgers", Rating: 4.4, Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=300&h=200&fit=crop"},
	{ID: 4, RestaurantID: 2, Name: "Cheese Burger", Price: 10.99, Category: "Burgers", Rating: 4.5, Image: "https://images.unsplash.com/photo-1550547660-d9450f859349?w=300&h=200&fit=crop"},
	{ID: 5, RestaurantID: 3, Name: "California Roll", Price: 8.99, Category: "Sushi", Rating: 4.8, Image: "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=300&h=200&fit=crop"},
	{ID: 6, RestaurantID: 3, Name: "Salmon Nigiri", Price: 11.99, Category: "Sushi", Rating: 4.9, Image: "https://images.unsplash.com/photo-1617196034796-73dfa7b1fd56?w=300&h=200&fit=crop"},
	{ID: 7, RestaurantID: 1, Name: "Veggie Pizza", Price: 11.99, Category: "Pizza", Rating: 4.3, Image: "https://images.unsplash.com/photo-1571997478779-2adcbbe9ab2f?w=300&h=200&fit=crop"},
	{ID: 8, RestaurantID: 2, Name: "BBQ Burger", Price: 12.99, Category: "Burgers", Rating: 4.6, Image: "https://images.unsplash.com/photo-1553979459-d2229ba7433b?w=300&h=200&fit=crop"},
}

// Default returns the built-in catalog of three restaurants and eight items.
func Default() *Catalog {
	c, err := New(defaultRestaurants, defaultItems)
	if err != nil {
		panic("catalog: built-in data is inconsistent: " + err.Error())
	}
	return c
}

// DefaultData returns copies of the built-in records, for seeding.
func DefaultData() ([]models.Restaurant, []models.MenuItem) {
	restaurants := make([]models.Restaurant, len(defaultRestaurants))
	copy(restaurants, defaultRestaurants)
	items := make([]models.MenuItem, len(defaultItems))
	copy(items, defaultItems)
	return restaurants, items
}
