// Package catalog holds the read-only restaurants and menu items the
// storefront sells.
package catalog

import (
	"fmt"
	"strings"

	"github.com/chrisdamba/foodstore/internal/models"
)

// Catalog is immutable after New; every accessor returns copies.
type Catalog struct {
	restaurants []models.Restaurant
	items       []models.MenuItem

	restaurantIndex map[int]int
	itemIndex       map[int]int
}

// New checks the data and resolves each item's restaurant name from its
// RestaurantID.
func New(restaurants []models.Restaurant, items []models.MenuItem) (*Catalog, error) {
	c := &Catalog{
		restaurants:     make([]models.Restaurant, len(restaurants)),
		items:           make([]models.MenuItem, len(items)),
		restaurantIndex: make(map[int]int, len(restaurants)),
		itemIndex:       make(map[int]int, len(items)),
	}
	copy(c.restaurants, restaurants)
	copy(c.items, items)

	for i, r := range c.restaurants {
		if _, dup := c.restaurantIndex[r.ID]; dup {
			return nil, fmt.Errorf("duplicate restaurant id %d", r.ID)
		}
		c.restaurantIndex[r.ID] = i
	}
	for i := range c.items {
		item := &c.items[i]
		if _, dup := c.itemIndex[item.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %d", item.ID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("menu item %d has negative price %v", item.ID, item.Price)
		}
		ri, ok := c.restaurantIndex[item.RestaurantID]
		if !ok {
			return nil, fmt.Errorf("menu item %d references unknown restaurant %d", item.ID, item.RestaurantID)
		}
		item.Restaurant = c.restaurants[ri].Name
		c.itemIndex[item.ID] = i
	}
	return c, nil
}

func (c *Catalog) Restaurants() []models.Restaurant {
	out := make([]models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Item(id int) (models.MenuItem, bool) {
	i, ok := c.itemIndex[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Restaurant(id int) (models.Restaurant, bool) {
	i, ok := c.restaurantIndex[id]
	if !ok {
		return models.Restaurant{}, false
	}
	return c.restaurants[i], true
}

func (c *Catalog) ItemsByRestaurant(restaurantID int) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	return out
}

// Categories lists "All" followed by every category in order of first
// appearance.
func (c *Catalog) Categories() []string {
	categories := []string{models.CategoryAll}
	seen := map[string]bool{models.CategoryAll: true}
	for _, item := range c.items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories
}

// Filter returns the items whose name contains query, ignoring case, and whose
// category equals category. An empty category or "All" matches everything.
func (c *Catalog) Filter(query, category string) []models.MenuItem {
	needle := strings.ToLower(query)
	out := []models.MenuItem{}
	for _, item := range c.items {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		if category != "" && category != models.CategoryAll && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Featured returns the first n items.
func (c *Catalog) Featured(n int) []models.MenuItem {
	if n < 0 {
		n = 0
	}
	if n > len(c.items) {
		n = len(c.items)
	}
	out := make([]models.MenuItem, n)
	copy(out, c.items[:n])
	return out
}
