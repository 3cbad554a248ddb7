// Package session holds the storefront's single source of truth: the signed-in
// user, the cart and the catalog filter. Views read from a Store and send it
// intents; totals are only ever computed here.
package session

import (
	"encoding/json"
	"errors"

	"github.com/asaskevich/EventBus"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/storage"
	"go.uber.org/zap"
)

// Keys of the persisted state layout.
const (
	KeyUser = "user"
	KeyCart = "cart"
)

// TopicChanged is published with a Change after every mutation.
const TopicChanged = "session:changed"

const (
	ChangeLogin      = "login"
	ChangeLogout     = "logout"
	ChangeCartAdd    = "cart_add"
	ChangeCartUpdate = "cart_update"
	ChangeCartRemove = "cart_remove"
	ChangeCartClear  = "cart_clear"
	ChangeFilter     = "filter"
)

// Change describes one mutation together with the derived values after it.
type Change struct {
	Kind      string      `json:"kind"`
	ItemID    int         `json:"itemId,omitempty"`
	Quantity  int         `json:"quantity,omitempty"`
	CartCount int         `json:"cartCount"`
	CartTotal float64     `json:"cartTotal"`
	LoggedIn  bool        `json:"loggedIn"`
	User      models.User `json:"user"`
}

// Store is not safe for concurrent use; callers serialize intents.
type Store struct {
	kv  storage.KeyValue
	bus EventBus.Bus

	user             *models.User
	cart             []models.CartLine
	searchQuery      string
	selectedCategory string
}

// New returns an empty store writing through to kv. A nil bus gets a private one.
func New(kv storage.KeyValue, bus EventBus.Bus) *Store {
	if bus == nil {
		bus = EventBus.New()
	}
	return &Store{
		kv:               kv,
		bus:              bus,
		cart:             []models.CartLine{},
		selectedCategory: models.CategoryAll,
	}
}

// Open returns a store rehydrated from kv.
func Open(kv storage.KeyValue, bus EventBus.Bus) *Store {
	s := New(kv, bus)
	s.Rehydrate()
	return s
}

// Bus exposes the event bus changes are published on.
func (s *Store) Bus() EventBus.Bus {
	return s.bus
}

// Subscribe registers fn to receive every Change.
func (s *Store) Subscribe(fn func(Change)) error {
	return s.bus.Subscribe(TopicChanged, fn)
}

// Rehydrate replaces user and cart with whatever well-formed values are
// persisted. Anything absent or malformed leaves the default in place.
func (s *Store) Rehydrate() {
	if user, ok := s.loadUser(); ok {
		s.user = &user
	}
	if cart, ok := s.loadCart(); ok {
		s.cart = cart
	}
}

func (s *Store) loadUser() (models.User, bool) {
	payload, ok := s.read(KeyUser)
	if !ok {
		return models.User{}, false
	}
	var user *models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		zap.S().Warnw("discarding malformed persisted user", "error", err)
		return models.User{}, false
	}
	if user == nil || user.IsZero() {
		return models.User{}, false
	}
	return *user, true
}

func (s *Store) loadCart() ([]models.CartLine, bool) {
	payload, ok := s.read(KeyCart)
	if !ok {
		return nil, false
	}
	var cart []models.CartLine
	if err := json.Unmarshal(payload, &cart); err != nil {
		zap.S().Warnw("discarding malformed persisted cart", "error", err)
		return nil, false
	}
	if err := checkCart(cart); err != nil {
		zap.S().Warnw("discarding persisted cart", "error", err)
		return nil, false
	}
	if cart == nil {
		cart = []models.CartLine{}
	}
	return cart, true
}

func checkCart(cart []models.CartLine) error {
	seen := make(map[int]bool, len(cart))
	for _, line := range cart {
		if line.Quantity < 1 {
			return errors.New("cart line with quantity below 1")
		}
		if line.Price < 0 {
			return errors.New("cart line with negative price")
		}
		if seen[line.ID] {
			return errors.New("cart holds the same item twice")
		}
		seen[line.ID] = true
	}
	return nil
}

func (s *Store) read(key string) ([]byte, bool) {
	payload, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			zap.S().Warnw("reading persisted state failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// User returns the signed-in user, if any.
func (s *Store) User() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsLoggedIn() bool {
	return s.user != nil
}

// Login replaces the current user unconditionally and persists it.
func (s *Store) Login(user models.User) {
	u := user
	s.user = &u
	s.write(KeyUser, u)
	s.publish(Change{Kind: ChangeLogin})
}

// Logout forgets the user. The cart is left as it is.
func (s *Store) Logout() {
	s.user = nil
	if err := s.kv.Delete(KeyUser); err != nil {
		zap.S().Warnw("removing persisted user failed", "error", err)
	}
	s.publish(Change{Kind: ChangeLogout})
}

// AddToCart bumps the quantity of the item's line, creating it at 1.
func (s *Store) AddToCart(item models.MenuItem) {
	quantity := 1
	if i := s.indexOf(item.ID); i >= 0 {
		s.cart[i].Quantity++
		quantity = s.cart[i].Quantity
	} else {
		s.cart = append(s.cart, models.CartLine{MenuItem: item, Quantity: 1})
	}
	s.persistCart()
	s.publish(Change{Kind: ChangeCartAdd, ItemID: item.ID, Quantity: quantity})
}

// UpdateQuantity sets the line's quantity; zero or less removes it. Unknown
// ids are ignored. No upper bound is enforced here.
func (s *Store) UpdateQuantity(id, quantity int) {
	if quantity <= 0 {
		s.removeLine(id)
		s.persistCart()
		s.publish(Change{Kind: ChangeCartRemove, ItemID: id})
		return
	}
	if i := s.indexOf(id); i >= 0 {
		s.cart[i].Quantity = quantity
	}
	s.persistCart()
	s.publish(Change{Kind: ChangeCartUpdate, ItemID: id, Quantity: quantity})
}

func (s *Store) RemoveFromCart(id int) {
	s.removeLine(id)
	s.persistCart()
	s.publish(Change{Kind: ChangeCartRemove, ItemID: id})
}

func (s *Store) ClearCart() {
	s.cart = []models.CartLine{}
	s.persistCart()
	s.publish(Change{Kind: ChangeCartClear})
}

// Cart returns a copy of the lines in insertion order.
func (s *Store) Cart() []models.CartLine {
	out := make([]models.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// Line returns the cart line for id.
func (s *Store) Line(id int) (models.CartLine, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.cart[i], true
	}
	return models.CartLine{}, false
}

// CartTotal is Σ price×quantity over the current lines.
func (s *Store) CartTotal() float64 {
	var total float64
	for _, line := range s.cart {
		total += line.LineTotal()
	}
	return total
}

// CartCount is Σ quantity over the current lines.
func (s *Store) CartCount() int {
	var count int
	for _, line := range s.cart {
		count += line.Quantity
	}
	return count
}

func (s *Store) SearchQuery() string {
	return s.searchQuery
}

func (s *Store) SetSearchQuery(query string) {
	s.searchQuery = query
	s.publish(Change{Kind: ChangeFilter})
}

func (s *Store) SelectedCategory() string {
	return s.selectedCategory
}

func (s *Store) SetSelectedCategory(category string) {
	s.selectedCategory = category
	s.publish(Change{Kind: ChangeFilter})
}

func (s *Store) indexOf(id int) int {
	for i, line := range s.cart {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLine(id int) {
	if i := s.indexOf(id); i >= 0 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	}
}

func (s *Store) persistCart() {
	s.write(KeyCart, s.cart)
}

func (s *Store) write(key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		zap.S().Errorw("encoding state failed", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(key, payload); err != nil {
		zap.S().Warnw("persisting state failed", "key", key, "error", err)
	}
}

func (s *Store) publish(change Change) {
	change.CartCount = s.CartCount()
	change.CartTotal = s.CartTotal()
	if s.user != nil {
		change.LoggedIn = true
		change.User = *s.user
	}
	s.bus.Publish(TopicChanged, change)
}
