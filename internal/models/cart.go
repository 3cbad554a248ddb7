package models

// CartLine is a copy of a menu item plus the quantity ordered. The embedded
// item is flattened when encoded, so a persisted line reads
// {"id":1,"name":"Margherita Pizza",...,"quantity":2}.
type CartLine struct {
	MenuItem
	Quantity int `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
