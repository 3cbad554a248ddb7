package models

// User is the signed-in shopper. It is synthesized from the login or
// registration form and never checked against a credential store.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether u carries no identity at all.
func (u User) IsZero() bool {
	return u.Name == "" && u.Email == ""
}
