package models

import "time"

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// CurrentUser is the public projection of an authenticated user.
// It never carries the password hash.
type CurrentUser struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// Public returns the projection attached to authenticated requests.
func (u User) Public() CurrentUser {
	return CurrentUser{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmailAddress: u.EmailAddress,
	}
}

// NewUser is a registration payload after the password has been hashed.
type NewUser struct {
	FirstName    string
	LastName     string
	EmailAddress string
	PasswordHash string
}
