// Package entity contains the core business objects of the storefront,
// each mirroring a resource owned by the remote EcoMart backend.
package entity

import "time"

// UserType enumerates the account kinds the backend issues.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeSeller   UserType = "seller"
	UserTypeAdmin    UserType = "admin"
)

// User mirrors the backend's profile resource. The storefront treats it
// as a cache, refreshed after login, registration and profile updates.
type User struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	UserType     UserType `json:"user_type"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	BusinessName string   `json:"business_name,omitempty"`
	Avatar       string   `json:"avatar,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsSeller reports whether this account may use the seller surface.
func (u *User) IsSeller() bool {
	return u != nil && u.UserType == UserTypeSeller
}
