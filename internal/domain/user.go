package domain

import (
	"context"
	"time"
)

type ContextKey string

const UserContextKey ContextKey = "user"

const RoleAdmin = "admin"

// User is the authenticated caller, built from token claims.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Profile is a customer record (table profiles).
type Profile struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Address struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
}

type CustomerRepository interface {
	List(ctx context.Context, limit, offset int) ([]Profile, int64, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetAddresses(ctx context.Context, userID string) ([]Address, error)
	UpdateProfile(ctx context.Context, id, fullName, phone string) (*Profile, error)
	// DeleteAuthUser removes the auth account; profiles cascade from it.
	DeleteAuthUser(ctx context.Context, id string) error
	DeleteProfile(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
