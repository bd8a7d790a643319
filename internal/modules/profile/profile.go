package profile

import (
	"context"
	"time"
)

// Profile is the dealer account as the dealer API returns it.
type Profile struct {
	ID                  string    `json:"_id"`
	ShopName            string    `json:"shopName"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	PrimaryContactEmail string    `json:"primaryContactEmail,omitempty"`
	Street              string    `json:"street,omitempty"`
	City                string    `json:"city,omitempty"`
	State               string    `json:"state,omitempty"`
	ZipCode             string    `json:"zipCode,omitempty"`
	Country             string    `json:"country,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// API is the slice of the dealer API the profile service depends on.
type API interface {
	// Profile fetches the authenticated dealer's account.
	Profile(ctx context.Context) (*Profile, error)
	// UpdateProfile saves edits and returns the updated account.
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)
}
