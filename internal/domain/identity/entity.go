// internal/domain/identity/entity.go
package identity

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrInvalidProfile     = errors.New("identity: invalid profile")
	// ErrRejected is returned when the identity service refuses the request
	// (wrong password, unknown or duplicate email, bad token).
	ErrRejected = errors.New("identity: rejected")
)

// MinPasswordLength is the identity provider's own lower bound.
const MinPasswordLength = 6

// Identity is the signed-in user as seen by this process.
//
// NOTE:
// - uid / email / displayName come from the identity provider
// - favorites are owned locally (the provider never supplies them) and survive
//   re-authentication through the durable local record
type Identity struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Favorites   []string `json:"favorites"`
}

func (u *Identity) Clone() *Identity {
	if u == nil {
		return nil
	}
	c := *u
	c.Favorites = append([]string{}, u.Favorites...)
	return &c
}

func (u *Identity) IsFavorite(productID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}

// ToggleFavorite returns a copy with productID added (or removed when already present).
func (u *Identity) ToggleFavorite(productID string) *Identity {
	c := u.Clone()
	if c == nil {
		return nil
	}
	if c.IsFavorite(productID) {
		out := make([]string, 0, len(c.Favorites))
		for _, id := range c.Favorites {
			if id != productID {
				out = append(out, id)
			}
		}
		c.Favorites = out
		return c
	}
	c.Favorites = append(c.Favorites, productID)
	return c
}

// WithFavorites returns a copy carrying favs (never nil).
func (u *Identity) WithFavorites(favs []string) *Identity {
	c := u.Clone()
	if c == nil {
		return nil
	}
	c.Favorites = append([]string{}, favs...)
	return c
}

func ValidateCredentials(email, password string) error {
	e := strings.TrimSpace(email)
	if e == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidCredentials)
	}
	if _, err := mail.ParseAddress(e); err != nil {
		return fmt.Errorf("%w: email is malformed", ErrInvalidCredentials)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidCredentials, MinPasswordLength)
	}
	return nil
}

func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: displayName is required", ErrInvalidProfile)
	}
	return nil
}
