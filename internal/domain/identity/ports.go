// internal/domain/identity/ports.go
package identity

import "context"

// Provider is the external identity service.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
	// SignOut revokes the sessions of uid.
	SignOut(ctx context.Context, uid string) error
	UpdateProfile(ctx context.Context, uid, displayName string) (*Identity, error)
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
}

// Listener receives identity changes. nil means signed out.
type Listener func(u *Identity)

// Source emits identity changes.
// Subscribe returns the matching unsubscribe function.
type Source interface {
	Subscribe(l Listener) (unsubscribe func())
}

// LocalStore is durable key-value storage local to this process (survives restarts).
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
