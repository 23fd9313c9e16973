// internal/adapters/in/http/middleware/identity.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	identitydom "storefront/internal/domain/identity"
)

// context key は独自型を使用（衝突回避）
type ctxKey struct{ name string }

var ctxKeyIdentity = ctxKey{name: "identity"}

// CurrentIdentity returns the signed-in identity of this process (nil when signed out).
type CurrentIdentity func() *identitydom.Identity

// RequireIdentity rejects the request with 401 when nobody is signed in,
// otherwise puts the identity into the request context.
func RequireIdentity(current CurrentIdentity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var u *identitydom.Identity
			if current != nil {
				u = current()
			}
			if u == nil || strings.TrimSpace(u.UID) == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"No user is signed in"}`))
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyIdentity, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity stored by RequireIdentity.
func IdentityFrom(ctx context.Context) (*identitydom.Identity, bool) {
	u, ok := ctx.Value(ctxKeyIdentity).(*identitydom.Identity)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

// UIDFrom is IdentityFrom(ctx).UID.
func UIDFrom(ctx context.Context) (string, bool) {
	u, ok := IdentityFrom(ctx)
	if !ok {
		return "", false
	}
	return u.UID, true
}
