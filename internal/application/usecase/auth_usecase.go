// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storefront/internal/application/state"
	identitydom "storefront/internal/domain/identity"
)

// IdentityPublisher announces identity changes (sign-in / sign-out).
// identity.Notifier implements it.
type IdentityPublisher interface {
	Publish(u *identitydom.Identity)
}

// ProfileRecorder stores a changed profile of the same identity
// (process state + durable local record) without re-running sign-in propagation.
type ProfileRecorder interface {
	Remember(ctx context.Context, u *identitydom.Identity) error
}

// AuthUsecase talks to the identity provider and announces the result.
// The identity itself reaches the auth slice through the session propagator.
type AuthUsecase struct {
	provider  identitydom.Provider
	publisher IdentityPublisher
	recorder  ProfileRecorder
	store     *state.Store
	log       *zap.Logger
}

func NewAuthUsecase(
	provider identitydom.Provider,
	publisher IdentityPublisher,
	recorder ProfileRecorder,
	store *state.Store,
	logger *zap.Logger,
) *AuthUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthUsecase{
		provider:  provider,
		publisher: publisher,
		recorder:  recorder,
		store:     store,
		log:       logger.Named("auth_uc"),
	}
}

func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (*identitydom.Identity, error) {
	uc.store.Auth.Begin()
	if err := identitydom.ValidateCredentials(email, password); err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to sign in"))
		return nil, err
	}

	u, err := uc.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		uc.log.Info("sign in rejected", zap.Error(err))
		uc.store.Auth.Reject(errMessage(err, "Failed to sign in"))
		return nil, err
	}

	return uc.announce(u), nil
}

func (uc *AuthUsecase) SignUp(ctx context.Context, email, password, displayName string) (*identitydom.Identity, error) {
	uc.store.Auth.Begin()
	err := identitydom.ValidateCredentials(email, password)
	if err == nil {
		err = identitydom.ValidateDisplayName(displayName)
	}
	if err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to sign up"))
		return nil, err
	}

	u, err := uc.provider.SignUp(ctx, strings.TrimSpace(email), password, strings.TrimSpace(displayName))
	if err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to sign up"))
		return nil, err
	}

	uc.log.Info("signed up", zap.String("uid", maskUID(u.UID)))
	return uc.announce(u), nil
}

// SignOut announces "no identity" after a best-effort revoke of the provider session.
// A failed revoke is logged only; the local session is cleared regardless.
// The cart slice is left as last fetched.
func (uc *AuthUsecase) SignOut(ctx context.Context) error {
	uc.store.Auth.Begin()
	if u := uc.store.Auth.User(); u != nil {
		if err := uc.provider.SignOut(ctx, u.UID); err != nil {
			uc.log.Warn("revoke failed; signing out locally",
				zap.String("uid", maskUID(u.UID)),
				zap.Error(err),
			)
		}
	}

	uc.publisher.Publish(nil)
	uc.store.Auth.Fulfil()
	return nil
}

// ResumeSession signs in from a provider-issued ID token (persisted session of a client).
func (uc *AuthUsecase) ResumeSession(ctx context.Context, idToken string) (*identitydom.Identity, error) {
	tok := strings.TrimSpace(idToken)
	if tok == "" {
		return nil, ErrInvalidArgument
	}

	uc.store.Auth.Begin()
	u, err := uc.provider.VerifyIDToken(ctx, tok)
	if err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to resume session"))
		return nil, err
	}
	return uc.announce(u), nil
}

// UpdateProfile changes displayName. favorites are kept.
func (uc *AuthUsecase) UpdateProfile(ctx context.Context, displayName string) (*identitydom.Identity, error) {
	uc.store.Auth.Begin()
	cur := uc.store.Auth.User()
	if cur == nil {
		uc.store.Auth.Reject(ErrNotSignedIn.Error())
		return nil, ErrNotSignedIn
	}
	if err := identitydom.ValidateDisplayName(displayName); err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to update profile"))
		return nil, err
	}

	updated, err := uc.provider.UpdateProfile(ctx, cur.UID, strings.TrimSpace(displayName))
	if err == nil {
		updated = updated.WithFavorites(cur.Favorites)
		err = uc.recorder.Remember(ctx, updated)
	}
	if err != nil {
		uc.store.Auth.Reject(errMessage(err, "Failed to update profile"))
		return nil, err
	}

	uc.store.Auth.Fulfil()
	return updated, nil
}

// ToggleFavorite adds productID to favorites, or removes it when already there.
func (uc *AuthUsecase) ToggleFavorite(ctx context.Context, productID string) (*identitydom.Identity, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return nil, ErrInvalidArgument
	}
	cur := uc.store.Auth.User()
	if cur == nil {
		return nil, ErrNotSignedIn
	}

	next := cur.ToggleFavorite(pid)
	if err := uc.recorder.Remember(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// announce publishes u and returns the identity as merged by the propagator.
func (uc *AuthUsecase) announce(u *identitydom.Identity) *identitydom.Identity {
	uc.publisher.Publish(u)
	uc.store.Auth.Fulfil()
	if merged := uc.store.Auth.User(); merged != nil && merged.UID == u.UID {
		return merged
	}
	return u.Clone()
}
