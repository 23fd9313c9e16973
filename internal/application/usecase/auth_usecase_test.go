package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/application/state"
	identitydom "storefront/internal/domain/identity"
)

func newAuthHarness() (*AuthUsecase, *fakeProvider, *fakeSession, *state.Store) {
	store := state.NewStore()
	provider := newFakeProvider()
	session := &fakeSession{store: store}
	return NewAuthUsecase(provider, session, session, store, nil), provider, session, store
}

func TestSignUpThenSignIn(t *testing.T) {
	uc, _, session, store := newAuthHarness()
	ctx := context.Background()

	u, err := uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.DisplayName)
	assert.Equal(t, state.StatusFulfilled, store.Auth.Snapshot().Status)

	session.favorites = []string{"p9"}
	u, err = uc.SignIn(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p9"}, u.Favorites, "merged by the session")
	assert.Len(t, session.published, 2)
}

func TestSignIn_ValidationBeforeProvider(t *testing.T) {
	uc, _, session, store := newAuthHarness()

	_, err := uc.SignIn(context.Background(), "bad", "secret1")
	assert.ErrorIs(t, err, identitydom.ErrInvalidCredentials)
	assert.Empty(t, session.published)
	assert.Equal(t, state.StatusRejected, store.Auth.Snapshot().Status)
}

func TestSignIn_ProviderRejects(t *testing.T) {
	uc, _, _, store := newAuthHarness()

	_, err := uc.SignIn(context.Background(), "nobody@example.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "INVALID_LOGIN_CREDENTIALS", store.Auth.Snapshot().ErrorMessage())
	assert.Nil(t, store.Auth.User())
}

func TestSignOut(t *testing.T) {
	uc, provider, session, store := newAuthHarness()
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)

	require.NoError(t, uc.SignOut(ctx))
	assert.Nil(t, store.Auth.User())
	assert.Equal(t, []string{"uid-1"}, provider.signOuts)
	assert.Nil(t, session.published[len(session.published)-1])
}

func TestSignOut_RevokeFailureStillClearsIdentity(t *testing.T) {
	uc, provider, session, store := newAuthHarness()
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)
	provider.signOutErr = errors.New("network down")

	require.NoError(t, uc.SignOut(ctx))
	assert.Nil(t, store.Auth.User())
	assert.Equal(t, state.StatusFulfilled, store.Auth.Snapshot().Status)
	require.NotEmpty(t, session.published)
	assert.Nil(t, session.published[len(session.published)-1])
}

func TestSignOut_ProviderUnavailable(t *testing.T) {
	uc, provider, session, store := newAuthHarness()
	store.Auth.SetUser(&identitydom.Identity{UID: "uid-1", Email: "a@b.c"})
	provider.signOutErr = fmt.Errorf("%w: identity provider", ErrUnavailable)

	require.NoError(t, uc.SignOut(context.Background()))
	assert.Nil(t, store.Auth.User())
	assert.Len(t, session.published, 1)
}

func TestResumeSession(t *testing.T) {
	uc, provider, _, store := newAuthHarness()
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)
	provider.tokens["tok"] = "a@example.com"

	u, err := uc.ResumeSession(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", u.UID)
	assert.Equal(t, "uid-1", store.Auth.User().UID)

	_, err = uc.ResumeSession(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = uc.ResumeSession(ctx, "forged")
	assert.Error(t, err)
}

func TestUpdateProfile_KeepsFavorites(t *testing.T) {
	uc, _, _, store := newAuthHarness()
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)
	_, err = uc.ToggleFavorite(ctx, "p1")
	require.NoError(t, err)

	u, err := uc.UpdateProfile(ctx, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.DisplayName)
	assert.Equal(t, []string{"p1"}, u.Favorites)
	assert.Equal(t, "Alicia", store.Auth.User().DisplayName)
}

func TestToggleFavorite(t *testing.T) {
	uc, _, _, store := newAuthHarness()
	ctx := context.Background()

	_, err := uc.ToggleFavorite(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = uc.SignUp(ctx, "a@example.com", "secret1", "Alice")
	require.NoError(t, err)

	u, err := uc.ToggleFavorite(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, u.Favorites)

	u, err = uc.ToggleFavorite(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, u.Favorites)
	assert.Empty(t, store.Auth.User().Favorites)
}
