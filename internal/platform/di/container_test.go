package di_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "storefront/internal/infra/config"
	"storefront/internal/platform/di"
)

func memoryConfig(t *testing.T) *appcfg.Config {
	cfg := appcfg.Default()
	cfg.RemoteStore = appcfg.RemoteStoreMemory
	cfg.LocalStorePath = filepath.Join(t.TempDir(), "local.db")
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func TestNewContainer_MemoryStore(t *testing.T) {
	c, err := di.NewContainer(context.Background(), memoryConfig(t), nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()

	items, err := c.Products.InitializeProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 8)

	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Electronics")
}

func TestNewContainer_IdentityUnavailable(t *testing.T) {
	c, err := di.NewContainer(context.Background(), memoryConfig(t), nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Auth.SignIn(context.Background(), "a@example.com", "secret123")
	require.Error(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	rec := httptest.NewRecorder()
	c.Handler.ServeHTTP(rec, req)
	// nobody signed in: sign-out only publishes "no identity"
	assert.Equal(t, http.StatusOK, rec.Code)
}
