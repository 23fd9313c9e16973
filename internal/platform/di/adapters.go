// internal/platform/di/adapters.go
package di

import (
	"context"
	"fmt"

	"storefront/internal/adapters/out/firestore"
	"storefront/internal/adapters/out/rtdb"
	usecase "storefront/internal/application/usecase"
	cartdom "storefront/internal/domain/cart"
	identitydom "storefront/internal/domain/identity"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	appcfg "storefront/internal/infra/config"
	"storefront/internal/platform/di/shared"
)

// repositories is the remote store selected by REMOTE_STORE.
type repositories struct {
	products productdom.Repository
	carts    cartdom.Repository
	orders   orderdom.Repository
}

func newRepositories(inf *shared.Infra) (repositories, error) {
	switch inf.Config.RemoteStore {
	case appcfg.RemoteStoreRTDB:
		tree := rtdb.NewFirebaseTree(inf.RTDB)
		return treeRepositories(tree), nil
	case appcfg.RemoteStoreFirestore:
		return repositories{
			products: firestore.NewProductRepositoryFS(inf.Firestore),
			carts:    firestore.NewCartRepositoryFS(inf.Firestore),
			orders:   firestore.NewOrderRepositoryFS(inf.Firestore),
		}, nil
	case appcfg.RemoteStoreMemory:
		return treeRepositories(rtdb.NewMemoryTree()), nil
	default:
		return repositories{}, fmt.Errorf("di: unknown remote store %q", inf.Config.RemoteStore)
	}
}

func treeRepositories(tree rtdb.Tree) repositories {
	return repositories{
		products: rtdb.NewProductRepositoryDB(tree),
		carts:    rtdb.NewCartRepositoryDB(tree),
		orders:   rtdb.NewOrderRepositoryDB(tree),
	}
}

// unavailableProvider is used when Firebase Auth could not be initialized.
type unavailableProvider struct{}

func (unavailableProvider) err() error {
	return fmt.Errorf("%w: identity provider", usecase.ErrUnavailable)
}

func (p unavailableProvider) SignIn(context.Context, string, string) (*identitydom.Identity, error) {
	return nil, p.err()
}

func (p unavailableProvider) SignUp(context.Context, string, string, string) (*identitydom.Identity, error) {
	return nil, p.err()
}

func (p unavailableProvider) SignOut(context.Context, string) error { return p.err() }

func (p unavailableProvider) UpdateProfile(context.Context, string, string) (*identitydom.Identity, error) {
	return nil, p.err()
}

func (p unavailableProvider) VerifyIDToken(context.Context, string) (*identitydom.Identity, error) {
	return nil, p.err()
}
