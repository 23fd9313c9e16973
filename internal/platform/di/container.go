// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	storefronthttp "storefront/internal/adapters/in/http/storefront"
	"storefront/internal/adapters/out/firebaseauth"
	"storefront/internal/adapters/out/gcs"
	"storefront/internal/adapters/out/mail"
	"storefront/internal/application/session"
	"storefront/internal/application/state"
	usecase "storefront/internal/application/usecase"
	identitydom "storefront/internal/domain/identity"
	appcfg "storefront/internal/infra/config"
	"storefront/internal/platform/di/shared"
)

const storeName = "Storefront"

// Container は main.go から使う依存オブジェクトの束。
type Container struct {
	Infra *shared.Infra

	Store    *state.Store
	Notifier *identitydom.Notifier
	Session  *session.Propagator

	Products *usecase.ProductUsecase
	Carts    *usecase.CartUsecase
	Orders   *usecase.OrderUsecase
	Auth     *usecase.AuthUsecase

	Handler http.Handler

	log *zap.Logger
}

// NewContainer builds every dependency and starts the session propagator.
// Close releases what was built.
func NewContainer(ctx context.Context, cfg *appcfg.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("di")

	inf, err := shared.NewInfra(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos, err := newRepositories(inf)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}

	c := &Container{
		Infra:    inf,
		Store:    state.NewStore(),
		Notifier: identitydom.NewNotifier(),
		log:      log,
	}

	// usecase 側で nil 判定するため、未設定時は interface の nil を渡す
	var images usecase.ImageStore
	if inf.GCS != nil {
		images = gcs.NewProductImageRepositoryGCS(inf.GCS, cfg.ProductImageBucket, logger)
	}

	var mailer usecase.Mailer
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" {
		client := mail.NewSendGridClient(cfg.SendGridAPIKey, storeName, logger)
		mailer = mail.NewOrderMailer(client, cfg.SendGridFrom, storeName)
	}

	var provider identitydom.Provider = unavailableProvider{}
	if inf.FirebaseAuth != nil {
		if inf.WebAPIKey == "" {
			log.Warn("web api key is empty; password sign-in will be rejected")
		}
		provider = firebaseauth.NewProvider(inf.FirebaseAuth, inf.WebAPIKey, cfg.RequestTimeout)
	} else {
		log.Warn("identity provider unavailable")
	}

	c.Products = usecase.NewProductUsecase(repos.products, c.Store, images, logger)
	c.Carts = usecase.NewCartUsecase(repos.carts, c.Store, c.Products, logger)
	c.Orders = usecase.NewOrderUsecase(repos.orders, c.Carts, c.Store, mailer, logger)

	c.Session = session.NewPropagator(c.Notifier, inf.Local, c.Store, c.Carts, logger)
	c.Auth = usecase.NewAuthUsecase(provider, c.Notifier, c.Session, c.Store, logger)

	if err := c.Session.Start(ctx); err != nil {
		_ = inf.Close()
		return nil, fmt.Errorf("di: start session: %w", err)
	}

	c.Handler = storefronthttp.NewRouter(storefronthttp.Deps{
		Store:          c.Store,
		Products:       c.Products,
		Carts:          c.Carts,
		Orders:         c.Orders,
		Auth:           c.Auth,
		Logger:         logger,
		AllowedOrigin:  cfg.AllowedOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})

	log.Info("container ready",
		zap.String("remoteStore", string(cfg.RemoteStore)),
		zap.Bool("images", images != nil),
		zap.Bool("mail", mailer != nil),
		zap.Bool("identity", inf.FirebaseAuth != nil),
	)
	return c, nil
}

// Close stops the session propagator (waiting for in-flight cart fetches), then releases clients.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Session != nil {
		c.Session.Stop()
	}
	return c.Infra.Close()
}
