// internal/adapters/in/http/storefront/router.go
package storefront

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"storefront/internal/adapters/in/http/middleware"
	storefrontHandler "storefront/internal/adapters/in/http/storefront/handler"
	"storefront/internal/application/state"
	usecase "storefront/internal/application/usecase"
)

const defaultRequestTimeout = 30 * time.Second

// Deps is the storefront handler set.
type Deps struct {
	Store    *state.Store
	Products *usecase.ProductUsecase
	Carts    *usecase.CartUsecase
	Orders   *usecase.OrderUsecase
	Auth     *usecase.AuthUsecase

	Logger         *zap.Logger
	AllowedOrigin  string
	RequestTimeout time.Duration
}

// NewRouter builds the /api surface plus /healthz, wrapped with otelhttp.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	stateH := storefrontHandler.NewStateHandler(deps.Store)
	productH := storefrontHandler.NewProductHandler(deps.Products, logger)
	cartH := storefrontHandler.NewCartHandler(deps.Carts, logger)
	orderH := storefrontHandler.NewOrderHandler(deps.Orders, deps.Store, logger)
	authH := storefrontHandler.NewAuthHandler(deps.Auth, logger)

	signedIn := middleware.RequireIdentity(deps.Store.Auth.User)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(deps.AllowedOrigin))
	r.Use(chimw.Timeout(timeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", stateH.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", authH.SignIn)
			r.Post("/signup", authH.SignUp)
			r.Post("/signout", authH.SignOut)
			r.Post("/session", authH.Session)
			r.With(signedIn).Put("/profile", authH.UpdateProfile)
			r.With(signedIn).Post("/favorites/{productId}", authH.ToggleFavorite)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productH.List)
			r.Post("/fetch", productH.Fetch)
			r.Post("/seed", productH.Seed)
			r.Get("/categories", productH.Categories)
			r.With(signedIn).Get("/mine", productH.Mine)
			r.With(signedIn).Post("/", productH.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productH.Get)
				r.Post("/like", productH.Like)
				r.Post("/dislike", productH.Dislike)

				r.Group(func(r chi.Router) {
					r.Use(signedIn)
					r.Put("/", productH.Update)
					r.Delete("/", productH.Delete)
					r.Put("/stock", productH.UpdateStock)
					r.Post("/image", productH.UploadImage)
				})
			})
		})

		r.With(signedIn).Get("/wishlist", productH.Wishlist)

		r.Route("/cart", func(r chi.Router) {
			r.Use(signedIn)
			r.Get("/", cartH.Get)
			r.Put("/", cartH.Update)
			r.Delete("/", cartH.Clear)
			r.Post("/fetch", cartH.Fetch)
			r.Post("/items", cartH.AddItem)
			r.Put("/items/{productId}", cartH.SetQuantity)
			r.Delete("/items/{productId}", cartH.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(signedIn)
			r.Get("/", orderH.List)
			r.Post("/fetch", orderH.Fetch)
			r.Put("/{id}/status", orderH.UpdateStatus)
		})

		r.With(signedIn).Post("/checkout", orderH.Checkout)
	})

	return otelhttp.NewHandler(r, "storefront",
		otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/healthz" }),
	)
}
