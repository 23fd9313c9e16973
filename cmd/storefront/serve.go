// cmd/storefront/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/adapters/in/http/middleware"
	"storefront/internal/infra/telemetry"
	"storefront/internal/platform/di"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// atomicHandler は実行中にハンドラを差し替える。
type atomicHandler struct {
	v atomic.Value // http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	h := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	h.v.Store(initial)
	return h
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.v.Load().(http.Handler).ServeHTTP(w, r)
}

func healthOnly(allowedOrigin string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return middleware.CORS(allowedOrigin)(mux)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.Named("boot")

	shutdownTracer, err := telemetry.InitTracer(parent, "storefront", version, cfg.OTLPEndpoint, logger)
	if err != nil {
		log.Warn("tracer init failed; continuing without tracing", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	// listen を先に始め、重い DI は後から差し替える
	switcher := newAtomicHandler(healthOnly(cfg.AllowedOrigin))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           switcher,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var holder atomic.Pointer[di.Container]
	shuttingDown := make(chan struct{})
	serveErr := make(chan error, 1)

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	initDone := make(chan struct{})
	go func() {
		defer close(initDone)
		initCtx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()

		c, err := di.NewContainer(initCtx, cfg, logger)
		if err != nil {
			log.Error("di init failed; serving /healthz only", zap.Error(err))
			return
		}

		select {
		case <-shuttingDown:
			_ = c.Close()
			return
		default:
		}

		holder.Store(c)
		switcher.Store(c.Handler)
		log.Info("handler switched to storefront router")
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	var runErr error
	select {
	case sig := <-sigs:
		log.Info("received signal; shutting down", zap.String("signal", sig.String()))
	case err, ok := <-serveErr:
		if ok {
			runErr = err
		}
	}
	close(shuttingDown)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown error", zap.Error(err))
	}

	select {
	case <-initDone:
	case <-shutdownCtx.Done():
	}
	if c := holder.Load(); c != nil {
		if err := c.Close(); err != nil {
			log.Warn("container close error", zap.Error(err))
		}
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("tracer shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
	return runErr
}
