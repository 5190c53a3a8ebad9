// cmd/storefront/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	httpin "github.com/apaluca/ReactRetail/internal/adapters/in/http"
	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	appcfg "github.com/apaluca/ReactRetail/internal/infra/config"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
	"github.com/apaluca/ReactRetail/internal/infra/tracing"
	shared "github.com/apaluca/ReactRetail/internal/platform/di/shared"
	storefrontDI "github.com/apaluca/ReactRetail/internal/platform/di/storefront"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
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

// bootHandler serves /healthz until the full router is ready.
func bootHandler(origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", httpin.Healthz)
	return middleware.CORS(origins)(mux)
}

func main() {
	cfg := appcfg.Load()
	log := logging.Init(cfg.LogLevel).WithField("component", "boot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, tracingOn, err := tracing.Init(ctx, "storefront", cfg.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Warn("[boot] tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	} else if tracingOn {
		log.Infof("[boot] tracing enabled endpoint=%s", cfg.OTLPEndpoint)
	}

	switcher := newAtomicHandler(bootHandler(cfg.CORSAllowedOrigins))
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var infraHolder atomic.Pointer[shared.Infra]

	g, gctx := errgroup.WithContext(ctx)

	// Listen immediately (Cloud Run startup requirement).
	g.Go(func() error {
		log.Infof("[boot] listening on :%s (storefront)", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("[boot] shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("[boot] server shutdown error")
		}
		if inf := infraHolder.Swap(nil); inf != nil {
			log.Info("[boot] closing infra resources...")
			_ = inf.Close()
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Warn("[boot] tracing shutdown error")
		}
		return nil
	})

	// Heavy DI init in background; then swap to the full router.
	g.Go(func() error {
		initCtx, cancel := context.WithTimeout(gctx, 2*time.Minute)
		defer cancel()

		infra, err := shared.NewInfra(initCtx, cfg)
		if err != nil {
			log.WithError(err).Error("[boot] shared infra init failed (serving /healthz only)")
			return nil
		}
		infraHolder.Store(infra)

		cont, err := storefrontDI.NewContainer(initCtx, infra)
		if err != nil {
			log.WithError(err).Error("[boot] storefront di init failed (serving /healthz only)")
			return nil
		}
		h, err := storefrontDI.Handler(cont)
		if err != nil {
			log.WithError(err).Error("[boot] router init failed (serving /healthz only)")
			return nil
		}

		if gctx.Err() != nil {
			return nil
		}
		switcher.Store(h)
		log.Info("[boot] handler switched to storefront router")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("[boot] stopped with error")
		os.Exit(1)
	}
	log.Info("[boot] server stopped")
}
