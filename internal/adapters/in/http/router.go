// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/handler"
	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	"github.com/apaluca/ReactRetail/internal/application/query"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// RouterDeps collects the usecases and middleware injected from DI.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUsecase
	CartUC    *usecase.CartUsecase
	ReviewUC  *usecase.ReviewUsecase
	CartQuery *query.CartQuery

	UserAuth       *middleware.UserAuthMiddleware
	AllowedOrigins []string

	// Tracing wraps the router with otelhttp spans.
	Tracing bool
}

// NewRouter sets up the REST API under /api and the HTML pages.
func NewRouter(deps RouterDeps) (http.Handler, error) {
	if deps.CatalogUC == nil || deps.CartUC == nil || deps.ReviewUC == nil || deps.CartQuery == nil {
		return nil, errors.New("router: usecases are required")
	}
	if deps.UserAuth == nil {
		return nil, errors.New("router: user auth middleware is required")
	}

	productH := handler.NewProductHandler(deps.CatalogUC, deps.CartUC)
	cartH := handler.NewCartHandler(deps.CartUC, deps.CartQuery)
	reviewH := handler.NewReviewHandler(deps.ReviewUC)
	pageH, err := handler.NewPageHandler(deps.CatalogUC, deps.CartUC, deps.CartQuery)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	// CORS outside Recover so a 500 still carries CORS headers.
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(logging.Component("http")))
	r.Use(middleware.Recover)

	r.Get("/healthz", Healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productH.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productH.Get)
				r.With(deps.UserAuth.Optional).Get("/view", productH.View)
				r.Get("/reviews", reviewH.List)

				r.Group(func(r chi.Router) {
					r.Use(deps.UserAuth.Handler)
					r.Post("/reviews", reviewH.Create)
					r.Delete("/reviews/{reviewId}", reviewH.Delete)
				})
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(deps.UserAuth.Handler)
			r.Get("/", cartH.Get)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.AddItem)
			r.Put("/items/{itemId}", cartH.SetQuantity)
			r.Delete("/items/{itemId}", cartH.RemoveItem)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.UserAuth.Optional)
		r.Get("/products/{id}", pageH.Product)
		r.Post("/products/{id}/cart", pageH.AddToCart)
		r.Get("/cart", pageH.Cart)
	})

	if deps.Tracing {
		return otelhttp.NewHandler(r, "storefront"), nil
	}
	return r, nil
}

// Healthz is mounted both on the bootstrap handler and the full router.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
