// internal/platform/di/storefront/register.go
package storefront

import (
	"net/http"

	"github.com/pkg/errors"

	httpin "github.com/apaluca/ReactRetail/internal/adapters/in/http"
)

// Handler builds the full storefront router from the container.
func Handler(cont *Container) (http.Handler, error) {
	if cont == nil {
		return nil, errors.New("di.storefront: container is nil")
	}

	tracing := false
	if cont.Infra != nil {
		tracing = cont.Infra.Settings.OTLPEndpoint != ""
	}
	var origins []string
	if cont.Infra != nil {
		origins = cont.Infra.Settings.AllowedOrigins
	}

	return httpin.NewRouter(httpin.RouterDeps{
		CatalogUC:      cont.CatalogUC,
		CartUC:         cont.CartUC,
		ReviewUC:       cont.ReviewUC,
		CartQuery:      cont.CartQuery,
		UserAuth:       cont.UserAuth,
		AllowedOrigins: origins,
		Tracing:        tracing,
	})
}
