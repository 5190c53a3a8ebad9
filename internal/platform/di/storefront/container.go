// internal/platform/di/storefront/container.go
package storefront

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/adapters/in/http/middleware"
	outdb "github.com/apaluca/ReactRetail/internal/adapters/out/db"
	outfs "github.com/apaluca/ReactRetail/internal/adapters/out/firestore"
	gcso "github.com/apaluca/ReactRetail/internal/adapters/out/gcs"
	"github.com/apaluca/ReactRetail/internal/adapters/out/memory"
	outmongo "github.com/apaluca/ReactRetail/internal/adapters/out/mongo"
	outredis "github.com/apaluca/ReactRetail/internal/adapters/out/redis"
	"github.com/apaluca/ReactRetail/internal/application/query"
	"github.com/apaluca/ReactRetail/internal/application/usecase"
	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
	shared "github.com/apaluca/ReactRetail/internal/platform/di/shared"
)

// Container is the storefront DI container.
// Pure DI: build deps only; routing lives in register.go.
type Container struct {
	Infra *shared.Infra

	// Repositories
	Carts    cartdom.Repository
	Products productdom.Repository
	Reviews  reviewdom.Repository

	// Usecases
	CatalogUC *usecase.CatalogUsecase
	CartUC    *usecase.CartUsecase
	ReviewUC  *usecase.ReviewUsecase

	// Queries
	CartQuery *query.CartQuery

	UserAuth *middleware.UserAuthMiddleware
}

// NewContainer wires repositories for the backends selected in infra.Settings.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil {
		return nil, errors.New("di.storefront: infra is nil")
	}
	log := logging.Component("di.storefront")
	s := infra.Settings

	products, err := BuildProductRepository(ctx, infra)
	if err != nil {
		return nil, err
	}
	carts, err := buildCartRepo(ctx, infra)
	if err != nil {
		return nil, err
	}
	reviews, err := buildReviewRepo(ctx, infra)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"cart":    s.CartBackend,
		"catalog": s.CatalogBackend,
		"review":  s.ReviewBackend,
	}).Info("[di.storefront] repositories wired")

	c := &Container{
		Infra:    infra,
		Carts:    carts,
		Products: products,
		Reviews:  reviews,
	}

	var images usecase.ImageURLResolver
	if s.ProductImageBucket != "" {
		images = gcso.NewImageURLResolver(infra.GCS, s.ProductImageBucket, s.SignImageURLs)
	}
	c.CatalogUC = usecase.NewCatalogUsecase(products, images)

	c.CartUC = usecase.NewCartUsecase(carts, products)
	if infra.CartEvents != nil {
		c.CartUC.WithEvents(infra.CartEvents)
	}
	c.ReviewUC = usecase.NewReviewUsecase(reviews, products)
	c.CartQuery = query.NewCartQuery(c.CartUC, c.CatalogUC)

	c.UserAuth = &middleware.UserAuthMiddleware{
		DevUID: s.AuthDisabledUID,
		Log:    logging.Component("auth"),
	}
	if infra.FirebaseAuth != nil {
		c.UserAuth.Verifier = infra.FirebaseAuth
	} else {
		log.Warn("[di.storefront] Firebase Auth is nil (protected endpoints return 503 unless AUTH_DISABLED_UID is set)")
	}

	return c, nil
}

// BuildProductRepository returns the catalog store selected by CATALOG_BACKEND.
func BuildProductRepository(ctx context.Context, infra *shared.Infra) (productdom.Repository, error) {
	switch b := infra.Settings.CatalogBackend; b {
	case shared.BackendFirestore:
		return outfs.NewProductRepositoryFS(infra.Firestore), nil
	case shared.BackendMongo:
		return outmongo.NewProductRepositoryMongo(infra.Mongo.Database(infra.Settings.MongoDatabase)), nil
	case shared.BackendPostgres:
		repo := outdb.NewProductRepositoryPG(infra.SQL)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case shared.BackendMemory:
		return memory.NewProductRepository(), nil
	default:
		return nil, fmt.Errorf("di.storefront: unsupported catalog backend %q", b)
	}
}

func buildCartRepo(ctx context.Context, infra *shared.Infra) (cartdom.Repository, error) {
	switch b := infra.Settings.CartBackend; b {
	case shared.BackendFirestore:
		return outfs.NewCartRepositoryFS(infra.Firestore), nil
	case shared.BackendMongo:
		repo := outmongo.NewCartRepositoryMongo(infra.Mongo.Database(infra.Settings.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case shared.BackendRedis:
		return outredis.NewCartRepositoryRedis(infra.Redis), nil
	case shared.BackendMemory:
		return memory.NewCartRepository(), nil
	default:
		return nil, fmt.Errorf("di.storefront: unsupported cart backend %q", b)
	}
}

func buildReviewRepo(ctx context.Context, infra *shared.Infra) (reviewdom.Repository, error) {
	switch b := infra.Settings.ReviewBackend; b {
	case shared.BackendFirestore:
		return outfs.NewReviewRepositoryFS(infra.Firestore), nil
	case shared.BackendMongo:
		repo := outmongo.NewReviewRepositoryMongo(infra.Mongo.Database(infra.Settings.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case shared.BackendMemory:
		return memory.NewReviewRepository(), nil
	default:
		return nil, fmt.Errorf("di.storefront: unsupported review backend %q", b)
	}
}
