// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	goredis "github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"google.golang.org/api/option"

	amqpout "github.com/apaluca/ReactRetail/internal/adapters/out/amqp"
	redisout "github.com/apaluca/ReactRetail/internal/adapters/out/redis"
	appcfg "github.com/apaluca/ReactRetail/internal/infra/config"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

const connectTimeout = 10 * time.Second

// Infra owns the external clients shared by the binaries.
// Only the clients the resolved settings need are created.
//
// Infra must not depend on routers, handlers or queries.
type Infra struct {
	Config   *appcfg.Config
	Settings RuntimeSettings

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Mongo         *mongo.Client
	Redis         *goredis.Client
	SQL           *sql.DB
	CartEvents    *amqpout.CartEventPublisher

	log *logrus.Entry
}

// NewInfra initializes shared infra.
// Stores selected by the settings are strict (return error).
// Firebase Auth, GCS signing and AMQP are best-effort (warn + continue).
func NewInfra(ctx context.Context, cfg *appcfg.Config) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	log := logging.Component("shared.infra")

	settings, warns, err := ResolveRuntimeSettings(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		log.Warnf("[shared.infra] %s", w)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	inf := &Infra{Config: cfg, Settings: settings, log: log}

	var clientOpts []option.ClientOption
	if f := settings.CredentialsFile; f != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(f))
		log.Infof("[shared.infra] Using credentials file for GCP clients: %s", redactPath(f))
	}

	steps := []func(context.Context, []option.ClientOption) error{
		inf.initSecretManager,
		inf.initFirestore,
		inf.initGCS,
		inf.initFirebaseAuth,
		inf.initMongo,
		inf.initRedis,
		inf.initSQL,
		inf.initAMQP,
	}
	for _, step := range steps {
		if err := step(ctx, clientOpts); err != nil {
			_ = inf.Close()
			return nil, err
		}
	}
	return inf, nil
}

func (i *Infra) initSecretManager(ctx context.Context, opts []option.ClientOption) error {
	if !i.Settings.NeedsSecretManager() {
		return nil
	}
	sm, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return errors.Wrap(err, "shared.infra: secretmanager.NewClient failed")
	}
	i.SecretManager = sm
	return nil
}

func (i *Infra) initFirestore(ctx context.Context, opts []option.ClientOption) error {
	if !i.Settings.Uses(BackendFirestore) {
		return nil
	}
	c, err := firestore.NewClient(ctx, i.Settings.ProjectID, opts...)
	if err != nil {
		return errors.Wrapf(err, "shared.infra: firestore.NewClient failed (project=%s)", i.Settings.ProjectID)
	}
	i.Firestore = c
	i.log.Infof("[shared.infra] Firestore connected project=%s", i.Settings.ProjectID)
	return nil
}

func (i *Infra) initGCS(ctx context.Context, opts []option.ClientOption) error {
	if !i.Settings.SignImageURLs || i.Settings.ProductImageBucket == "" {
		return nil
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		i.log.WithError(err).Warn("[shared.infra] storage.NewClient failed (public image URLs will be used)")
		return nil
	}
	i.GCS = c
	i.log.Infof("[shared.infra] GCS storage client initialized bucket=%s", i.Settings.ProductImageBucket)
	return nil
}

func (i *Infra) initFirebaseAuth(ctx context.Context, opts []option.ClientOption) error {
	if i.Settings.ProjectID == "" {
		i.log.Warn("[shared.infra] Firebase Auth not configured (no project id)")
		return nil
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: i.Settings.ProjectID}, opts...)
	if err != nil {
		i.log.WithError(err).Warn("[shared.infra] firebase app init failed")
		return nil
	}
	i.FirebaseApp = app

	authClient, err := app.Auth(ctx)
	if err != nil {
		i.log.WithError(err).Warn("[shared.infra] firebase auth init failed")
		return nil
	}
	i.FirebaseAuth = authClient
	i.log.Info("[shared.infra] Firebase Auth initialized")
	return nil
}

func (i *Infra) initMongo(ctx context.Context, _ []option.ClientOption) error {
	if !i.Settings.Uses(BackendMongo) {
		return nil
	}
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	c, err := mongo.Connect(cctx, options.Client().ApplyURI(i.Settings.MongoURI))
	if err != nil {
		return errors.Wrap(err, "shared.infra: mongo.Connect failed")
	}
	i.Mongo = c
	if err := c.Ping(cctx, readpref.Primary()); err != nil {
		return errors.Wrap(err, "shared.infra: mongo ping failed")
	}
	i.log.Infof("[shared.infra] MongoDB connected database=%s", i.Settings.MongoDatabase)
	return nil
}

func (i *Infra) initRedis(ctx context.Context, _ []option.ClientOption) error {
	if i.Settings.CartBackend != BackendRedis {
		return nil
	}
	password := ""
	if ref := i.Settings.RedisPasswordSecret; ref != "" {
		p, err := NewSecretResolver(i.SecretManager, i.Settings.ProjectID).Resolve(ctx, ref)
		if err != nil {
			return errors.Wrap(err, "shared.infra: resolve REDIS_PASSWORD_SECRET")
		}
		password = p
	}

	c, err := redisout.NewClient(i.Settings.RedisAddr, password)
	if err != nil {
		return errors.Wrap(err, "shared.infra: redis client")
	}
	i.Redis = c

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := redisout.Ping(cctx, c); err != nil {
		return errors.Wrap(err, "shared.infra: redis ping failed")
	}
	i.log.Info("[shared.infra] Redis connected")
	return nil
}

func (i *Infra) initSQL(ctx context.Context, _ []option.ClientOption) error {
	if i.Settings.CatalogBackend != BackendPostgres {
		return nil
	}
	dsn := i.Settings.DatabaseURL
	if dsn == "" {
		v, err := NewSecretResolver(i.SecretManager, i.Settings.ProjectID).Resolve(ctx, i.Settings.DatabaseURLSecret)
		if err != nil {
			return errors.Wrap(err, "shared.infra: resolve DATABASE_URL_SECRET")
		}
		dsn = v
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.Wrap(err, "shared.infra: sql.Open failed")
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	i.SQL = db

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(cctx); err != nil {
		return errors.Wrap(err, "shared.infra: postgres ping failed")
	}
	i.log.Info("[shared.infra] PostgreSQL connected")
	return nil
}

func (i *Infra) initAMQP(_ context.Context, _ []option.ClientOption) error {
	if i.Settings.AMQPURL == "" {
		return nil
	}
	p, err := amqpout.Dial(i.Settings.AMQPURL, i.Settings.AMQPExchange)
	if err != nil {
		i.log.WithError(err).Warn("[shared.infra] AMQP unavailable (cart events are dropped)")
		return nil
	}
	i.CartEvents = p
	i.log.Infof("[shared.infra] AMQP publisher ready exchange=%s", i.Settings.AMQPExchange)
	return nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.CartEvents != nil {
		_ = i.CartEvents.Close()
	}
	if i.SQL != nil {
		_ = i.SQL.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = i.Mongo.Disconnect(ctx)
		cancel()
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}

// redactPath keeps only the last path segment.
func redactPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}
