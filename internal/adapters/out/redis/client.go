// internal/adapters/out/redis/client.go
package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/extra/redisotel/v8"
	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// NewClient accepts "redis://..." URLs or a bare host:port.
func NewClient(addr, password string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(addr)
	if err != nil {
		opts = &goredis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
			PoolTimeout:  4 * time.Second,
			IdleTimeout:  180 * time.Second,
		}
	}
	if password != "" {
		opts.Password = password
	}

	client := goredis.NewClient(opts)
	client.AddHook(redisotel.NewTracingHook())
	return client, nil
}

// Ping checks the connection with a bounded timeout.
func Ping(ctx context.Context, client *goredis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return errors.Wrap(client.Ping(pingCtx).Err(), "redis ping")
}
