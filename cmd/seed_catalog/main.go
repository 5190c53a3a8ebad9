// cmd/seed_catalog/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	appcfg "github.com/apaluca/ReactRetail/internal/infra/config"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
	shared "github.com/apaluca/ReactRetail/internal/platform/di/shared"
	storefrontDI "github.com/apaluca/ReactRetail/internal/platform/di/storefront"
)

// productRecord is one entry of the seed file. "_id" and "id" are both
// accepted so exports from the document stores load unchanged.
type productRecord struct {
	ID          string   `json:"id"`
	MongoID     string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Images      []string `json:"images"`
}

func main() {
	file := flag.String("file", "products.json", "JSON array of products")
	flag.Parse()

	cfg := appcfg.Load()
	log := logging.Init(cfg.LogLevel).WithField("component", "seed_catalog")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	f, err := os.Open(*file)
	if err != nil {
		log.WithError(err).Fatal("[seed_catalog] open seed file")
	}
	defer f.Close()

	products, err := decodeProducts(f)
	if err != nil {
		log.WithError(err).Fatal("[seed_catalog] decode seed file")
	}

	infra, err := shared.NewInfra(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("[seed_catalog] infra init")
	}
	defer infra.Close()

	if infra.Settings.CatalogBackend == shared.BackendMemory {
		log.Fatal("[seed_catalog] CATALOG_BACKEND=memory has nothing to seed")
	}

	repo, err := storefrontDI.BuildProductRepository(ctx, infra)
	if err != nil {
		log.WithError(err).Fatal("[seed_catalog] catalog repository")
	}

	n, err := seed(ctx, repo, products)
	if err != nil {
		log.WithError(err).Fatalf("[seed_catalog] seeded %d of %d products", n, len(products))
	}
	log.Infof("[seed_catalog] seeded %d products into %s", n, infra.Settings.CatalogBackend)
}

func decodeProducts(r io.Reader) ([]productdom.Product, error) {
	var records []productRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	out := make([]productdom.Product, 0, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			id = strings.TrimSpace(rec.MongoID)
		}
		p := productdom.Product{
			ID:          id,
			Name:        strings.TrimSpace(rec.Name),
			Price:       common.CentsFromFloat(rec.Price),
			Stock:       rec.Stock,
			Category:    strings.TrimSpace(rec.Category),
			Description: rec.Description,
			ImageURL:    strings.TrimSpace(rec.ImageURL),
			Images:      rec.Images,
		}
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "product #%d (%q)", i, id)
		}
		out = append(out, p)
	}
	return out, nil
}

func seed(ctx context.Context, w productdom.Writer, products []productdom.Product) (int, error) {
	for i := range products {
		if err := w.Upsert(ctx, &products[i]); err != nil {
			return i, errors.Wrapf(err, "upsert %s", products[i].ID)
		}
	}
	return len(products), nil
}
