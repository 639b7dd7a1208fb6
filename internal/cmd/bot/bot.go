// Package bot parses bot command flags and starts the card bot runtime.
package bot

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glorybound/cardbot/internal/library"
	"github.com/glorybound/cardbot/internal/library/catalog"
	"github.com/glorybound/cardbot/internal/pick"
	"github.com/glorybound/cardbot/internal/platform/assets"
	"github.com/glorybound/cardbot/internal/platform/config"
	"github.com/glorybound/cardbot/internal/platform/telemetry"
	"github.com/glorybound/cardbot/internal/ruling"
	"github.com/glorybound/cardbot/internal/storage/sqlite"
)

// Config holds bot command configuration.
type Config struct {
	ContentDir   string `env:"GLORYBOUND_CONTENT_DIR" envDefault:"paths"`
	DatabasePath string `env:"GLORYBOUND_DB_PATH" envDefault:"cardbot.db"`
	CardVersion  string `env:"GLORYBOUND_CARD_VERSION" envDefault:"main"`
	AssetBaseURL string `env:"GLORYBOUND_ASSET_BASE_URL"`

	// Validate loads and indexes content, then exits without opening
	// storage. Used in CI to gate card data changes.
	Validate bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "Directory of path YAML documents")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.CardVersion, "card-version", cfg.CardVersion, "Card asset revision for image URLs")
	fs.BoolVar(&cfg.Validate, "validate", false, "Load and index content, then exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Runtime bundles the started services for the chat gateway.
type Runtime struct {
	Catalog *catalog.Catalog
	Picks   *pick.Service
	Rulings *ruling.Service
	Assets  assets.Resolver
}

// Run loads content, opens storage, and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	paths, err := library.LoadDir(os.DirFS(cfg.ContentDir), ".")
	if err != nil {
		return fmt.Errorf("load content from %s: %w", cfg.ContentDir, err)
	}

	cat := catalog.New(paths)
	log.Printf("indexed %d paths, %d cards", len(cat.Paths()), cat.CardCount())
	for _, warning := range cat.Warnings() {
		log.Printf("catalog warning: %s", warning)
	}

	if cfg.Validate {
		log.Printf("content is valid")
		return nil
	}

	shutdown, err := telemetry.Setup(ctx, "cardbot")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	rt := &Runtime{
		Catalog: cat,
		Picks:   pick.NewService(pick.Stores{Picks: store, Submissions: store}, cat),
		Rulings: ruling.NewService(store, cat),
		Assets:  assets.NewResolver(cfg.AssetBaseURL, cfg.CardVersion),
	}

	log.Printf("card bot ready (assets revision %s)", rt.Assets.Version())
	<-ctx.Done()
	return nil
}
