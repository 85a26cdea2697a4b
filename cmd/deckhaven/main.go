package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/deckhaven/deckhaven/internal/card"
	"github.com/deckhaven/deckhaven/internal/config"
	"github.com/deckhaven/deckhaven/internal/deck"
	"github.com/deckhaven/deckhaven/internal/format"
	"github.com/deckhaven/deckhaven/internal/pricing"
	"github.com/deckhaven/deckhaven/internal/repository"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	deckName   = flag.String("name", "", "display name for an imported deck")
	version    = "dev" // set via ldflags during build
)

const usage = `Usage: deckhaven [flags] <command> [args]

Commands:
  import <file.ydk>   import a deck list and save it
  export <deck-id>    print a stored deck in ydk form
  price <deck-id>     price a stored deck
  stats <deck-id>     show zone totals and validity for a stored deck
  list                list stored decks
  delete <deck-id>    delete a stored deck
`

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open deck storage", zap.Error(err))
	}
	defer repo.Close()

	eng := newEngine(cfg, logger)

	logger.Debug("deckhaven initialized",
		zap.String("version", version),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	if err := run(ctx, args, eng, repo); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		os.Exit(1)
	}
}

// engine bundles the deck engine components the commands share.
type engine struct {
	store      *deck.Store
	importer   *format.Importer
	aggregator *pricing.Aggregator
}

func newEngine(cfg *config.Config, logger *zap.Logger) *engine {
	catalog := card.NewHTTPCatalog(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	resolver := card.NewResolver(catalog, cfg.Engine.ImportConcurrency, logger)
	store := deck.NewStore(logger, deck.WithHistoryLimit(cfg.Engine.HistoryLimit))
	oracle := pricing.NewHTTPOracle(cfg.Pricing.BaseURL, cfg.Pricing.Timeout)

	return &engine{
		store:      store,
		importer:   format.NewImporter(store, resolver, logger),
		aggregator: pricing.NewAggregator(oracle, cfg.Engine.ImportConcurrency, logger),
	}
}

func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Repository, error) {
	if cfg.Storage.Backend == "postgres" {
		return repository.NewPostgresRepository(ctx, cfg.Storage.Postgres.URL, logger)
	}
	return repository.NewBadgerRepository(cfg.Storage.Badger.Path, logger)
}

func run(ctx context.Context, args []string, eng *engine, repo repository.Repository) error {
	switch args[0] {
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("import requires a file argument")
		}
		return runImport(ctx, eng, repo, args[1])
	case "export":
		if len(args) < 2 {
			return fmt.Errorf("export requires a deck id")
		}
		return runExport(ctx, repo, args[1])
	case "price":
		if len(args) < 2 {
			return fmt.Errorf("price requires a deck id")
		}
		return runPrice(ctx, eng, repo, args[1])
	case "stats":
		if len(args) < 2 {
			return fmt.Errorf("stats requires a deck id")
		}
		return runStats(ctx, repo, args[1])
	case "list":
		return runList(ctx, repo)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("delete requires a deck id")
		}
		return repo.Delete(ctx, args[1])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runImport(ctx context.Context, eng *engine, repo repository.Repository, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read deck list: %w", err)
	}

	if err := eng.importer.Import(ctx, string(text)); err != nil {
		return err
	}

	name := *deckName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	eng.store.SetMetadata(name, "", "")

	imported := eng.store.Snapshot()
	if err := repo.Save(ctx, imported); err != nil {
		return err
	}

	fmt.Printf("imported %q as %s\n", name, imported.Metadata.ID)
	return nil
}

func runExport(ctx context.Context, repo repository.Repository, id string) error {
	d, err := repo.Load(ctx, id)
	if err != nil {
		return err
	}
	fmt.Print(format.Serialize(d))
	return nil
}

func runPrice(ctx context.Context, eng *engine, repo repository.Repository, id string) error {
	d, err := repo.Load(ctx, id)
	if err != nil {
		return err
	}

	price := eng.aggregator.Price(ctx, d)
	for _, zone := range deck.Zones() {
		fmt.Printf("%-6s $%s\n", zone.String()+":", price.Subtotal(zone).StringFixed(2))
	}
	fmt.Printf("total: $%s\n", price.Total.StringFixed(2))
	return nil
}

func runStats(ctx context.Context, repo repository.Repository, id string) error {
	d, err := repo.Load(ctx, id)
	if err != nil {
		return err
	}

	stats := deck.Evaluate(d)
	fmt.Printf("main:  %d cards (%d monsters / %d spells / %d traps) valid=%t\n",
		stats.Main.Total,
		stats.MainBreakdown.Monsters,
		stats.MainBreakdown.Spells,
		stats.MainBreakdown.Traps,
		stats.Main.Valid,
	)
	fmt.Printf("extra: %d cards (%d fusion / %d synchro / %d xyz / %d link) valid=%t\n",
		stats.Extra.Total,
		stats.ExtraBreakdown.Fusion,
		stats.ExtraBreakdown.Synchro,
		stats.ExtraBreakdown.Xyz,
		stats.ExtraBreakdown.Link,
		stats.Extra.Valid,
	)
	fmt.Printf("side:  %d cards valid=%t\n", stats.Side.Total, stats.Side.Valid)
	return nil
}

func runList(ctx context.Context, repo repository.Repository) error {
	decks, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(decks) == 0 {
		fmt.Println("no decks stored")
		return nil
	}
	for id, d := range decks {
		fmt.Printf("%s  %-30s  %d/%d/%d  updated %s\n",
			id,
			d.Metadata.Name,
			d.ZoneTotal(deck.ZoneMain),
			d.ZoneTotal(deck.ZoneExtra),
			d.ZoneTotal(deck.ZoneSide),
			d.Metadata.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
