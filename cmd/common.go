package cmd

import (
	"context"
	"fmt"

	"github.com/checkdisout/checkdisout/pkg/cache"
	"github.com/checkdisout/checkdisout/pkg/config"
	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/checkdisout/checkdisout/pkg/logger"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/checkdisout/checkdisout/pkg/renderer"
	"github.com/checkdisout/checkdisout/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setup loads the config, tolerating a missing file, and initializes logging.
func setup() (cfg config.Config, err error) {
	cfg, err = config.LoadOrDefault(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return cfg, err
	}

	err = logger.Init(cfg.Server.Env, getVerbose())
	if err != nil {
		err = errors.Wrap(err, "failed to initialize logger")
		return cfg, err
	}

	return cfg, err
}

// loadDocument fetches a portfolio and applies a --sections override.
func loadDocument(ctx context.Context, cmd *cobra.Command, input, sections string) (in export.Input, err error) {
	if getVerbose() {
		fmt.Printf("Loading portfolio from: %s\n", input)
	}

	var doc portfolio.Document
	doc, err = portfolio.FetchWithContext(ctx, input)
	if err != nil {
		err = errors.Wrap(err, "failed to load portfolio")
		return in, err
	}

	in = export.FromDocument(doc)

	if cmd.Flags().Changed("sections") {
		in.Selection, err = portfolio.ParseSelection(sections)
		if err != nil {
			return in, err
		}
	}

	if getVerbose() {
		fmt.Printf("Loaded %d achievements, %d projects, %d participations\n",
			len(in.Achievements), len(in.Projects), len(in.Participations))
		fmt.Printf("Sections: %v\n", in.Selection.Keys())
	}

	return in, err
}

// newExporter builds an exporter from config. The redis cache is attached when
// configured and reachable; closer releases it.
func newExporter(ctx context.Context, cfg config.Config, opts ...export.Option) (x *export.Exporter, closer func(), err error) {
	closer = func() {}

	opts = append([]export.Option{
		export.WithFinalizer(renderer.NewPDF(cfg.Document.Title, cfg.Document.Author)),
	}, opts...)

	if getVerbose() {
		opts = append(opts, export.WithLogger(logger.Get()))
	}

	if cfg.Redis.URL != "" {
		var c *cache.Cache
		c, err = cache.Open(ctx, cfg.Redis.URL, cfg.Redis.TTL())
		if err != nil {
			logger.Get().Warn("render cache disabled", zap.Error(err))
			err = nil
		} else {
			opts = append(opts, export.WithCache(c))
			closer = func() { _ = c.Close() }
		}
	}

	x = export.New(opts...)
	return x, closer, err
}

// openStore connects the record store and migrates its tables.
func openStore(ctx context.Context, cfg config.Config) (repo *store.Repository, err error) {
	if cfg.Database.DSN == "" {
		err = errors.New("no database configured (set database.dsn or CHECKDISOUT_DB_DSN)")
		return repo, err
	}

	var db *gorm.DB
	db, err = store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return repo, err
	}

	repo = store.NewRepository(db)
	err = repo.Migrate(ctx)
	if err != nil {
		return repo, err
	}

	return repo, err
}
