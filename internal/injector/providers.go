package injector

import (
	"context"

	"github.com/zeusync/tileset/internal/config"
	"github.com/zeusync/tileset/internal/core/catalog"
	"github.com/zeusync/tileset/internal/core/observability/log"
	"github.com/zeusync/tileset/internal/core/tileset"
)

// App bundles the wired dependencies of the command line tools.
type App struct {
	Config config.Config
	Logger *log.Logger
	Loader *tileset.Loader
}

func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	return log.New(cfg.LoggerOptions())
}

func NewApp(cfg config.Config, logger *log.Logger, loader *tileset.Loader) *App {
	return &App{Config: cfg, Logger: logger, Loader: loader}
}

// LoadCatalog loads the tilesets listed in the configuration.
func (a *App) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Load(ctx, a.Loader, a.Config.Tilesets,
		catalog.WithLogger(a.Logger),
		catalog.WithWorkers(a.Config.Workers),
		catalog.WithStrict(a.Config.Strict),
	)
}
