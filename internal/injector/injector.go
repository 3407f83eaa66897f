//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/tileset/internal/config"
	"github.com/zeusync/tileset/internal/core/observability/log"
	"github.com/zeusync/tileset/internal/core/tileset"
)

func InitializeApp(cfg config.Config) (*App, error) {
	wire.Build(
		ProvideLogger,
		wire.Bind(new(log.Log), new(*log.Logger)),
		tileset.NewLoader,
		NewApp,
	)
	return nil, nil
}
