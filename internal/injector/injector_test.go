package injector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/tileset/internal/config"
	"github.com/zeusync/tileset/internal/core/catalog"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "none"
	cfg.Tilesets = []catalog.Ref{{FirstGID: 1, Source: "../core/tileset/testdata/tileset.tsx"}}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Loader)
	require.NotNil(t, app.Logger)

	c, err := app.LoadCatalog(context.Background())
	require.NoError(t, err)
	typ, ok := c.TypeOf(77)
	require.True(t, ok)
	assert.Equal(t, "player", typ)
}

func TestInitializeAppBadEncoding(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Encoding = "xml"

	_, err := InitializeApp(cfg)
	assert.Error(t, err)
}
