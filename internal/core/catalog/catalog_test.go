package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/tileset/internal/core/tileset"
)

func loadCatalog(t *testing.T, refs []Ref, opts ...Option) *Catalog {
	t.Helper()
	c, err := Load(context.Background(), tileset.NewLoader(nil), refs, opts...)
	require.NoError(t, err)
	return c
}

func TestResolve(t *testing.T) {
	c := loadCatalog(t, []Ref{
		{FirstGID: 17, Source: "testdata/items.tsx"},
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
	})

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "terrain", entries[0].Sheet().Name)
	assert.Equal(t, "items", entries[1].Sheet().Name)

	cases := []struct {
		gid   uint32
		name  string
		local int
	}{
		{1, "terrain", 0},
		{16, "terrain", 15},
		{17, "items", 0},
		{24, "items", 7},
	}
	for _, tc := range cases {
		e, id, ok := c.Resolve(tc.gid)
		require.True(t, ok, "gid %d", tc.gid)
		assert.Equal(t, tc.name, e.Sheet().Name, "gid %d", tc.gid)
		assert.Equal(t, tc.local, id, "gid %d", tc.gid)
	}

	for _, gid := range []uint32{0, 25, 1000} {
		_, _, ok := c.Resolve(gid)
		assert.False(t, ok, "gid %d", gid)
	}
}

func TestResolveIgnoresFlipBits(t *testing.T) {
	c := loadCatalog(t, []Ref{{FirstGID: 1, Source: "testdata/terrain.tsx"}})

	raw := uint32(1) | uint32(FlipHorizontal) | uint32(FlipDiagonal)
	gid, flip := DecodeGID(raw)
	assert.Equal(t, uint32(1), gid)
	assert.True(t, flip.Has(FlipHorizontal))
	assert.True(t, flip.Has(FlipDiagonal))
	assert.False(t, flip.Has(FlipVertical))

	typ, ok := c.TypeOf(raw)
	require.True(t, ok)
	assert.Equal(t, tileset.TypeSolid, typ)

	_, _, ok = c.Resolve(uint32(FlipVertical))
	assert.False(t, ok)
}

func TestTypeAndAnimationOf(t *testing.T) {
	c := loadCatalog(t, []Ref{
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
		{FirstGID: 17, Source: "testdata/items.tsx"},
	})

	typ, ok := c.TypeOf(19)
	require.True(t, ok)
	assert.Equal(t, "pickup", typ)
	_, ok = c.TypeOf(18)
	assert.False(t, ok)

	anim, ok := c.AnimationOf(6)
	require.True(t, ok)
	require.Equal(t, 2, anim.Len())
	assert.Equal(t, tileset.Frame{TileID: 6, Duration: 250}, anim.Frames[1])
	_, ok = c.AnimationOf(1)
	assert.False(t, ok)
}

func TestImagePath(t *testing.T) {
	c := loadCatalog(t, []Ref{{FirstGID: 1, Source: "testdata/terrain.tsx"}})
	assert.Equal(t, filepath.Join("testdata", "images", "terrain.png"), c.Entries()[0].ImagePath())
}

func TestSharedContent(t *testing.T) {
	c := loadCatalog(t, []Ref{
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
		{FirstGID: 101, Source: "testdata/terrain_copy.tsx"},
		{FirstGID: 201, Source: "./testdata/terrain.tsx"},
	})

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Same(t, entries[0].Registry, entries[1].Registry)
	assert.Same(t, entries[0].Registry, entries[2].Registry)

	e, id, ok := c.Resolve(206)
	require.True(t, ok)
	assert.Equal(t, uint32(201), e.FirstGID)
	assert.Equal(t, 5, id)
}

func TestLoadRefErrors(t *testing.T) {
	ctx := context.Background()
	loader := tileset.NewLoader(nil)

	_, err := Load(ctx, loader, nil)
	assert.ErrorIs(t, err, ErrNoRefs)

	_, err = Load(ctx, loader, []Ref{{FirstGID: 0, Source: "testdata/terrain.tsx"}})
	assert.ErrorIs(t, err, ErrInvalidFirstGID)

	_, err = Load(ctx, loader, []Ref{
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
		{FirstGID: 1, Source: "testdata/items.tsx"},
	})
	assert.ErrorIs(t, err, ErrDuplicateFirstGID)

	_, err = Load(ctx, loader, []Ref{
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
		{FirstGID: 10, Source: "testdata/items.tsx"},
	})
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestLoadFailsOnBadSource(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.tsx")
	require.NoError(t, os.WriteFile(bad, []byte("<tileset"), 0o600))

	_, err := Load(context.Background(), tileset.NewLoader(nil), []Ref{
		{FirstGID: 1, Source: "testdata/terrain.tsx"},
		{FirstGID: 100, Source: bad},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tileset.ErrParse), "got %v", err)

	_, err = Load(context.Background(), tileset.NewLoader(nil), []Ref{
		{FirstGID: 1, Source: filepath.Join(dir, "missing.tsx")},
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStrictValidation(t *testing.T) {
	refs := []Ref{{FirstGID: 1, Source: "testdata/broken.tsx"}}

	c := loadCatalog(t, refs, WithStrict(false), WithWorkers(1))
	entry := c.Entries()[0]
	require.Len(t, entry.Issues, 1)
	assert.ErrorIs(t, entry.Issues[0], tileset.ErrFrameOutOfRange)

	_, err := Load(context.Background(), tileset.NewLoader(nil), refs, WithStrict(true))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, tileset.ErrFrameOutOfRange)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, tileset.NewLoader(nil), []Ref{{FirstGID: 1, Source: "testdata/terrain.tsx"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSample(t *testing.T) {
	c := loadCatalog(t, []Ref{{FirstGID: 1, Source: "../tileset/testdata/tileset.tsx"}})

	typ, ok := c.TypeOf(77)
	require.True(t, ok)
	assert.Equal(t, tileset.TypePlayer, typ)

	anim, ok := c.AnimationOf(2326)
	require.True(t, ok)
	assert.Equal(t, 4, anim.Len())
}
