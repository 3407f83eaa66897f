package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/zeusync/tileset/internal/core/observability/log"
	"github.com/zeusync/tileset/internal/core/tileset"
	"github.com/zeusync/tileset/pkg/concurrent"
)

var (
	ErrNoRefs            = errors.New("no tileset references")
	ErrInvalidFirstGID   = errors.New("firstgid must be at least 1")
	ErrDuplicateFirstGID = errors.New("duplicate firstgid")
	ErrOverlap           = errors.New("tileset gid ranges overlap")
	ErrInvalid           = errors.New("tileset failed validation")
)

// Ref points a map at a tileset descriptor, as in <tileset firstgid source>.
type Ref struct {
	FirstGID uint32 `json:"firstgid" yaml:"firstgid"`
	Source   string `json:"source" yaml:"source"`
}

// Entry is one loaded tileset.
type Entry struct {
	Ref
	Registry *tileset.Registry
	// Issues holds validation findings. Empty unless the catalog is lenient.
	Issues tileset.ValidationErrors
}

// Sheet is shorthand for e.Registry.Sheet().
func (e *Entry) Sheet() *tileset.Sheet {
	return e.Registry.Sheet()
}

// Contains reports whether gid falls into this tileset's range.
func (e *Entry) Contains(gid uint32) bool {
	return gid >= e.FirstGID && gid-e.FirstGID < uint32(e.Sheet().TileCount)
}

// ImagePath resolves the sheet image relative to the descriptor.
func (e *Entry) ImagePath() string {
	src := e.Sheet().Image.Source
	if filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(filepath.Dir(e.Source), src)
}

// Catalog maps gids to tilesets. It is read-only once Load returns.
type Catalog struct {
	entries []*Entry
}

type options struct {
	logger  log.Log
	workers int
	strict  bool
}

type Option func(*options)

func WithLogger(logger log.Log) Option {
	return func(o *options) { o.logger = logger }
}

// WithWorkers bounds the number of descriptors parsed at once.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithStrict makes any validation finding fail the load.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// Load reads every referenced descriptor concurrently. A source listed
// more than once is parsed once, and sheets with identical content share
// one registry.
func Load(ctx context.Context, loader *tileset.Loader, refs []Ref, opts ...Option) (*Catalog, error) {
	o := options{logger: log.Nop(), workers: 4}
	for _, opt := range opts {
		opt(&o)
	}
	if len(refs) == 0 {
		return nil, ErrNoRefs
	}

	seenGID := make(map[uint32]string, len(refs))
	var sources []string
	seenSource := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref.FirstGID < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFirstGID, ref.Source)
		}
		if prev, ok := seenGID[ref.FirstGID]; ok {
			return nil, fmt.Errorf("%w: %d used by %s and %s", ErrDuplicateFirstGID, ref.FirstGID, prev, ref.Source)
		}
		seenGID[ref.FirstGID] = ref.Source
		src := filepath.Clean(ref.Source)
		if !seenSource[src] {
			seenSource[src] = true
			sources = append(sources, src)
		}
	}

	sheets, err := concurrent.Map(ctx, sources, o.workers, func(_ context.Context, src string) (*tileset.Sheet, error) {
		return loader.LoadFile(src)
	})
	if err != nil {
		return nil, err
	}

	bySource := make(map[string]*tileset.Registry, len(sources))
	byChecksum := make(map[uint64]*tileset.Registry, len(sources))
	issues := make(map[string]tileset.ValidationErrors, len(sources))
	for i, src := range sources {
		sheet := sheets[i]
		if errs := tileset.Validate(sheet); len(errs) > 0 {
			if o.strict {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, src, errs.Err())
			}
			o.logger.Warn("tileset has validation issues",
				log.String("source", src),
				log.Int("issues", len(errs)),
				log.Error(errs.Err()),
			)
			issues[src] = errs
		}
		if reg, ok := byChecksum[sheet.Checksum]; ok {
			o.logger.Debug("tileset content shared",
				log.String("source", src),
				log.String("with", reg.Sheet().Name),
			)
			bySource[src] = reg
			continue
		}
		reg := tileset.NewRegistry(sheet)
		byChecksum[sheet.Checksum] = reg
		bySource[src] = reg
	}

	c := &Catalog{entries: make([]*Entry, 0, len(refs))}
	for _, ref := range refs {
		src := filepath.Clean(ref.Source)
		c.entries = append(c.entries, &Entry{
			Ref:      ref,
			Registry: bySource[src],
			Issues:   issues[src],
		})
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].FirstGID < c.entries[j].FirstGID
	})

	for i := 1; i < len(c.entries); i++ {
		prev, next := c.entries[i-1], c.entries[i]
		if uint64(prev.FirstGID)+uint64(prev.Sheet().TileCount) > uint64(next.FirstGID) {
			return nil, fmt.Errorf("%w: %s (firstgid %d, %d tiles) and %s (firstgid %d)",
				ErrOverlap, prev.Source, prev.FirstGID, prev.Sheet().TileCount, next.Source, next.FirstGID)
		}
	}

	o.logger.Info("catalog loaded",
		log.Int("tilesets", len(c.entries)),
		log.Int("parsed", len(sources)),
		log.Int("registries", len(byChecksum)),
	)
	return c, nil
}

// Entries returns the tilesets ordered by firstgid.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Resolve finds the tileset owning a raw map gid and returns the local tile
// ID. Flip bits are ignored. Gid 0 means no tile and never resolves.
func (c *Catalog) Resolve(raw uint32) (*Entry, int, bool) {
	gid, _ := DecodeGID(raw)
	if gid == 0 {
		return nil, 0, false
	}
	// Last entry whose firstgid is <= gid.
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].FirstGID > gid
	}) - 1
	if i < 0 {
		return nil, 0, false
	}
	e := c.entries[i]
	if !e.Contains(gid) {
		return nil, 0, false
	}
	return e, int(gid - e.FirstGID), true
}

// TypeOf returns the semantic type of the tile behind a raw map gid.
func (c *Catalog) TypeOf(raw uint32) (string, bool) {
	e, id, ok := c.Resolve(raw)
	if !ok {
		return "", false
	}
	return e.Registry.Type(id)
}

// AnimationOf returns the animation of the tile behind a raw map gid. Frame
// tile IDs are local to the owning tileset.
func (c *Catalog) AnimationOf(raw uint32) (tileset.Animation, bool) {
	e, id, ok := c.Resolve(raw)
	if !ok {
		return tileset.Animation{}, false
	}
	return e.Registry.Animation(id)
}
