package tileset

import (
	"image"
	"slices"
	"sort"
)

// Registry answers per-tile queries over a loaded Sheet. It is built once
// and never mutated, so it can be shared by any number of readers without
// locking.
type Registry struct {
	sheet  *Sheet
	tiles  map[int]*Tile
	byType map[string][]int
}

// NewRegistry indexes the declared tiles of sheet. When an ID is declared
// more than once the first declaration wins; Validate reports the rest.
func NewRegistry(sheet *Sheet) *Registry {
	r := &Registry{
		sheet:  sheet,
		tiles:  make(map[int]*Tile, len(sheet.Tiles)),
		byType: make(map[string][]int),
	}
	for i := range sheet.Tiles {
		tile := &sheet.Tiles[i]
		if _, seen := r.tiles[tile.ID]; seen {
			continue
		}
		r.tiles[tile.ID] = tile
		if tile.HasType() {
			r.byType[tile.Type] = append(r.byType[tile.Type], tile.ID)
		}
	}
	for _, ids := range r.byType {
		sort.Ints(ids)
	}
	return r
}

func (r *Registry) Sheet() *Sheet {
	return r.sheet
}

// Tile returns the declaration for id. Undeclared IDs report false.
func (r *Registry) Tile(id int) (Tile, bool) {
	tile, ok := r.tiles[id]
	if !ok {
		return Tile{}, false
	}
	return *tile, true
}

// Type returns the semantic type of id. Untyped tiles report false; that is
// the normal case and not an error.
func (r *Registry) Type(id int) (string, bool) {
	tile, ok := r.tiles[id]
	if !ok || !tile.HasType() {
		return "", false
	}
	return tile.Type, true
}

// Animation returns a copy of the frame sequence of id in declaration order.
func (r *Registry) Animation(id int) (Animation, bool) {
	tile, ok := r.tiles[id]
	if !ok || tile.Animation == nil {
		return Animation{}, false
	}
	return Animation{Frames: slices.Clone(tile.Animation.Frames)}, true
}

// Property returns a custom property declared on id.
func (r *Registry) Property(id int, name string) (string, bool) {
	tile, ok := r.tiles[id]
	if !ok {
		return "", false
	}
	v, ok := tile.Properties[name]
	return v, ok
}

// TilesOfType returns the IDs declared with typ, ascending.
func (r *Registry) TilesOfType(typ string) []int {
	ids := r.byType[typ]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Types returns every semantic type in use, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.byType))
	for typ := range r.byType {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Animated returns the IDs that declare an animation, ascending.
func (r *Registry) Animated() []int {
	var ids []int
	for id, tile := range r.tiles {
		if tile.Animation != nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Kind classifies id for render batching: undeclared tiles are static,
// tiles with a timed animation form a group, every other declared tile is
// dynamic.
func (r *Registry) Kind(id int) Kind {
	tile, ok := r.tiles[id]
	if !ok {
		return KindStatic
	}
	if tile.Animation != nil && tile.Animation.Timed() {
		return KindGroup
	}
	return KindDynamic
}

// Bounds is shorthand for Sheet().Bounds(id).
func (r *Registry) Bounds(id int) (image.Rectangle, error) {
	return r.sheet.Bounds(id)
}
