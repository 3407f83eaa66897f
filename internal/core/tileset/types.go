package tileset

import "time"

// Tile types observed in shipped descriptors. The set is open: any other
// string found in a type attribute is kept as is.
const (
	TypePlayer         = "player"
	TypePlayerWalking  = "player_walking"
	TypePlayerClimbing = "player_climbing"
	TypePlayerAttack   = "player_attk"
	TypePlayerDead     = "player_dead"
	TypeSolid          = "solid"
)

// Sheet is a parsed tileset descriptor. It is never mutated after Load.
type Sheet struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version,omitempty" yaml:"version,omitempty"`
	TiledVersion string `json:"tiled_version,omitempty" yaml:"tiled_version,omitempty"`

	TileWidth  int `json:"tile_width" yaml:"tile_width"`
	TileHeight int `json:"tile_height" yaml:"tile_height"`
	TileCount  int `json:"tile_count" yaml:"tile_count"`
	Columns    int `json:"columns" yaml:"columns"`
	Spacing    int `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Margin     int `json:"margin,omitempty" yaml:"margin,omitempty"`

	Image Image `json:"image" yaml:"image"`

	// Tiles holds the explicitly declared tiles in declaration order.
	Tiles []Tile `json:"tiles,omitempty" yaml:"tiles,omitempty"`

	// Checksum is the xxhash64 of the raw descriptor bytes.
	Checksum uint64 `json:"checksum" yaml:"checksum"`
}

type Image struct {
	Source string `json:"source" yaml:"source"`
	// Width and Height are zero when the descriptor omits them.
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
}

// Tile is one declared tile. Type is empty and Animation nil when the
// descriptor does not declare them.
type Tile struct {
	ID         int               `json:"id" yaml:"id"`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty"`
	Animation  *Animation        `json:"animation,omitempty" yaml:"animation,omitempty"`
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// HasType reports whether the tile declares a semantic type.
func (t Tile) HasType() bool {
	return t.Type != ""
}

// Animation is a cyclic frame sequence: after the last frame playback
// returns to the first.
type Animation struct {
	Frames []Frame `json:"frames" yaml:"frames"`
}

// Len returns the number of frames.
func (a Animation) Len() int {
	return len(a.Frames)
}

// Cycle returns the summed duration of one pass over all frames.
func (a Animation) Cycle() time.Duration {
	var total time.Duration
	for _, f := range a.Frames {
		total += f.Length()
	}
	return total
}

// Timed reports whether the first frame has a positive duration. Zero
// durations are passed through for the engine to interpret.
func (a Animation) Timed() bool {
	return len(a.Frames) > 0 && a.Frames[0].Duration > 0
}

type Frame struct {
	TileID int `json:"tile_id" yaml:"tile_id"`
	// Duration in milliseconds.
	Duration int `json:"duration" yaml:"duration"`
}

func (f Frame) Length() time.Duration {
	return time.Duration(f.Duration) * time.Millisecond
}

// Kind groups tiles by how a renderer batches them.
type Kind uint8

const (
	// KindStatic tiles are not declared and never change.
	KindStatic Kind = iota
	// KindDynamic tiles change individually: declared without a timed
	// animation.
	KindDynamic
	// KindGroup tiles share a timed animation and change together.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}
