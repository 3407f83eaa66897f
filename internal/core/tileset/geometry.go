package tileset

import (
	"fmt"
	"image"
)

// Rows is the number of grid rows implied by TileCount and Columns.
func (s *Sheet) Rows() int {
	if s.Columns <= 0 {
		return 0
	}
	return (s.TileCount + s.Columns - 1) / s.Columns
}

// Contains reports whether id addresses a tile of this sheet.
func (s *Sheet) Contains(id int) bool {
	return id >= 0 && id < s.TileCount
}

// Bounds returns the pixel rectangle of tile id inside the sheet image.
// Tiles are laid out row-major, Columns per row, after Margin and with
// Spacing between neighbours.
func (s *Sheet) Bounds(id int) (image.Rectangle, error) {
	if !s.Contains(id) {
		return image.Rectangle{}, fmt.Errorf("%w: %d not in [0,%d)", ErrNoSuchTile, id, s.TileCount)
	}
	col := id % s.Columns
	row := id / s.Columns
	x := s.Margin + col*(s.TileWidth+s.Spacing)
	y := s.Margin + row*(s.TileHeight+s.Spacing)
	return image.Rect(x, y, x+s.TileWidth, y+s.TileHeight), nil
}

// gridSize returns the pixel extent needed to hold every tile. Only the
// leading margin counts; Tiled does not require one after the last tile.
func (s *Sheet) gridSize() image.Point {
	rows := s.Rows()
	if rows == 0 {
		return image.Point{}
	}
	w := s.Margin + s.Columns*s.TileWidth + (s.Columns-1)*s.Spacing
	h := s.Margin + rows*s.TileHeight + (rows-1)*s.Spacing
	return image.Pt(w, h)
}
