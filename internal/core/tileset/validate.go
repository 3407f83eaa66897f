package tileset

import "fmt"

// Validate checks the sheet invariants and returns every violation found,
// in declaration order. It does not stop at the first problem. Work is
// linear in tiles plus frames.
func Validate(s *Sheet) ValidationErrors {
	var errs ValidationErrors

	if s.Image.Width > 0 && s.Image.Height > 0 {
		need := s.gridSize()
		if need.X > s.Image.Width || need.Y > s.Image.Height {
			errs = append(errs, &ValidationError{
				Kind:       ErrImageTooSmall,
				TileID:     -1,
				FrameIndex: -1,
				Detail: fmt.Sprintf("grid needs %dx%d, image is %dx%d",
					need.X, need.Y, s.Image.Width, s.Image.Height),
			})
		}
	}

	seen := make(map[int]int, len(s.Tiles))
	for _, tile := range s.Tiles {
		seen[tile.ID]++
		if seen[tile.ID] == 2 {
			errs = append(errs, &ValidationError{
				Kind:       ErrDuplicateID,
				TileID:     tile.ID,
				FrameIndex: -1,
			})
		}

		if !s.Contains(tile.ID) {
			errs = append(errs, &ValidationError{
				Kind:       ErrTileOutOfRange,
				TileID:     tile.ID,
				FrameIndex: -1,
				Detail:     fmt.Sprintf("not in [0,%d)", s.TileCount),
			})
		}

		if tile.Animation == nil {
			continue
		}
		if tile.Animation.Len() == 0 {
			errs = append(errs, &ValidationError{
				Kind:       ErrEmptyAnimation,
				TileID:     tile.ID,
				FrameIndex: -1,
			})
			continue
		}
		for i, frame := range tile.Animation.Frames {
			if !s.Contains(frame.TileID) {
				errs = append(errs, &ValidationError{
					Kind:       ErrFrameOutOfRange,
					TileID:     tile.ID,
					FrameIndex: i,
					Detail:     fmt.Sprintf("tileid %d not in [0,%d)", frame.TileID, s.TileCount),
				})
			}
			if frame.Duration < 0 {
				errs = append(errs, &ValidationError{
					Kind:       ErrNegativeDuration,
					TileID:     tile.ID,
					FrameIndex: i,
					Detail:     fmt.Sprintf("duration %d", frame.Duration),
				})
			}
		}
	}

	return errs
}

// Validate is shorthand for Validate(s).
func (s *Sheet) Validate() ValidationErrors {
	return Validate(s)
}
