package tileset

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// Load errors

	ErrParse  = errors.New("malformed tileset descriptor")
	ErrSchema = errors.New("invalid tileset schema")

	// Validation errors

	ErrDuplicateID      = errors.New("duplicate tile id")
	ErrTileOutOfRange   = errors.New("tile id out of range")
	ErrFrameOutOfRange  = errors.New("frame tile id out of range")
	ErrEmptyAnimation   = errors.New("empty animation")
	ErrNegativeDuration = errors.New("negative frame duration")
	ErrImageTooSmall    = errors.New("image smaller than tile grid")

	// Lookup errors

	ErrNoSuchTile = errors.New("no such tile")
)

// ParseError reports content that is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaError reports a missing or malformed attribute.
type SchemaError struct {
	// Element is the XML path of the offending element, e.g. "tileset/tile[3]".
	Element   string
	Attribute string
	Value     string
	Reason    string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(ErrSchema.Error())
	b.WriteString(": ")
	b.WriteString(e.Element)
	if e.Attribute != "" {
		b.WriteString("@")
		b.WriteString(e.Attribute)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %q)", e.Value)
	}
	return b.String()
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// ValidationError is one semantic invariant violation. Kind is one of the
// Err* validation sentinels.
type ValidationError struct {
	Kind error
	// TileID is the declared tile the violation was found on, or -1 for
	// sheet level findings.
	TileID int
	// FrameIndex is the offending frame, or -1.
	FrameIndex int
	Detail     string
}

func (e *ValidationError) Error() string {
	if e.TileID < 0 {
		return fmt.Sprintf("sheet: %v: %s", e.Kind, e.Detail)
	}
	if e.FrameIndex >= 0 {
		return fmt.Sprintf("tile %d frame %d: %v: %s", e.TileID, e.FrameIndex, e.Kind, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("tile %d: %v", e.TileID, e.Kind)
	}
	return fmt.Sprintf("tile %d: %v: %s", e.TileID, e.Kind, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// ValidationErrors is every violation found in one sheet, in discovery order.
type ValidationErrors []*ValidationError

// Err combines the findings into a single error, nil when there are none.
func (v ValidationErrors) Err() error {
	var err error
	for _, e := range v {
		err = multierr.Append(err, e)
	}
	return err
}

// Of returns the findings of the given kind.
func (v ValidationErrors) Of(kind error) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if errors.Is(e, kind) {
			out = append(out, e)
		}
	}
	return out
}
