package tileset

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/zeusync/tileset/internal/core/observability/log"
)

const rootElement = "tileset"

// Raw document shape. Attributes are captured generically so a missing
// attribute can be told apart from an empty one.
type (
	xmlAttrs []xml.Attr

	xmlTileset struct {
		XMLName xml.Name
		Attrs   xmlAttrs  `xml:",any,attr"`
		Image   *xmlImage `xml:"image"`
		Tiles   []xmlTile `xml:"tile"`
	}

	xmlImage struct {
		Attrs xmlAttrs `xml:",any,attr"`
	}

	xmlTile struct {
		Attrs      xmlAttrs      `xml:",any,attr"`
		Animation  *xmlAnimation `xml:"animation"`
		Properties []xmlProperty `xml:"properties>property"`
	}

	xmlAnimation struct {
		Frames []xmlFrame `xml:"frame"`
	}

	xmlFrame struct {
		Attrs xmlAttrs `xml:",any,attr"`
	}

	xmlProperty struct {
		Name  string  `xml:"name,attr"`
		Value *string `xml:"value,attr"`
		Text  string  `xml:",chardata"`
	}
)

func (a xmlAttrs) get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Loader parses tileset descriptors and logs each load.
type Loader struct {
	logger log.Log
}

func NewLoader(logger log.Log) *Loader {
	if logger == nil {
		logger = log.Nop()
	}
	return &Loader{logger: logger}
}

var defaultLoader = NewLoader(log.Nop())

// Load parses a descriptor from r without logging.
func Load(r io.Reader) (*Sheet, error) {
	return defaultLoader.Load(r)
}

// LoadFile parses the descriptor at path without logging.
func LoadFile(path string) (*Sheet, error) {
	return defaultLoader.LoadFile(path)
}

// Load reads r to the end and parses it. On failure no sheet is returned.
// Failures are *ParseError or *SchemaError, except read errors which are
// returned wrapped.
func (l *Loader) Load(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tileset: %w", err)
	}
	return l.load(data, l.logger.With(log.String("load_id", uuid.NewString())))
}

func (l *Loader) LoadFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tileset: %w", err)
	}
	logger := l.logger.With(
		log.String("load_id", uuid.NewString()),
		log.String("path", path),
	)
	sheet, err := l.load(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

func (l *Loader) load(data []byte, logger log.Log) (*Sheet, error) {
	start := time.Now()
	sheet, err := Decode(data)
	if err != nil {
		logger.Warn("tileset load failed", log.Error(err), log.Int("bytes", len(data)))
		return nil, err
	}
	logger.Debug("tileset loaded",
		log.String("name", sheet.Name),
		log.Int("tiles", len(sheet.Tiles)),
		log.Int("tile_count", sheet.TileCount),
		log.Uint64("checksum", sheet.Checksum),
		log.Duration("elapsed", time.Since(start)),
	)
	return sheet, nil
}

// Decode parses descriptor bytes in a single pass over the tile
// declarations.
func Decode(data []byte) (*Sheet, error) {
	var doc xmlTileset
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ParseError{Err: err}
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	if doc.XMLName.Local != rootElement {
		return nil, &SchemaError{
			Element: doc.XMLName.Local,
			Reason:  "root element must be <" + rootElement + ">",
		}
	}

	sheet := &Sheet{Checksum: xxhash.Sum64(data)}
	sheet.Name, _ = doc.Attrs.get("name")
	sheet.Version, _ = doc.Attrs.get("version")
	sheet.TiledVersion, _ = doc.Attrs.get("tiledversion")

	var err error
	if sheet.TileWidth, err = positiveAttr(doc.Attrs, rootElement, "tilewidth"); err != nil {
		return nil, err
	}
	if sheet.TileHeight, err = positiveAttr(doc.Attrs, rootElement, "tileheight"); err != nil {
		return nil, err
	}
	if sheet.Columns, err = positiveAttr(doc.Attrs, rootElement, "columns"); err != nil {
		return nil, err
	}
	if sheet.TileCount, err = positiveAttr(doc.Attrs, rootElement, "tilecount"); err != nil {
		return nil, err
	}
	if sheet.Spacing, err = optionalIntAttr(doc.Attrs, rootElement, "spacing"); err != nil {
		return nil, err
	}
	if sheet.Margin, err = optionalIntAttr(doc.Attrs, rootElement, "margin"); err != nil {
		return nil, err
	}

	if sheet.Image, err = decodeImage(doc.Image); err != nil {
		return nil, err
	}

	sheet.Tiles = make([]Tile, 0, len(doc.Tiles))
	for i, raw := range doc.Tiles {
		tile, err := decodeTile(raw, fmt.Sprintf("%s/tile[%d]", rootElement, i))
		if err != nil {
			return nil, err
		}
		sheet.Tiles = append(sheet.Tiles, tile)
	}

	return sheet, nil
}

// expectEOF drains dec after the root element. Only whitespace, comments
// and processing instructions may follow it.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &ParseError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return &ParseError{Err: fmt.Errorf("unexpected <%s> after root element", t.Name.Local)}
		case xml.EndElement:
			return &ParseError{Err: fmt.Errorf("unexpected </%s> after root element", t.Name.Local)}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return &ParseError{Err: errors.New("unexpected text after root element")}
			}
		}
	}
}

func decodeImage(raw *xmlImage) (Image, error) {
	const element = rootElement + "/image"
	if raw == nil {
		return Image{}, &SchemaError{Element: element, Reason: "missing element"}
	}
	var img Image
	source, ok := raw.Attrs.get("source")
	if !ok || source == "" {
		return Image{}, &SchemaError{Element: element, Attribute: "source", Reason: "required"}
	}
	img.Source = source

	var err error
	if img.Width, err = optionalIntAttr(raw.Attrs, element, "width"); err != nil {
		return Image{}, err
	}
	if img.Height, err = optionalIntAttr(raw.Attrs, element, "height"); err != nil {
		return Image{}, err
	}
	return img, nil
}

func decodeTile(raw xmlTile, element string) (Tile, error) {
	id, err := intAttr(raw.Attrs, element, "id")
	if err != nil {
		return Tile{}, err
	}
	tile := Tile{ID: id}
	// Tiled 1.9 renamed the tile type attribute to class.
	if typ, ok := raw.Attrs.get("type"); ok {
		tile.Type = typ
	} else {
		tile.Type, _ = raw.Attrs.get("class")
	}

	if raw.Animation != nil {
		anim := &Animation{Frames: make([]Frame, 0, len(raw.Animation.Frames))}
		for j, rf := range raw.Animation.Frames {
			frameElement := fmt.Sprintf("%s/animation/frame[%d]", element, j)
			tileID, err := intAttr(rf.Attrs, frameElement, "tileid")
			if err != nil {
				return Tile{}, err
			}
			duration, err := intAttr(rf.Attrs, frameElement, "duration")
			if err != nil {
				return Tile{}, err
			}
			anim.Frames = append(anim.Frames, Frame{TileID: tileID, Duration: duration})
		}
		tile.Animation = anim
	}

	if len(raw.Properties) > 0 {
		tile.Properties = make(map[string]string, len(raw.Properties))
		for _, p := range raw.Properties {
			if p.Name == "" {
				return Tile{}, &SchemaError{Element: element + "/properties/property", Attribute: "name", Reason: "required"}
			}
			if p.Value != nil {
				tile.Properties[p.Name] = *p.Value
			} else {
				tile.Properties[p.Name] = p.Text
			}
		}
	}

	return tile, nil
}

func intAttr(attrs xmlAttrs, element, name string) (int, error) {
	raw, ok := attrs.get(name)
	if !ok {
		return 0, &SchemaError{Element: element, Attribute: name, Reason: "required"}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &SchemaError{Element: element, Attribute: name, Value: raw, Reason: "not an integer"}
	}
	return v, nil
}

func positiveAttr(attrs xmlAttrs, element, name string) (int, error) {
	v, err := intAttr(attrs, element, name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		raw, _ := attrs.get(name)
		return 0, &SchemaError{Element: element, Attribute: name, Value: raw, Reason: "must be positive"}
	}
	return v, nil
}

func optionalIntAttr(attrs xmlAttrs, element, name string) (int, error) {
	if _, ok := attrs.get(name); !ok {
		return 0, nil
	}
	return intAttr(attrs, element, name)
}
