package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zeusync/tileset/internal/core/tileset"
	"gopkg.in/yaml.v3"
)

type report struct {
	Source   string `json:"source" yaml:"source"`
	FirstGID uint32 `json:"firstgid,omitempty" yaml:"firstgid,omitempty"`
	// ImagePath is the sheet image resolved against Source, when known.
	ImagePath string                   `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Sheet     *tileset.Sheet           `json:"sheet" yaml:"sheet"`
	Issues    tileset.ValidationErrors `json:"-" yaml:"-"`
	// Messages mirrors Issues for encoding; the sentinel kinds do not
	// marshal.
	Messages []string `json:"issues" yaml:"issues"`
}

func (r report) encodable() report {
	r.Messages = make([]string, len(r.Issues))
	for i, e := range r.Issues {
		r.Messages[i] = e.Error()
	}
	return r
}

type reporter interface {
	report(r report) error
}

func newReporter(format string, w io.Writer) (reporter, error) {
	switch format {
	case "text", "":
		return textReporter{w: w}, nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return jsonReporter{enc: enc}, nil
	case "yaml":
		return yamlReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type jsonReporter struct {
	enc *json.Encoder
}

func (j jsonReporter) report(r report) error {
	return j.enc.Encode(r.encodable())
}

type yamlReporter struct {
	w io.Writer
}

func (y yamlReporter) report(r report) error {
	out, err := yaml.Marshal(r.encodable())
	if err != nil {
		return err
	}
	if _, err = io.WriteString(y.w, "---\n"); err != nil {
		return err
	}
	_, err = y.w.Write(out)
	return err
}

type textReporter struct {
	w io.Writer
}

func (t textReporter) report(r report) error {
	s := r.Sheet
	reg := tileset.NewRegistry(s)

	var b strings.Builder
	b.WriteString(r.Source)
	if r.FirstGID > 0 {
		fmt.Fprintf(&b, " (firstgid %d)", r.FirstGID)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  name:       %s (tiled %s, format %s)\n", s.Name, s.TiledVersion, s.Version)
	fmt.Fprintf(&b, "  grid:       %dx%d of %dx%d px, %d tiles\n", s.Columns, s.Rows(), s.TileWidth, s.TileHeight, s.TileCount)
	img := s.Image.Source
	if r.ImagePath != "" {
		img = r.ImagePath
	}
	fmt.Fprintf(&b, "  image:      %s", img)
	if s.Image.Width > 0 {
		fmt.Fprintf(&b, " (%dx%d)", s.Image.Width, s.Image.Height)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  checksum:   %016x\n", s.Checksum)

	types := reg.Types()
	parts := make([]string, 0, len(types))
	for _, typ := range types {
		parts = append(parts, fmt.Sprintf("%s %v", typ, reg.TilesOfType(typ)))
	}
	fmt.Fprintf(&b, "  types:      %s\n", orNone(parts))

	animated := reg.Animated()
	parts = parts[:0]
	for _, id := range animated {
		anim, _ := reg.Animation(id)
		if anim.Timed() {
			parts = append(parts, fmt.Sprintf("%d (%d frames, %s %s)", id, anim.Len(), anim.Cycle(), reg.Kind(id)))
		} else {
			parts = append(parts, fmt.Sprintf("%d (%d frames, untimed %s)", id, anim.Len(), reg.Kind(id)))
		}
	}
	fmt.Fprintf(&b, "  animations: %s\n", orNone(parts))

	if len(r.Issues) == 0 {
		b.WriteString("  issues:     none\n")
	} else {
		fmt.Fprintf(&b, "  issues:     %d\n", len(r.Issues))
		for _, e := range r.Issues {
			fmt.Fprintf(&b, "    - %s\n", e)
		}
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func orNone(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
