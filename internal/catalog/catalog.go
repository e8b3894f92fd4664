// Package catalog holds the library of dissections and target shapes a
// puzzle can be started from. The default library is embedded; an
// alternative one can be loaded from any JSON document with the same layout.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
)

//go:embed data/catalog.json
var defaultCatalog []byte

var (
	ErrUnknownDissection = errors.New("unknown dissection")
	ErrUnknownShape      = errors.New("unknown shape")
	ErrMalformed         = errors.New("malformed catalog")
)

// Shape is a named target silhouette: a dissection, the placement of each of
// its tans and the colors it is shown in.
type Shape struct {
	Name       string
	Dissection *tangram.Dissection
	Transforms []tangram.Transform
	Palette    palette.Palette
}

// Tangram places a fresh tangram in the shape's layout.
func (s *Shape) Tangram() (*tangram.Tangram, error) {
	return tangram.CreateShape(s.Dissection, s.Transforms)
}

// Catalog is an immutable set of dissections and shapes. Shapes keep the
// order they were listed in.
type Catalog struct {
	dissections map[int]*tangram.Dissection
	shapes      []*Shape
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

type rawDissection struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Vertices []float64 `json:"vertices"` // flat [x0,y0,x1,y1,...]
	Polygons [][]int   `json:"polygons"`
}

type rawShape struct {
	Name       string    `json:"name"`
	Dissection int       `json:"dissection"`
	Transforms []float64 `json:"transforms"` // flat [x0,y0,rot0,x1,...]
	Background string    `json:"background"`
	Foreground []string  `json:"foreground"`
}

type rawCatalog struct {
	Dissections []rawDissection `json:"dissections"`
	Shapes      []rawShape      `json:"shapes"`
}

func convertFlatToPoints(flat []float64) ([]geom.Point, error) {
	if len(flat)%2 != 0 {
		return nil, fmt.Errorf("%w: odd coordinate count %d", ErrMalformed, len(flat))
	}
	points := make([]geom.Point, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		points[i/2] = geom.MakePoint(flat[i], flat[i+1])
	}
	return points, nil
}

func convertFlatToTransforms(flat []float64) ([]tangram.Transform, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%w: transform values %d not a multiple of 3", ErrMalformed, len(flat))
	}
	transforms := make([]tangram.Transform, len(flat)/3)
	for i := 0; i < len(flat); i += 3 {
		transforms[i/3] = tangram.Transform{
			Position: geom.MakePoint(flat[i], flat[i+1]),
			Rotation: flat[i+2],
		}
	}
	return transforms, nil
}

// Load parses and validates a catalog.
func Load(r io.Reader) (*Catalog, error) {
	var raw rawCatalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c := &Catalog{dissections: make(map[int]*tangram.Dissection)}
	for _, rd := range raw.Dissections {
		if _, ok := c.dissections[rd.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate dissection %d", ErrMalformed, rd.ID)
		}
		d, err := convertRawDissection(rd)
		if err != nil {
			return nil, fmt.Errorf("dissection %d: %w", rd.ID, err)
		}
		c.dissections[rd.ID] = d
	}

	for _, rs := range raw.Shapes {
		if _, err := c.Shape(rs.Name); err == nil {
			return nil, fmt.Errorf("%w: duplicate shape %q", ErrMalformed, rs.Name)
		}
		s, err := c.convertRawShape(rs)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", rs.Name, err)
		}
		c.shapes = append(c.shapes, s)
	}
	return c, nil
}

func convertRawDissection(raw rawDissection) (*tangram.Dissection, error) {
	vertices, err := convertFlatToPoints(raw.Vertices)
	if err != nil {
		return nil, err
	}
	d, err := tangram.NewDissection(raw.ID, vertices, raw.Polygons)
	if err != nil {
		return nil, err
	}
	// Catch bad winding or concave pieces at load time.
	if _, err := tangram.NewTangram(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *Catalog) convertRawShape(raw rawShape) (*Shape, error) {
	d, err := c.Dissection(raw.Dissection)
	if err != nil {
		return nil, err
	}
	s := &Shape{Name: raw.Name, Dissection: d, Palette: palette.MonochromePalette(d.TanCount())}

	if len(raw.Transforms) == 0 {
		// The dissection's own layout.
		tg, err := tangram.NewTangram(d)
		if err != nil {
			return nil, err
		}
		s.Transforms = tg.Transforms()
	} else if s.Transforms, err = convertFlatToTransforms(raw.Transforms); err != nil {
		return nil, err
	}
	if len(s.Transforms) != d.TanCount() {
		return nil, fmt.Errorf("%w: %d transforms, %d tans", tangram.ErrTransformCount, len(s.Transforms), d.TanCount())
	}

	if raw.Background != "" {
		if s.Palette.Background, err = palette.ParseHex(raw.Background); err != nil {
			return nil, err
		}
	}
	if len(raw.Foreground) != 0 {
		if len(raw.Foreground) != d.TanCount() {
			return nil, fmt.Errorf("%w: %d foreground colors, %d tans", ErrMalformed, len(raw.Foreground), d.TanCount())
		}
		for i, hex := range raw.Foreground {
			if s.Palette.Foreground[i], err = palette.ParseHex(hex); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Dissection looks up a dissection by id.
func (c *Catalog) Dissection(id int) (*tangram.Dissection, error) {
	d, ok := c.dissections[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDissection, id)
	}
	return d, nil
}

// Shape looks up a shape by name.
func (c *Catalog) Shape(name string) (*Shape, error) {
	for _, s := range c.shapes {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Shapes lists every shape in catalog order.
func (c *Catalog) Shapes() []*Shape { return c.shapes }
