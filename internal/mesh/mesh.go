// Package mesh turns the tans of a tangram into triangle lists for renderers
// that only draw triangles.
package mesh

import (
	"math"

	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
)

// FloatsPerVertex is the stride of Vertices: x, y, r, g, b, a.
const FloatsPerVertex = 6

// Mesh is the world-space triangulation of one tan.
type Mesh struct {
	Index     int // tan index
	Active    bool
	Triangles [][3]geom.Point
	Area      float64
}

// Triangulate splits a polygon into triangles.
func Triangulate(points []geom.Point) ([][3]geom.Point, error) {
	return earClip(points)
}

// Build triangulates every tan at its current pose.
func Build(tg *tangram.Tangram) ([]Mesh, error) {
	meshes := make([]Mesh, 0, len(tg.Tans()))
	for _, tan := range tg.Tans() {
		triangles, err := earClip(tan.Points())
		if err != nil {
			return nil, err
		}
		m := Mesh{Index: tan.Index(), Active: tan.Active, Triangles: triangles}
		for _, tri := range triangles {
			m.Area += math.Abs(geom.Cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0]))) / 2
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// Vertices appends the mesh to vertices as interleaved position and color
// attributes, three vertices per triangle (no deduplication).
func (m Mesh) Vertices(vertices []float32, c palette.Color) []float32 {
	r, g, b := float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0
	for _, tri := range m.Triangles {
		for v := 0; v < 3; v++ {
			vertices = append(vertices,
				float32(tri[v].X), float32(tri[v].Y), // position
				r, g, b, 1, // color
			)
		}
	}
	return vertices
}
