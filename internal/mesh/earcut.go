package mesh

import (
	"errors"
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/tangram/internal/geom"
)

var ErrDegenerate = errors.New("degenerate polygon")

// earClip triangulates a polygon using the earcut algorithm. It takes in a list
// of polygon vertices (the winding doesn't matter) and returns a slice of
// triangles, each represented as a [3]geom.Point.
func earClip(polygonPoints []geom.Point) ([][3]geom.Point, error) {
	if len(polygonPoints) < 3 {
		return nil, fmt.Errorf("%w: %d vertices < 3", ErrDegenerate, len(polygonPoints))
	}

	// Format: [x0, y0, x1, y1, ..., xn, yn]
	vertexCoords := make([]float64, len(polygonPoints)*2)
	for i, point := range polygonPoints {
		vertexCoords[i*2] = point.X
		vertexCoords[i*2+1] = point.Y
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(polygonPoints), err)
	}
	if len(triangleIndices) == 0 || len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d triangle indices", ErrDegenerate, len(triangleIndices))
	}

	triangles := make([][3]geom.Point, len(triangleIndices)/3)
	for i := range triangles {
		base := i * 3
		triangles[i] = [3]geom.Point{
			polygonPoints[triangleIndices[base]],
			polygonPoints[triangleIndices[base+1]],
			polygonPoints[triangleIndices[base+2]],
		}
	}
	return triangles, nil
}
