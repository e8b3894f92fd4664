// Package export writes assembled tangrams in formats other tools can read.
package export

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
)

var ErrColorCount = errors.New("foreground color count should be equal to tan count")

// Features returns one Polygon feature per tan, in z-order. Rings are closed
// and wound counter-clockwise.
func Features(tg *tangram.Tangram, foreground []palette.Color) (*geojson.FeatureCollection, error) {
	tans := tg.Tans()
	if len(foreground) != len(tans) {
		return nil, fmt.Errorf("%w: %d colors, %d tans", ErrColorCount, len(foreground), len(tans))
	}

	fc := geojson.NewFeatureCollection()
	var bound orb.Bound
	for i, tan := range tans {
		points := tan.Points()
		ring := make(orb.Ring, 0, len(points)+1)
		for i := len(points) - 1; i >= 0; i-- {
			ring = append(ring, orb.Point{points[i].X, points[i].Y})
		}
		ring = append(ring, ring[0])
		polygon := orb.Polygon{ring}

		feature := geojson.NewFeature(polygon)
		feature.ID = tan.Index()
		feature.BBox = geojson.NewBBox(polygon.Bound())
		feature.Properties = geojson.Properties{
			"index":    tan.Index(),
			"active":   tan.Active,
			"rotation": tan.Rotation(),
			"color":    foreground[tan.Index()].Hex(),
			"area":     planar.Area(polygon),
		}
		fc.Append(feature)

		if i == 0 {
			bound = polygon.Bound()
		} else {
			bound = bound.Union(polygon.Bound())
		}
	}
	if len(tans) > 0 {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc, nil
}

// GeoJSON encodes Features as a GeoJSON document.
func GeoJSON(tg *tangram.Tangram, foreground []palette.Color) ([]byte, error) {
	fc, err := Features(tg, foreground)
	if err != nil {
		return nil, err
	}
	return fc.MarshalJSON()
}
