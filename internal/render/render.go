// Package render draws a tangram into a PNG image.
//
// It:
// 1. Maps the tangram's bounding box into the image, y axis pointing up.
// 2. Applies the view's zoom and pan in image space.
// 3. Fills active tans with their color and outlines staged (inactive) ones.
package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/irfansharif/tangram/internal/geom"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/tangram"
)

var ErrColorCount = errors.New("foreground color count should be equal to tan count")

func init() {
	if os.Getenv("TANGRAM_DEBUG_RENDER") == "1" {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// Options describe the output image and the view onto the tangram.
type Options struct {
	Width, Height int
	Margin        float64 // fraction of each side left empty around the shape
	Zoom          float64
	PanX, PanY    float64 // in pixels, applied after zoom
	OutlineWidth  float64 // in pixels
}

var DefaultOptions = Options{
	Width:        512,
	Height:       512,
	Margin:       0.1,
	Zoom:         1,
	OutlineWidth: 2,
}

type Renderer struct {
	w, h             int
	zoom, panX, panY float64
	margin           float64
	outlineWidth     float64

	stats Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastDrawTime time.Duration
	Tans         int // tans drawn in the last call
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		margin:       opts.Margin,
		outlineWidth: opts.OutlineWidth,
	}
	r.SetView(opts.Width, opts.Height, opts.Zoom, opts.PanX, opts.PanY)
	return r
}

func (r *Renderer) SetView(w, h int, zoom, panX, panY float64) {
	r.w, r.h = w, h
	r.zoom = zoom
	r.panX, r.panY = panX, panY
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// PNG renders tg with the given colors (one foreground color per tan) and
// writes it to w as a PNG.
func PNG(w io.Writer, tg *tangram.Tangram, background palette.Color, foreground []palette.Color, opts Options) error {
	return NewRenderer(opts).PNG(w, tg, background, foreground)
}

func (r *Renderer) PNG(w io.Writer, tg *tangram.Tangram, background palette.Color, foreground []palette.Color) error {
	dc, err := r.Draw(tg, background, foreground)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// Draw rasterizes tg into a new context. The caller owns the context and
// must close it.
func (r *Renderer) Draw(tg *tangram.Tangram, background palette.Color, foreground []palette.Color) (*gg.Context, error) {
	startTime := time.Now()

	if r.w <= 0 || r.h <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", r.w, r.h)
	}
	if len(foreground) != len(tg.Tans()) {
		return nil, fmt.Errorf("%w: %d colors, %d tans", ErrColorCount, len(foreground), len(tg.Tans()))
	}
	worldToImage, err := r.WorldToImage(tg.ComputeAABB())
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(r.w, r.h)
	dc.ClearWithColor(gg.FromColor(background.RGBA()))

	for _, tan := range tg.Tans() {
		c := foreground[tan.Index()]
		if tan.Active {
			tracePath(dc, worldToImage, tan.Points())
			dc.SetColor(c.RGBA())
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("filling tan %d: %w", tan.Index(), err)
			}
			c = palette.Shade(c, 0.8)
		}
		tracePath(dc, worldToImage, tan.Points())
		dc.SetColor(c.RGBA())
		dc.SetLineWidth(r.outlineWidth)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("outlining tan %d: %w", tan.Index(), err)
		}
	}

	r.stats = Stats{LastDrawTime: time.Since(startTime), Tans: len(tg.Tans())}
	return dc, nil
}

func tracePath(dc *gg.Context, t geom.Affine, points []geom.Point) {
	for i, p := range points {
		q := t.MulPoint(p)
		if i == 0 {
			dc.MoveTo(q.X, q.Y)
		} else {
			dc.LineTo(q.X, q.Y)
		}
	}
	dc.ClosePath()
}

// WorldToImage computes the complete transformation from tangram
// coordinates to image pixels.
func (r *Renderer) WorldToImage(bounds geom.Bounds) (geom.Affine, error) {
	marginX, marginY := r.margin*float64(r.w), r.margin*float64(r.h)
	inner := geom.MakeBox(marginX, marginY, float64(r.w)-2*marginX, float64(r.h)-2*marginY)
	fit, err := geom.FillBox(bounds.Box(), inner, false)
	if err != nil {
		return geom.Affine{}, fmt.Errorf("fitting tangram into image: %w", err)
	}

	transform := r.applyFlipTransform(fit)
	transform = r.applyZoomTransform(transform)
	transform = r.applyPanTransform(transform)
	return transform, nil
}

// applyFlipTransform turns the y-up world into the y-down image.
func (r *Renderer) applyFlipTransform(baseTransform geom.Affine) geom.Affine {
	flip := geom.MakeAffine(1, 0, 0, 0, -1, float64(r.h))
	return flip.Mul(baseTransform)
}

// applyZoomTransform applies zoom scaling around the image center.
func (r *Renderer) applyZoomTransform(baseTransform geom.Affine) geom.Affine {
	viewportCenterX := float64(r.w) / 2.0
	viewportCenterY := float64(r.h) / 2.0

	translateToOrigin := geom.MakeAffine(1, 0, -viewportCenterX, 0, 1, -viewportCenterY)
	uniformScale := geom.MakeAffine(r.zoom, 0, 0, 0, r.zoom, 0)
	translateBack := geom.MakeAffine(1, 0, viewportCenterX, 0, 1, viewportCenterY)

	return translateBack.Mul(uniformScale.Mul(translateToOrigin.Mul(baseTransform)))
}

// applyPanTransform applies pan translation in image space.
func (r *Renderer) applyPanTransform(baseTransform geom.Affine) geom.Affine {
	panTranslation := geom.MakeAffine(1, 0, r.panX, 0, 1, r.panY)
	return panTranslation.Mul(baseTransform)
}
