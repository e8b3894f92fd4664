package app

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/irfansharif/tangram/internal/catalog"
	"github.com/irfansharif/tangram/internal/palette"
	"github.com/irfansharif/tangram/internal/render"
	"github.com/irfansharif/tangram/internal/snapshot"
)

// App encapsulates the main application state and logic.
type App struct {
	Catalog  *catalog.Catalog
	Renderer *render.Renderer
	View     *View

	seed int64 // palette seed; negative keeps catalog colors
}

// NewApp creates a new application instance. A non-negative seed replaces
// catalog colors with a random palette derived from it.
func NewApp(c *catalog.Catalog, view *View, seed int64) *App {
	opts := render.DefaultOptions
	opts.Width, opts.Height = view.Width, view.Height
	return &App{
		Catalog:  c,
		Renderer: render.NewRenderer(opts),
		View:     view,
		seed:     seed,
	}
}

// NewPuzzle starts a puzzle for the named shape. When encoded is non-empty
// it is a shared snapshot of the same dissection and supplies the target
// layout and colors instead.
func (app *App) NewPuzzle(shapeName, encoded string) (*Puzzle, error) {
	shape, err := app.Catalog.Shape(shapeName)
	if err != nil {
		return nil, err
	}

	transforms, pal := shape.Transforms, shape.Palette
	if app.seed >= 0 {
		pal = palette.RandomPalette(rand.New(rand.NewSource(app.seed)), shape.Dissection.TanCount())
	}
	if encoded != "" {
		s, err := snapshot.Decode(encoded, shape.Dissection)
		if err != nil {
			return nil, fmt.Errorf("decoding shared shape: %w", err)
		}
		transforms = s.Transforms
		pal = palette.Palette{Background: s.Background, Foreground: s.Foreground}
	}
	return NewPuzzle(shape.Dissection, transforms, pal)
}

// Share encodes the working tangram of p with the puzzle's colors.
func (app *App) Share(p *Puzzle) (string, error) {
	return snapshot.EncodeTangram(p.Actual, p.Palette.Background, p.Palette.Foreground)
}

// Render draws either the working tangram or the target of p through the
// current view.
func (app *App) Render(w io.Writer, p *Puzzle, target bool) error {
	// Sync renderer view state before drawing.
	app.Renderer.SetView(app.View.Width, app.View.Height, app.View.Zoom, app.View.PanX, app.View.PanY)

	tg := p.Actual
	if target {
		tg = p.Target
	}
	return app.Renderer.PNG(w, tg, p.Palette.Background, p.Palette.Foreground)
}
