package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/irfansharif/tangram/internal/app"
	"github.com/irfansharif/tangram/internal/export"
	"github.com/irfansharif/tangram/internal/mesh"
	"github.com/irfansharif/tangram/internal/snapshot"
	"github.com/irfansharif/tangram/internal/tangram"
)

var errNotFull = errors.New("shape is not complete")

type command func(application *app.App, args []string, out io.Writer) error

var commands = map[string]command{
	"encode":  runEncode,
	"decode":  runDecode,
	"render":  runRender,
	"mesh":    runMesh,
	"geojson": runGeoJSON,
	"check":   runCheck,
}

// puzzleFlags are shared by every command that starts from a shape.
type puzzleFlags struct {
	shape string
	text  string
}

func (pf *puzzleFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&pf.shape, "shape", "square", "catalog shape (and dissection) to start from")
	fs.StringVar(&pf.text, "text", "", "shared text replacing the shape's layout and colors")
}

// puzzle builds the puzzle described by the flags, with every tan placed on
// the target.
func (pf *puzzleFlags) puzzle(application *app.App) (*app.Puzzle, error) {
	startTime := time.Now()
	p, err := application.NewPuzzle(pf.shape, pf.text)
	if err != nil {
		return nil, err
	}
	p.Solve()
	runtimeLogger.Printf("built puzzle %q in %s", pf.shape, time.Since(startTime))
	return p, nil
}

func runEncode(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.puzzle(application)
	if err != nil {
		return err
	}
	text, err := application.Share(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func runDecode(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if pf.text == "" {
		return errors.New("-text is required")
	}

	shape, err := application.Catalog.Shape(pf.shape)
	if err != nil {
		return err
	}
	s, err := snapshot.Decode(pf.text, shape.Dissection)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "dissection %d, background %s\n", s.Dissection.ID, s.Background)
	for i, tr := range s.Transforms {
		fmt.Fprintf(out, "tan %d: position (%.4f, %.4f) rotation %.2f color %s\n",
			i, tr.Position.X, tr.Position.Y, tr.Rotation, s.Foreground[i])
	}
	return nil
}

func runRender(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	output := fs.String("out", "tangram.png", "PNG file to write")
	size := fs.Int("size", 512, "image width and height in pixels")
	zoom := fs.Float64("zoom", 1, "zoom factor, clamped to the view's range")
	staged := fs.Bool("staged", false, "draw the working tangram with every tan staged instead of the solution")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := application.NewPuzzle(pf.shape, pf.text)
	if err != nil {
		return err
	}
	if !*staged {
		p.Solve()
	}
	application.View.SetViewport(*size, *size)
	application.View.SetZoom(*zoom)

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := application.Render(f, p, false); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	stats := application.Renderer.Stats()
	runtimeLogger.Printf("rendered %d tans in %s", stats.Tans, stats.LastDrawTime)
	_, err = fmt.Fprintf(out, "wrote %s\n", *output)
	return err
}

func runMesh(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mesh", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.puzzle(application)
	if err != nil {
		return err
	}
	meshes, err := mesh.Build(p.Actual)
	if err != nil {
		return err
	}
	total := 0.0
	for _, m := range meshes {
		fmt.Fprintf(out, "tan %d: %d triangles, area %.6f\n", m.Index, len(m.Triangles), m.Area)
		for _, tri := range m.Triangles {
			fmt.Fprintf(out, "  (%.4f, %.4f) (%.4f, %.4f) (%.4f, %.4f)\n",
				tri[0].X, tri[0].Y, tri[1].X, tri[1].Y, tri[2].X, tri[2].Y)
		}
		total += m.Area
	}
	_, err = fmt.Fprintf(out, "total area %.6f\n", total)
	return err
}

func runGeoJSON(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("geojson", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.puzzle(application)
	if err != nil {
		return err
	}
	data, err := export.GeoJSON(p.Actual, p.Palette.Foreground)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func runCheck(application *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var pf puzzleFlags
	pf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.puzzle(application)
	if err != nil {
		return err
	}
	overlaps := 0
	for _, tan := range p.Actual.Tans() {
		collisions := p.Actual.ComputeCollisions(tan)
		if len(collisions) > 0 && collisions[0].Penetration > tangram.CollisionEps {
			fmt.Fprintf(out, "tan %d overlaps tan %d by %.6f\n", tan.Index(), collisions[0].Other, collisions[0].Penetration)
			overlaps++
		}
	}
	if overlaps > 0 || !p.Solved() {
		return fmt.Errorf("%w: %d overlapping tans", errNotFull, overlaps)
	}
	_, err = fmt.Fprintln(out, "ok")
	return err
}
