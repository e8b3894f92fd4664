package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irfansharif/tangram/internal/app"
	"github.com/irfansharif/tangram/internal/catalog"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default(): %v", err)
	}
	return app.NewApp(c, app.NewView(64, 64), -1)
}

func run(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := commands[name](newTestApp(t), args, &out)
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	text, err := run(t, "encode", "-shape", "diamond")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		t.Fatal("encode printed nothing")
	}

	out, err := run(t, "decode", "-shape", "diamond", "-text", text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out, "dissection 0, background #fdf6e3\n") {
		t.Errorf("decode header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if got := strings.Count(out, "\ntan "); got != 7 {
		t.Errorf("decode printed %d tans, want 7", got)
	}

	if _, err := run(t, "decode", "-shape", "diamond"); err == nil {
		t.Error("decode without -text should fail")
	}
	if _, err := run(t, "decode", "-shape", "diamond", "-text", text[:len(text)-2]); err == nil {
		t.Error("decode of a truncated text should fail")
	}
}

func TestCheck(t *testing.T) {
	for _, shape := range []string{"square", "diamond"} {
		out, err := run(t, "check", "-shape", shape)
		if err != nil {
			t.Errorf("check %s: %v\n%s", shape, err, out)
			continue
		}
		if out != "ok\n" {
			t.Errorf("check %s = %q, want ok", shape, out)
		}
	}
	if _, err := run(t, "check", "-shape", "hexagon"); !errors.Is(err, catalog.ErrUnknownShape) {
		t.Errorf("check unknown shape err = %v, want %v", err, catalog.ErrUnknownShape)
	}
}

func TestMesh(t *testing.T) {
	out, err := run(t, "mesh", "-shape", "square")
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	if !strings.HasSuffix(out, "total area 1.000000\n") {
		t.Errorf("mesh output ends with %q", out[strings.LastIndex(strings.TrimSuffix(out, "\n"), "\n")+1:])
	}
}

func TestGeoJSON(t *testing.T) {
	out, err := run(t, "geojson", "-shape", "square")
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	if !strings.Contains(out, `"FeatureCollection"`) {
		t.Errorf("geojson output is not a feature collection: %.80s", out)
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.png")
	if _, err := run(t, "render", "-shape", "square", "-size", "32", "-out", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("render did not write a PNG")
	}
}
