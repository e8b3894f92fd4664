package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/irfansharif/tangram/internal/app"
	"github.com/irfansharif/tangram/internal/catalog"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	log.SetFlags(logFlags)

	if os.Getenv("TANGRAM_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: tangram <command> [flags]

commands:
  encode   print the shareable text for a shape
  decode   print the layout and colors held in a shared text
  render   draw a shape (or a shared text) as a PNG
  mesh     print the triangulation of every tan
  geojson  export a shape as a GeoJSON feature collection
  check    verify that a shape is one connected, overlap-free silhouette

Run 'tangram <command> -h' for the flags of a command.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(2)
	}

	application := app.NewApp(loadCatalog(), app.NewView(512, 512), seed())
	if err := cmd(application, os.Args[2:], os.Stdout); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func loadCatalog() *catalog.Catalog {
	path := os.Getenv("TANGRAM_CATALOG")
	if path == "" {
		c, err := catalog.Default()
		if err != nil {
			log.Fatalf("Failed to load built-in catalog: %v", err)
		}
		return c
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load catalog %s: %v", path, err)
	}
	runtimeLogger.Printf("loaded catalog %s (%d shapes)", path, len(c.Shapes()))
	return c
}

// seed returns the palette seed, or -1 to keep catalog colors.
func seed() int64 {
	seedStr := os.Getenv("TANGRAM_SEED")
	if seedStr == "" {
		return -1
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil || seed < 0 {
		log.Fatalf("Invalid TANGRAM_SEED value '%s': want a non-negative integer", seedStr)
	}
	return seed
}
