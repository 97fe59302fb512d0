// Command meshview opens a mesh in an interactive editing window.
//
//	meshview [-primitive cube|opencube|sphere|grid] [file.ply|file.dxf]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/meshedit"
	"github.com/smasonuk/meshedit/internal/config"
)

func main() {
	var cfg config.Config
	fs := flag.NewFlagSet("meshview", flag.ExitOnError)
	primitive := fs.String("primitive", "opencube", "primitive to open when no file is given")
	if err := config.Load(&cfg, fs, os.Args[1:]); err != nil {
		config.Exitf("meshview: %v", err)
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		config.Exitf("meshview: %v", err)
	}
	meshedit.SetLogger(logger)

	g, err := loadGeometry(fs.Args(), *primitive)
	if err != nil {
		config.Exitf("meshview: %v", err)
	}
	logger.Info("mesh loaded", "triangles", g.TriangleCount(), "raw_vertices", g.VertexCount())

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("meshview")
	if err := ebiten.RunGame(NewGame(g, cfg, logger)); err != nil {
		config.Exitf("meshview: %v", err)
	}
}

func loadGeometry(args []string, primitive string) (*meshedit.Geometry, error) {
	switch len(args) {
	case 0:
		return meshedit.NewPrimitive(primitive)
	case 1:
		return meshedit.LoadMeshFile(args[0])
	}
	return nil, fmt.Errorf("expected at most one mesh file, got %d", len(args))
}
