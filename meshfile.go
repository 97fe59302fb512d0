package meshedit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LoadMeshFile loads a PLY or DXF file, chosen by extension.
func LoadMeshFile(fileName string) (*Geometry, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		return LoadPLYFile(fileName)
	case ".dxf":
		return LoadDXFFile(fileName)
	}
	return nil, fmt.Errorf("unsupported mesh file %s: want .ply or .dxf", fileName)
}

// SaveMeshFile writes g as PLY or DXF, chosen by extension.
func SaveMeshFile(fileName string, g *Geometry) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ply":
		return SavePLYFile(fileName, g)
	case ".dxf":
		return SaveDXFFile(fileName, g)
	}
	return fmt.Errorf("unsupported mesh file %s: want .ply or .dxf", fileName)
}

// NewPrimitive builds one of the named primitives: cube, opencube, sphere or
// grid, each about one unit across.
func NewPrimitive(name string) (*Geometry, error) {
	switch strings.ToLower(name) {
	case "cube":
		return NewCube(1), nil
	case "opencube":
		return NewOpenCube(1), nil
	case "sphere":
		return NewUVSphere(0.5, 16, 10), nil
	case "grid":
		return NewPlaneGrid(1, 1, 4, 4), nil
	}
	return nil, fmt.Errorf("unknown primitive %q", name)
}
