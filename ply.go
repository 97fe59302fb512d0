package meshedit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

// plyPresizeLimit caps the buffer capacity taken from header counts; longer
// elements grow by append.
const plyPresizeLimit = 1 << 16

type plyElement struct {
	name       string
	count      int
	properties []string
}

func (e plyElement) property(name string) int {
	return slices.Index(e.properties, name)
}

// LoadPLYFile reads an ascii PLY mesh from fileName.
func LoadPLYFile(fileName string) (*Geometry, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	g, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return g, nil
}

// ReadPLY parses an ascii PLY stream into an indexed Geometry. Polygons with
// more than three corners are fan triangulated. Vertex properties other than
// x, y and z, such as colours, are ignored, as are unknown elements.
func ReadPLY(reader io.Reader) (*Geometry, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, errors.New("missing ply magic")
	}

	var elements []plyElement
	headerDone := false
	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported PLY format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("element %s count: %w", parts[1], err)
			}
			if count < 0 {
				return nil, fmt.Errorf("element %s has negative count %d", parts[1], count)
			}
			elements = append(elements, plyElement{name: parts[1], count: count})
		case "property":
			if len(elements) == 0 {
				return nil, errors.New("property before any element")
			}
			last := &elements[len(elements)-1]
			last.properties = append(last.properties, parts[len(parts)-1])
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return nil, errors.New("unexpected end of file in PLY header")
	}

	var positions []float64
	var indices []uint32
	for _, el := range elements {
		switch el.name {
		case "vertex":
			xi, yi, zi := el.property("x"), el.property("y"), el.property("z")
			if xi < 0 || yi < 0 || zi < 0 {
				return nil, errors.New("vertex element lacks x, y or z")
			}
			positions = make([]float64, 0, min(el.count, plyPresizeLimit)*3)
			for i := 0; i < el.count; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected end of file while reading vertex %d", i)
				}
				parts := strings.Fields(scanner.Text())
				if len(parts) < len(el.properties) {
					return nil, fmt.Errorf("invalid vertex data on line %d", i)
				}
				for _, col := range []int{xi, yi, zi} {
					v, err := strconv.ParseFloat(parts[col], 64)
					if err != nil {
						return nil, fmt.Errorf("vertex %d: %w", i, err)
					}
					positions = append(positions, v)
				}
			}
		case "face":
			indices = make([]uint32, 0, min(el.count, plyPresizeLimit)*3)
			for i := 0; i < el.count; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected end of file while reading face %d", i)
				}
				corners, err := parsePLYFace(scanner.Text())
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				for j := 1; j+1 < len(corners); j++ {
					indices = append(indices, corners[0], corners[j], corners[j+1])
				}
			}
		default:
			for i := 0; i < el.count; i++ {
				scanner.Scan()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}

	vertexCount := uint32(len(positions) / 3)
	for _, idx := range indices {
		if idx >= vertexCount {
			return nil, fmt.Errorf("face index %d out of range (%d vertices)", idx, vertexCount)
		}
	}
	if positions == nil {
		positions = []float64{}
	}
	return NewGeometry(positions, indices), nil
}

func parsePLYFace(line string) ([]uint32, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, errors.New("empty face line")
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative corner count %d", n)
	}
	// trailing per-face properties such as colours follow the index list
	if len(parts) < n+1 {
		return nil, fmt.Errorf("expected %d indices, got %d", n, len(parts)-1)
	}
	corners := make([]uint32, n)
	for j := 0; j < n; j++ {
		v, err := strconv.ParseUint(parts[j+1], 10, 32)
		if err != nil {
			return nil, err
		}
		corners[j] = uint32(v)
	}
	return corners, nil
}

// SavePLYFile writes g to fileName as ascii PLY.
func SavePLYFile(fileName string, g *Geometry) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := WritePLY(file, g); err != nil {
		return fmt.Errorf("error writing PLY file %s: %w", fileName, err)
	}
	return file.Close()
}

// WritePLY writes g as ascii PLY with one triangle per face line.
func WritePLY(w io.Writer, g *Geometry) error {
	if !g.HasPositions() {
		return ErrNoPositionData
	}
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by meshedit")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", g.VertexCount())
	_, _ = fmt.Fprintln(writer, "property float x")
	_, _ = fmt.Fprintln(writer, "property float y")
	_, _ = fmt.Fprintln(writer, "property float z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", g.TriangleCount())
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for i := 0; i < g.VertexCount(); i++ {
		p := g.Position(i)
		_, _ = fmt.Fprintf(writer, "%s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for t := 0; t < g.TriangleCount(); t++ {
		tri := g.Triangle(t)
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", tri[0], tri[1], tri[2])
	}
	return writer.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
