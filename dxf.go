package meshedit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// LoadDXFFile reads the 3DFACE entities of a DXF file.
func LoadDXFFile(fileName string) (*Geometry, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	g, err := ReadDXF(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return g, nil
}

type dxfFace struct {
	corners [4]mgl64.Vec3
	set     int
}

// ReadDXF builds a Geometry from the 3DFACE entities of an ascii DXF stream.
// A face whose fourth corner repeats the third is a triangle; any other face
// is a quad split along its 0-2 diagonal. Every face gets its own vertices.
func ReadDXF(reader io.Reader) (*Geometry, error) {
	scanner := bufio.NewScanner(reader)

	positions := []float64{}
	indices := []uint32{}
	var current *dxfFace

	flush := func() {
		if current == nil {
			return
		}
		f := current
		current = nil
		if f.set < 3 {
			Logger().Warn("meshedit: skipping 3DFACE with fewer than three corners")
			return
		}
		corners := f.corners[:3]
		if f.set == 4 && keyFor(f.corners[3]) != keyFor(f.corners[2]) {
			corners = f.corners[:]
		}
		base := uint32(len(positions) / 3)
		for _, c := range corners {
			positions = append(positions, c[0], c[1], c[2])
		}
		indices = append(indices, base, base+1, base+2)
		if len(corners) == 4 {
			indices = append(indices, base, base+2, base+3)
		}
	}

	line := 0
	for scanner.Scan() {
		line++
		code := strings.TrimSpace(scanner.Text())
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file after group code on line %d", line)
		}
		line++
		value := strings.TrimSpace(scanner.Text())

		if code == "0" {
			flush()
			if value == "3DFACE" {
				current = &dxfFace{}
			}
			continue
		}
		if current == nil {
			continue
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			return nil, fmt.Errorf("bad group code %q on line %d", code, line-1)
		}
		axis, corner := n/10-1, n%10
		if axis < 0 || axis > 2 || corner > 3 {
			continue
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s' on line %d: %w", value, line, err)
		}
		current.corners[corner][axis] = v
		current.set = max(current.set, corner+1)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	flush()

	return NewGeometry(positions, indices), nil
}

// SaveDXFFile writes g to fileName as DXF 3DFACE entities.
func SaveDXFFile(fileName string, g *Geometry) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	if err := WriteDXF(file, g); err != nil {
		return fmt.Errorf("error writing DXF file %s: %w", fileName, err)
	}
	return file.Close()
}

// WriteDXF writes one 3DFACE per triangle, repeating the third corner as the
// fourth.
func WriteDXF(w io.Writer, g *Geometry) error {
	if !g.HasPositions() {
		return ErrNoPositionData
	}
	writer := bufio.NewWriter(w)
	pair := func(code int, value string) {
		_, _ = fmt.Fprintf(writer, "%d\n%s\n", code, value)
	}

	pair(0, "SECTION")
	pair(2, "ENTITIES")
	for t := 0; t < g.TriangleCount(); t++ {
		tri := g.Triangle(t)
		if !g.validTriangle(tri) {
			continue
		}
		pair(0, "3DFACE")
		pair(8, "0")
		corners := [4]int{tri[0], tri[1], tri[2], tri[2]}
		for c, raw := range corners {
			p := g.Position(raw)
			pair(10+c, formatFloat(p[0]))
			pair(20+c, formatFloat(p[1]))
			pair(30+c, formatFloat(p[2]))
		}
	}
	pair(0, "ENDSEC")
	pair(0, "EOF")
	return writer.Flush()
}
