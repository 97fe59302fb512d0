// Command meshedit applies one edit to a mesh file and writes the result.
//
//	meshedit -in mesh.ply -out out.ply -op extrude -face 3 -distance 0.5
//	meshedit -primitive opencube -op fill -out filled.dxf
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/meshedit"
	"github.com/smasonuk/meshedit/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		config.Exitf("meshedit: %v", err)
	}
}

type options struct {
	cfg config.Config

	in        string
	primitive string
	out       string
	op        string
	face      int
	edge      int
	edges     string
	vertices  string
	delta     string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("meshedit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.in, "in", "", "input mesh, .ply or .dxf")
	fs.StringVar(&opts.primitive, "primitive", "", "start from a primitive instead: cube, opencube, sphere or grid")
	fs.StringVar(&opts.out, "out", "", "output mesh, .ply or .dxf")
	fs.StringVar(&opts.op, "op", "info", "operation: info, extrude, loopcut, fill or move")
	fs.IntVar(&opts.face, "face", 0, "face to extrude")
	fs.IntVar(&opts.edge, "edge", 0, "edge to start a loop cut from")
	fs.StringVar(&opts.edges, "edges", "", "comma separated edges to fill; the first boundary loop when empty")
	fs.StringVar(&opts.vertices, "vertices", "", "comma separated vertices to move")
	fs.StringVar(&opts.delta, "delta", "0,0,0", "move offset as x,y,z")

	if err := config.Load(&opts.cfg, fs, args); err != nil {
		return nil, err
	}
	if (opts.in == "") == (opts.primitive == "") {
		return nil, errors.New("exactly one of -in and -primitive is required")
	}
	if opts.op != "info" && opts.out == "" {
		return nil, fmt.Errorf("-out is required for %s", opts.op)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	logger, err := opts.cfg.NewLogger(stderr)
	if err != nil {
		return err
	}
	meshedit.SetLogger(logger)
	defer meshedit.SetLogger(nil)

	var g *meshedit.Geometry
	if opts.in != "" {
		g, err = meshedit.LoadMeshFile(opts.in)
	} else {
		g, err = meshedit.NewPrimitive(opts.primitive)
	}
	if err != nil {
		return err
	}

	editor := meshedit.NewEditor(g, meshedit.WithLogger(logger))
	switch opts.op {
	case "info":
		printInfo(stdout, editor)
		return nil
	case "extrude":
		if _, err := editor.ExtrudeFace(opts.face, opts.cfg.ExtrudeDistance); err != nil {
			return err
		}
	case "loopcut":
		ok, err := editor.LoopCut(opts.edge, opts.cfg.LoopCutT)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("nothing to cut from edge %d", opts.edge)
		}
	case "fill":
		edges, err := fillSelection(opts.edges, editor.Topology())
		if err != nil {
			return err
		}
		if _, err := editor.FillEdgeLoop(edges); err != nil {
			return err
		}
	case "move":
		vertices, err := parseInts(opts.vertices)
		if err != nil {
			return fmt.Errorf("-vertices: %w", err)
		}
		delta, err := parseVec3(opts.delta)
		if err != nil {
			return fmt.Errorf("-delta: %w", err)
		}
		editor.MoveVertices(vertices, delta)
	default:
		return fmt.Errorf("unknown operation %q", opts.op)
	}

	if err := meshedit.SaveMeshFile(opts.out, editor.Geometry()); err != nil {
		return err
	}
	logger.Info("mesh written", "file", opts.out, "triangles", editor.Geometry().TriangleCount())
	return nil
}

func fillSelection(list string, topo *meshedit.Topology) ([]int, error) {
	if list != "" {
		edges, err := parseInts(list)
		if err != nil {
			return nil, fmt.Errorf("-edges: %w", err)
		}
		return edges, nil
	}
	loops := meshedit.BoundaryLoops(topo.Edges, topo.Faces)
	if len(loops) == 0 {
		return nil, errors.New("mesh has no open boundary to fill")
	}
	return loops[0], nil
}

func printInfo(w io.Writer, editor *meshedit.Editor) {
	g := editor.Geometry()
	topo := editor.Topology()
	fmt.Fprintf(w, "raw vertices: %d\n", g.VertexCount())
	fmt.Fprintf(w, "triangles:    %d\n", g.TriangleCount())
	fmt.Fprintf(w, "vertices:     %d\n", len(topo.Vertices))
	fmt.Fprintf(w, "edges:        %d\n", len(topo.Edges))
	fmt.Fprintf(w, "faces:        %d\n", len(topo.Faces))
	fmt.Fprintf(w, "boundaries:   %d\n", len(meshedit.BoundaryLoops(topo.Edges, topo.Faces)))
	if !g.Bounds.IsEmpty() {
		fmt.Fprintf(w, "bounds:       %v .. %v\n", g.Bounds.Min, g.Bounds.Max)
	}
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseVec3(s string) (mgl64.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v mgl64.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mgl64.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}
