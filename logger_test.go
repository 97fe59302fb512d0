package meshedit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLoggerSilentByDefault(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	Extract(NewCube(1))
	assert.Contains(t, buf.String(), "topology extracted")
	assert.Contains(t, buf.String(), "vertices=8")

	buf.Reset()
	g := NewCube(1)
	topo := Extract(g)
	FindLoopCutPath(Edge{VertexIndices: [2]int{1, 1}}, topo.Edges, topo.Faces, topo.Vertices, DefaultLoopCutT)
	assert.Contains(t, buf.String(), "level=WARN")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
	buf.Reset()
	MoveVertices(g, []int{0}, mgl64.Vec3{1, 0, 0}, topo.Vertices)
	Extract(g)
	assert.Empty(t, buf.String())
}
