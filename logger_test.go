package lowpoly

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_SilentByDefault(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestLogger_RenderStages(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	p := NewProcessor()
	p.PointCount = 20
	p.Rand = rand.New(rand.NewSource(1))
	_, err := p.Render(gradient(32, 32))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=triangulated")
	assert.Contains(t, out, "points=28")
	assert.Contains(t, out, "msg=rendered")
	assert.Contains(t, out, "backend=gg")
}

func TestSetLogger_Nil(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelDebug))
}
