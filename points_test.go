package lowpoly

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePoints_CountAndBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	sizes := []struct{ w, h, n int }{
		{1, 1, 0},
		{2, 2, 0},
		{2, 3, 10},
		{100, 100, 500},
		{640, 480, 2500},
	}
	for _, s := range sizes {
		points, err := GeneratePoints(s.w, s.h, s.n, rnd)
		require.NoError(t, err)
		assert.Len(t, points, anchorCount+s.n)

		for _, p := range points {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.X, float64(s.w))
			assert.Less(t, p.Y, float64(s.h))
		}
	}
}

func TestGeneratePoints_Anchors(t *testing.T) {
	points, err := GeneratePoints(100, 50, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	expected := []Point{
		{0, 0}, {50, 0}, {99, 0},
		{0, 25}, {99, 25},
		{0, 49}, {50, 49}, {99, 49},
	}
	assert.Equal(t, expected, points[:anchorCount])
}

func TestGeneratePoints_AnchorsAreClamped(t *testing.T) {
	points, err := GeneratePoints(1, 1, 0, nil)
	require.NoError(t, err)
	for _, p := range points {
		assert.Equal(t, Point{0, 0}, p)
	}
}

func TestGeneratePoints_Reproducible(t *testing.T) {
	a, err := GeneratePoints(320, 200, 100, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := GeneratePoints(320, 200, 100, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GeneratePoints(320, 200, 100, rand.New(rand.NewSource(43)))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGeneratePoints_Errors(t *testing.T) {
	_, err := GeneratePoints(10, 10, -5, nil)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = GeneratePoints(0, 50, 10, nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = GeneratePoints(50, 0, 10, nil)
	assert.ErrorIs(t, err, ErrEmptyImage)
}
