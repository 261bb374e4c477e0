package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGradient(t *testing.T) {
	t.Parallel()

	g := Default()
	require.Equal(t, TableSize, g.Len())
	require.Same(t, g, Default(), "default gradient must be built once")

	first, err := g.ColorFor(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultStops[0].Color, first.Base)

	last, err := g.ColorFor(208)
	require.NoError(t, err)
	assert.Equal(t, DefaultStops[len(DefaultStops)-1].Color, last.Base)

	_, err = g.ColorFor(209)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = g.ColorFor(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestGradientInterpolation(t *testing.T) {
	t.Parallel()

	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	g, err := NewGradient([]Stop{{0, black}, {1, white}}, 3)
	require.NoError(t, err)
	assert.Equal(t, black, g.At(0))
	assert.Equal(t, RGB{128, 128, 128}, g.At(1))
	assert.Equal(t, white, g.At(2))
}

func TestGradientClampsOutsideStops(t *testing.T) {
	t.Parallel()

	red := RGB{255, 0, 0}
	blue := RGB{0, 0, 255}

	g, err := NewGradient([]Stop{{0.25, red}, {0.75, blue}}, 5)
	require.NoError(t, err)

	assert.Equal(t, red, g.At(0))
	assert.Equal(t, red, g.At(1))
	assert.Equal(t, RGB{128, 0, 128}, g.At(2))
	assert.Equal(t, blue, g.At(3))
	assert.Equal(t, blue, g.At(4))
}

func TestGradientStopsAtSameOffset(t *testing.T) {
	t.Parallel()

	red := RGB{255, 0, 0}
	green := RGB{0, 255, 0}
	blue := RGB{0, 0, 255}

	// At the shared offset the later stop wins. Just before it the earlier pair
	// still blends toward green.
	g, err := NewGradient([]Stop{{0, red}, {0.5, green}, {0.5, blue}, {1, blue}}, 3)
	require.NoError(t, err)
	assert.Equal(t, blue, g.At(1))

	g, err = NewGradient([]Stop{{0, red}, {0.5, green}, {0.5, blue}, {1, blue}}, 5)
	require.NoError(t, err)
	assert.Equal(t, RGB{128, 128, 0}, g.At(1))
	assert.Equal(t, blue, g.At(2))
}

func TestGradientIsMonotonicBetweenTwoStops(t *testing.T) {
	t.Parallel()

	g, err := NewGradient([]Stop{{0, RGB{0, 0, 0}}, {1, RGB{255, 255, 255}}}, TableSize)
	require.NoError(t, err)

	for i := 1; i < g.Len(); i++ {
		assert.GreaterOrEqual(t, g.At(i).R, g.At(i-1).R, "index %d", i)
	}
}

func TestNewGradientValidation(t *testing.T) {
	t.Parallel()

	c := RGB{1, 2, 3}

	_, err := NewGradient([]Stop{{0, c}}, TableSize)
	require.ErrorIs(t, err, ErrInvalidStops)

	_, err = NewGradient([]Stop{{0.6, c}, {0.4, c}}, TableSize)
	require.ErrorIs(t, err, ErrInvalidStops)

	_, err = NewGradient([]Stop{{0, c}, {1.5, c}}, TableSize)
	require.ErrorIs(t, err, ErrInvalidStops)

	_, err = NewGradient(DefaultStops, 1)
	require.ErrorIs(t, err, ErrInvalidSize)
}
