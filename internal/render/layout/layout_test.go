package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInset(t *testing.T) {
	rect := image.Rect(0, 0, 1080, 1920)
	require.Equal(t, image.Rect(20, 20, 1060, 1900), Inset(rect, 20))
	require.Equal(t, rect, Inset(rect, 0))
	// Over-inset collapses into a normalized rectangle instead of an inverted one.
	got := Inset(image.Rect(0, 0, 10, 10), 8)
	require.LessOrEqual(t, got.Min.X, got.Max.X)
	require.LessOrEqual(t, got.Min.Y, got.Max.Y)
}

func TestAnchorTopRight(t *testing.T) {
	rect := image.Rect(70, 70, 1010, 1850)
	require.Equal(t, image.Rect(850, 70, 1010, 230), AnchorTopRight(rect, 160, 160))
	require.Equal(t, rect, AnchorTopRight(rect, 5000, 5000))
	require.True(t, AnchorTopRight(rect, -1, 10).Empty())
}

func TestScaled(t *testing.T) {
	require.Equal(t, 150, Scaled(150, 1))
	require.Equal(t, 75, Scaled(150, 0.5))
	require.Equal(t, 2, Scaled(3, 0.5))
	require.Equal(t, -2, Scaled(-3, 0.5))
}
