package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorderedGeometryConstants(t *testing.T) {
	g := BorderedGeometry()
	assert.Equal(t, Size{W: 700, H: 500}, g.Canvas)
	assert.Equal(t, Rect{X: 20, Y: 20, W: 600, H: 400}, g.Box)
	assert.Equal(t, Rect{X: 68, Y: 68, W: 504, H: 304}, g.Content)
	require.NotNil(t, g.Frame)
}

func TestNewGeometryBorderedIgnoresRequestedSize(t *testing.T) {
	assert.Equal(t, BorderedGeometry(), NewGeometry(Bordered, 1234, 99, 3))
}

func TestBorderlessGeometry(t *testing.T) {
	g := NewGeometry(Borderless, 600, 400, 48)
	assert.Equal(t, Size{W: 600, H: 400}, g.Canvas)
	assert.Equal(t, Rect{X: 48, Y: 48, W: 504, H: 304}, g.Content)
	assert.Nil(t, g.Frame)
	assert.Empty(t, g.CornerMarks())
	assert.Empty(t, g.GuideDashes())
}

func TestCornerMarksSitOnBorderCorners(t *testing.T) {
	marks := BorderedGeometry().CornerMarks()
	require.Len(t, marks, 8)
	assert.Equal(t, Segment{X1: 20, Y1: 20, X2: 35, Y2: 20}, marks[0])
	assert.Equal(t, Segment{X1: 605, Y1: 20, X2: 620, Y2: 20}, marks[2])
	assert.Equal(t, Segment{X1: 620, Y1: 20, X2: 620, Y2: 35}, marks[3])
	assert.Equal(t, Segment{X1: 20, Y1: 420, X2: 20, Y2: 405}, marks[5])
	assert.Equal(t, Segment{X1: 620, Y1: 420, X2: 620, Y2: 405}, marks[7])
}

func TestGuideStripsLeaveCornerGaps(t *testing.T) {
	strips := BorderedGeometry().GuideStrips()
	require.Len(t, strips, 4)
	assert.Equal(t, Rect{X: 35, Y: 10, W: 570, H: 10}, strips[0])
	assert.Equal(t, Rect{X: 35, Y: 420, W: 570, H: 10}, strips[1])
	assert.Equal(t, Rect{X: 10, Y: 35, W: 10, H: 370}, strips[2])
	assert.Equal(t, Rect{X: 620, Y: 35, W: 10, H: 370}, strips[3])
}

func TestGuideDashesStayInsideStrips(t *testing.T) {
	g := BorderedGeometry()
	dashes := g.GuideDashes()
	// 570/10 + 570/10 + 370/10 + 370/10
	assert.Len(t, dashes, 57+57+37+37)
	strips := g.GuideStrips()
	for _, d := range dashes {
		inside := false
		for _, s := range strips {
			if d.X >= s.X && d.Y >= s.Y && d.Right() <= s.Right()+1e-9 && d.Bottom() <= s.Bottom()+1e-9 {
				inside = true
				break
			}
		}
		assert.True(t, inside, "dash %+v outside strips", d)
		assert.LessOrEqual(t, d.W*d.H, 50.0)
	}
	// 纵向条带从底端起算。
	assert.Equal(t, Rect{X: 10, Y: 400, W: 10, H: 5}, dashes[57+57])
}

func TestDerivedBlocks(t *testing.T) {
	g := BorderedGeometry()
	th := DefaultTheme()
	assert.Equal(t, Rect{X: 452, Y: 76, W: 120, H: 100}, g.StampRect(th))
	assert.Equal(t, 252.0, g.DividerY(th))
	assert.Equal(t, Rect{X: 68, Y: 252, W: 504, H: 120}, g.BottomRect(th))
	assert.Equal(t, Rect{X: 68, Y: 68, W: 384, H: 184}, g.ProductRect(th))
}
