package layout

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth measures every rune as the same width.
type fixedWidth float64

func (f fixedWidth) Width(text string, _ Style) (width float64) {
	width = float64(utf8.RuneCountInString(text)) * float64(f)
	return width
}

func smallPage() (g Geometry) {
	g = Geometry{
		PageWidth:    100,
		PageHeight:   100,
		TopMargin:    10,
		BottomMargin: 10,
		LeftMargin:   5,
		RightMargin:  5,
		LineHeight:   10,
	}
	return g
}

var body = Style{Weight: Normal, Size: 11}

func TestNewEmitter(t *testing.T) {
	e := NewEmitter(A4())

	assert.Equal(t, 1, e.PageCount())
	assert.Equal(t, 20.0, e.Cursor())
	assert.Equal(t, 0, e.Document().LineCount())
}

func TestEmitLinePlacesAtCursor(t *testing.T) {
	e := NewEmitter(smallPage())

	e.EmitLine("first", body, 0)
	e.EmitLine("second", Style{Weight: Bold, Size: 14}, 7)

	doc := e.Document()
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Lines, 2)

	first := doc.Pages[0].Lines[0]
	assert.Equal(t, "first", first.Text)
	assert.Equal(t, 5.0, first.X)
	assert.Equal(t, 10.0, first.Y)

	second := doc.Pages[0].Lines[1]
	assert.Equal(t, 12.0, second.X)
	assert.Equal(t, 20.0, second.Y)
	assert.Equal(t, Bold, second.Style.Weight)
	assert.Equal(t, 30.0, e.Cursor())
}

func TestPageBreakBoundary(t *testing.T) {
	g := smallPage()
	e := NewEmitter(g)

	// Cursor runs 10, 20, ... 90; the bound is 90, so nine lines fit.
	for i := 0; i < 9; i++ {
		e.EmitLine(fmt.Sprintf("line %d", i), body, 0)
	}
	assert.Equal(t, 1, e.PageCount())

	e.EmitLine("overflow", body, 0)

	doc := e.Document()
	require.Len(t, doc.Pages, 2)
	assert.Len(t, doc.Pages[0].Lines, 9)
	require.Len(t, doc.Pages[1].Lines, 1)
	assert.Equal(t, "overflow", doc.Pages[1].Lines[0].Text)
	assert.Equal(t, g.TopMargin, doc.Pages[1].Lines[0].Y)
}

func TestNoLineBelowBottomMargin(t *testing.T) {
	for _, g := range []Geometry{A4(), smallPage()} {
		e := NewEmitter(g)
		for i := 0; i < 500; i++ {
			e.EmitLine("x", body, 0)
			if i%7 == 0 {
				e.Gap()
			}
		}

		doc := e.Document()
		assert.Greater(t, len(doc.Pages), 1)
		for pi, p := range doc.Pages {
			require.NotEmpty(t, p.Lines, "page %d is empty", pi)
			assert.Equal(t, g.TopMargin, p.Lines[0].Y, "page %d does not start at the top margin", pi)
			for _, l := range p.Lines {
				assert.LessOrEqual(t, l.Y, g.Bound())
			}
		}
	}
}

func TestGapAdvancesWithoutWriting(t *testing.T) {
	e := NewEmitter(smallPage())

	e.EmitLine("a", body, 0)
	e.Gap()
	e.EmitLine("b", body, 0)

	doc := e.Document()
	require.Len(t, doc.Pages[0].Lines, 2)
	assert.Equal(t, 30.0, doc.Pages[0].Lines[1].Y)
}

func TestGapPastBoundBreaksOnNextLine(t *testing.T) {
	e := NewEmitter(smallPage())

	for i := 0; i < 9; i++ {
		e.Gap()
	}
	assert.Equal(t, 1, e.PageCount())

	e.EmitLine("after gaps", body, 0)
	assert.Equal(t, 2, e.PageCount())
	assert.Empty(t, e.Document().Pages[0].Lines)
}

func TestEmitLink(t *testing.T) {
	e := NewEmitter(smallPage())

	e.EmitLink("site", "https://example.com", body, 0)

	line := e.Document().Pages[0].Lines[0]
	assert.Equal(t, "https://example.com", line.Link)
}

func TestEmitWrappedWithoutMeasurer(t *testing.T) {
	e := NewEmitter(smallPage())

	e.EmitWrapped("one very long paragraph that is never measured\nsecond", body, 0)

	assert.Equal(t, []string{"one very long paragraph that is never measured", "second"}, e.Document().Texts())
}

func TestEmitWrappedWithMeasurer(t *testing.T) {
	e := NewEmitter(smallPage())
	// Printable width at indent 10 is 80; at 4 units per rune that is 20 runes.
	e.SetMeasurer(fixedWidth(4))

	e.EmitWrapped("alpha beta gamma delta epsilon", body, 10)

	assert.Equal(t, []string{"alpha beta gamma", "delta epsilon"}, e.Document().Texts())
}

func TestDocumentIsACopy(t *testing.T) {
	e := NewEmitter(smallPage())
	e.EmitLine("a", body, 0)

	doc := e.Document()
	doc.Pages[0].Lines[0].Text = "changed"

	assert.Equal(t, "a", e.Document().Pages[0].Lines[0].Text)
}

func TestEmittersAreIndependent(t *testing.T) {
	a := NewEmitter(smallPage())
	b := NewEmitter(smallPage())

	a.EmitLine("only in a", body, 0)

	assert.Equal(t, 0, b.Document().LineCount())
	assert.Equal(t, 10.0, b.Cursor())
}
