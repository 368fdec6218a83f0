// Package layout places styled lines of text on fixed-size pages.
//
// An Emitter owns the cursor for one export. Lines are written top to bottom;
// when the cursor passes the printable bound a new page is started before the
// line is placed. There is no keep-with-next control, so a header can end a page.
package layout

import (
	"strings"
)

// Weight is the font weight of a line.
type Weight int

const (
	// Normal is the regular face.
	Normal Weight = iota
	// Bold is the bold face.
	Bold
	// Italic is the oblique face, also used for list items.
	Italic
)

func (w Weight) String() (name string) {
	switch w {
	case Bold:
		name = "bold"
	case Italic:
		name = "italic"
	default:
		name = "normal"
	}
	return name
}

// Style is the typeface and size of a line.
type Style struct {
	Weight Weight
	Size   float64
}

// Geometry describes the page and line metrics, in millimetres.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	TopMargin    float64
	BottomMargin float64
	LeftMargin   float64
	RightMargin  float64
	LineHeight   float64
}

// A4 is a portrait A4 page with the default margins and line height.
func A4() (g Geometry) {
	g = Geometry{
		PageWidth:    210,
		PageHeight:   297,
		TopMargin:    20,
		BottomMargin: 20,
		LeftMargin:   15,
		RightMargin:  15,
		LineHeight:   8,
	}
	return g
}

// Bound is the lowest cursor position a line may be written at.
func (g Geometry) Bound() (y float64) {
	y = g.PageHeight - g.BottomMargin
	return y
}

// TextWidth is the printable width at the given indent.
func (g Geometry) TextWidth(indent float64) (width float64) {
	width = g.PageWidth - g.LeftMargin - g.RightMargin - indent
	return width
}

// Line is one placed line of text.
type Line struct {
	Text  string
	Style Style
	X     float64
	Y     float64
	Link  string
}

// Page holds the lines placed on one page.
type Page struct {
	Lines []Line
}

// Document is the finished, paginated output of an Emitter.
type Document struct {
	Geometry Geometry
	Pages    []Page
}

// LineCount is the number of lines across all pages.
func (d Document) LineCount() (count int) {
	for _, p := range d.Pages {
		count += len(p.Lines)
	}
	return count
}

// Texts returns every line's text in order.
func (d Document) Texts() (texts []string) {
	texts = make([]string, 0, d.LineCount())
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			texts = append(texts, l.Text)
		}
	}
	return texts
}

// Measurer reports the rendered width of text in a style.
type Measurer interface {
	Width(text string, style Style) float64
}

// Emitter is the layout state of one export.
type Emitter struct {
	geometry Geometry
	measurer Measurer
	pages    []Page
	y        float64
}

// NewEmitter starts a document with one empty page and the cursor at the top margin.
func NewEmitter(g Geometry) (e *Emitter) {
	e = &Emitter{
		geometry: g,
		pages:    []Page{{}},
		y:        g.TopMargin,
	}
	return e
}

// SetMeasurer enables wrapping in EmitWrapped.
func (e *Emitter) SetMeasurer(m Measurer) {
	e.measurer = m
}

// Cursor is the vertical position the next line will be written at, before any page break.
func (e *Emitter) Cursor() (y float64) {
	y = e.y
	return y
}

// PageCount is the number of pages started so far.
func (e *Emitter) PageCount() (count int) {
	count = len(e.pages)
	return count
}

// EmitLine writes one line at the cursor, breaking the page first if the
// cursor is past the printable bound.
func (e *Emitter) EmitLine(text string, style Style, indent float64) {
	e.place(Line{Text: text, Style: style}, indent)
}

// EmitLink writes one line that links to url.
func (e *Emitter) EmitLink(text, url string, style Style, indent float64) {
	e.place(Line{Text: text, Style: style, Link: url}, indent)
}

// Gap advances the cursor by one line without writing.
func (e *Emitter) Gap() {
	e.y += e.geometry.LineHeight
}

// EmitWrapped writes text as as many lines as it needs to fit the printable
// width. Newlines always start a new line. Without a measurer each paragraph is
// one line.
func (e *Emitter) EmitWrapped(text string, style Style, indent float64) {
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimRight(paragraph, " \t\r")
		if e.measurer == nil {
			e.EmitLine(paragraph, style, indent)
			continue
		}
		for _, piece := range Wrap(paragraph, style, e.geometry.TextWidth(indent), e.measurer) {
			e.EmitLine(piece, style, indent)
		}
	}
}

// Document returns the pages written so far.
func (e *Emitter) Document() (doc Document) {
	pages := make([]Page, len(e.pages))
	for i, p := range e.pages {
		pages[i] = Page{Lines: append([]Line(nil), p.Lines...)}
	}
	doc = Document{Geometry: e.geometry, Pages: pages}
	return doc
}

func (e *Emitter) place(line Line, indent float64) {
	if e.y > e.geometry.Bound() {
		e.pages = append(e.pages, Page{})
		e.y = e.geometry.TopMargin
	}

	line.X = e.geometry.LeftMargin + indent
	line.Y = e.y

	last := len(e.pages) - 1
	e.pages[last].Lines = append(e.pages[last].Lines, line)
	e.y += e.geometry.LineHeight
}
