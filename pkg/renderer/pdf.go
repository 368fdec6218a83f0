package renderer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/checkdisout/checkdisout/pkg/layout"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

const (
	fontFamily = "Helvetica"
	// pointsPerMM converts font sizes to layout units.
	pointsPerMM = 72.0 / 25.4
)

// documentDate is stamped as creation and modification date so identical
// input yields identical bytes.
//
//nolint:gochecknoglobals // fixed timestamp
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDF finalizes layout documents into PDF files.
type PDF struct {
	Title  string
	Author string
}

// NewPDF returns a PDF finalizer with document metadata.
func NewPDF(title, author string) (p *PDF) {
	p = &PDF{Title: title, Author: author}
	return p
}

// Fingerprint names the metadata stamped into every file.
func (p *PDF) Fingerprint() (fingerprint string) {
	fingerprint = fmt.Sprintf("pdf title=%q author=%q", p.Title, p.Author)
	return fingerprint
}

// Finalize writes doc as a PDF to w. One layout page becomes one PDF page.
func (p *PDF) Finalize(doc layout.Document, w io.Writer) (err error) {
	pdf := newFpdf(doc.Geometry)
	tr := translator(pdf)

	if p.Title != "" {
		pdf.SetTitle(tr(p.Title), false)
	}
	if p.Author != "" {
		pdf.SetAuthor(tr(p.Author), false)
	}
	pdf.SetCreator("CheckDisOut", false)

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			writeLine(pdf, tr, line)
		}
	}

	// An empty document still gets one blank page.
	if len(doc.Pages) == 0 {
		pdf.AddPage()
	}

	err = pdf.Output(w)
	if err != nil {
		err = errors.Wrap(err, "failed to write PDF")
		return err
	}

	return err
}

// Bytes finalizes doc into memory.
func (p *PDF) Bytes(doc layout.Document) (data []byte, err error) {
	var buf bytes.Buffer
	err = p.Finalize(doc, &buf)
	if err != nil {
		return data, err
	}
	data = buf.Bytes()
	return data, err
}

func newFpdf(g layout.Geometry) (pdf *fpdf.Fpdf) {
	pdf = fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(g.LeftMargin, g.TopMargin, g.RightMargin)
	pdf.SetAutoPageBreak(false, g.BottomMargin)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	return pdf
}

// translator maps UTF-8 text onto the core font encoding after composing
// accents, so "e" + combining acute prints as a single glyph.
func translator(pdf *fpdf.Fpdf) (tr func(string) string) {
	base := pdf.UnicodeTranslatorFromDescriptor("")
	tr = func(s string) (out string) {
		out = base(norm.NFC.String(s))
		return out
	}
	return tr
}

func fontStyle(w layout.Weight) (style string) {
	switch w {
	case layout.Bold:
		style = "B"
	case layout.Italic:
		style = "I"
	default:
		style = ""
	}
	return style
}

func writeLine(pdf *fpdf.Fpdf, tr func(string) string, line layout.Line) {
	pdf.SetFont(fontFamily, fontStyle(line.Style.Weight), line.Style.Size)

	text := tr(line.Text)
	if line.Link == "" {
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(line.X, line.Y, text)
		return
	}

	pdf.SetTextColor(0, 0, 238)
	pdf.Text(line.X, line.Y, text)

	height := line.Style.Size / pointsPerMM
	pdf.LinkString(line.X, line.Y-height*0.8, pdf.GetStringWidth(text), height, line.Link)
}

// Measurer measures text with the same font metrics the PDF is drawn with.
// A Measurer is not safe for concurrent use.
type Measurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer returns a layout.Measurer backed by the core Helvetica metrics.
func NewMeasurer() (m *Measurer) {
	pdf := newFpdf(layout.A4())
	m = &Measurer{pdf: pdf, tr: translator(pdf)}
	return m
}

// Width is the rendered width of text in millimetres.
func (m *Measurer) Width(text string, style layout.Style) (width float64) {
	m.pdf.SetFont(fontFamily, fontStyle(style.Weight), style.Size)
	width = m.pdf.GetStringWidth(m.tr(text))
	return width
}
