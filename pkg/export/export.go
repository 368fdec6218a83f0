// Package export sequences the portfolio sections into one paginated document
// and finalizes it into a PDF.
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/checkdisout/checkdisout/pkg/compose"
	"github.com/checkdisout/checkdisout/pkg/layout"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/checkdisout/checkdisout/pkg/renderer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultFilename is the name of the exported artifact.
const DefaultFilename = "portfolio.pdf"

// ErrRenderFailed is returned when layout or finalization fails unexpectedly.
var ErrRenderFailed = errors.New("failed to generate PDF")

// Input is everything one export needs.
type Input struct {
	User           portfolio.UserProfile     `json:"user"`
	Achievements   []portfolio.Achievement   `json:"achievements"`
	Projects       []portfolio.Project       `json:"projects"`
	Participations []portfolio.Participation `json:"participations"`
	Selection      portfolio.Selection       `json:"sections"`
}

// NewInput pairs a bundle with a selection.
func NewInput(bundle portfolio.Bundle, selection portfolio.Selection) (in Input) {
	in = Input{
		User:           bundle.User,
		Achievements:   bundle.Achievements,
		Projects:       bundle.Projects,
		Participations: bundle.Participations,
		Selection:      selection,
	}
	return in
}

// FromDocument builds an Input from a decoded document.
func FromDocument(doc portfolio.Document) (in Input) {
	in = NewInput(doc.Bundle(), doc.Selection())
	return in
}

// Entries lists the template lines in export order: profile, the selected
// non-empty sections, then the promo block.
func Entries(in Input) (entries []compose.Entry) {
	entries = append(entries, compose.Profile(in.User)...)

	if in.Selection.Achievements && len(in.Achievements) > 0 {
		entries = append(entries, compose.Section(compose.AchievementsHeader, compose.Achievements(in.Achievements))...)
	}
	if in.Selection.Projects && len(in.Projects) > 0 {
		entries = append(entries, compose.Section(compose.ProjectsHeader, compose.Projects(in.Projects))...)
	}
	if in.Selection.Participations && len(in.Participations) > 0 {
		entries = append(entries, compose.Section(compose.ParticipationsHeader, compose.Participations(in.Participations))...)
	}

	entries = append(entries, compose.Promo()...)
	return entries
}

// Compose lays the input out on pages. A panic during layout is returned as
// ErrRenderFailed and no document is produced.
func Compose(in Input, g layout.Geometry, m layout.Measurer) (doc layout.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = layout.Document{}
			err = errors.Wrap(ErrRenderFailed, fmt.Sprintf("layout panic: %v", r))
		}
	}()

	e := layout.NewEmitter(g)
	if m != nil {
		e.SetMeasurer(m)
	}
	compose.Write(e, Entries(in))

	doc = e.Document()
	return doc, err
}

// Digest identifies an input. Identical inputs share a digest.
func Digest(in Input) (digest string, err error) {
	var data []byte
	data, err = json.Marshal(in)
	if err != nil {
		err = errors.Wrap(err, "failed to encode export input")
		return digest, err
	}
	sum := sha256.Sum256(data)
	digest = hex.EncodeToString(sum[:])
	return digest, err
}

// Finalizer turns a laid-out document into file bytes.
type Finalizer interface {
	Finalize(doc layout.Document, w io.Writer) error
}

// Fingerprinter is implemented by finalizers whose options change their output.
type Fingerprinter interface {
	Fingerprint() string
}

// Cache stores rendered output by cache key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Recorder observes export outcomes.
type Recorder interface {
	Rendered(elapsed time.Duration, pages, size int)
	CacheHit()
	Failed()
}

// Exporter renders inputs to PDF bytes. It holds no per-export state, so one
// Exporter serves concurrent exports.
type Exporter struct {
	geometry  layout.Geometry
	finalizer Finalizer
	measure   func() layout.Measurer
	cache     Cache
	recorder  Recorder
	logger    *zap.Logger
	settings  string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithGeometry overrides the page geometry.
func WithGeometry(g layout.Geometry) (opt Option) {
	opt = func(x *Exporter) { x.geometry = g }
	return opt
}

// WithFinalizer overrides the PDF finalizer.
func WithFinalizer(f Finalizer) (opt Option) {
	opt = func(x *Exporter) { x.finalizer = f }
	return opt
}

// WithoutWrapping disables measuring, so every paragraph is a single line.
func WithoutWrapping() (opt Option) {
	opt = func(x *Exporter) { x.measure = nil }
	return opt
}

// WithCache enables the render cache.
func WithCache(c Cache) (opt Option) {
	opt = func(x *Exporter) { x.cache = c }
	return opt
}

// WithRecorder enables metrics.
func WithRecorder(r Recorder) (opt Option) {
	opt = func(x *Exporter) { x.recorder = r }
	return opt
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) (opt Option) {
	opt = func(x *Exporter) { x.logger = l }
	return opt
}

// New returns an Exporter for A4 pages with wrapped paragraphs.
func New(opts ...Option) (x *Exporter) {
	x = &Exporter{
		geometry:  layout.A4(),
		finalizer: renderer.NewPDF("Portfolio", ""),
		measure: func() (m layout.Measurer) {
			m = renderer.NewMeasurer()
			return m
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(x)
	}
	x.settings = x.fingerprint()
	return x
}

// fingerprint describes everything besides the input that shapes the output.
func (x *Exporter) fingerprint() (settings string) {
	finalizer := fmt.Sprintf("%T", x.finalizer)
	if f, ok := x.finalizer.(Fingerprinter); ok {
		finalizer = f.Fingerprint()
	}
	settings = fmt.Sprintf("geometry=%v wrapped=%t finalizer=%s", x.geometry, x.measure != nil, finalizer)
	return settings
}

// CacheKey identifies the output of in under this exporter's settings.
// Exporters configured differently never share a key.
func (x *Exporter) CacheKey(in Input) (key string, err error) {
	var digest string
	digest, err = Digest(in)
	if err != nil {
		return key, err
	}
	sum := sha256.Sum256([]byte(x.settings + "\n" + digest))
	key = hex.EncodeToString(sum[:])
	return key, err
}

// Layout composes the input with this exporter's geometry and measurer.
func (x *Exporter) Layout(in Input) (doc layout.Document, err error) {
	var m layout.Measurer
	if x.measure != nil {
		m = x.measure()
	}
	doc, err = Compose(in, x.geometry, m)
	return doc, err
}

// Render returns the PDF for in, from the cache when possible.
func (x *Exporter) Render(ctx context.Context, in Input) (data []byte, err error) {
	start := time.Now()

	var key string
	key, err = x.CacheKey(in)
	if err != nil {
		x.failed()
		return data, err
	}
	log := x.logger.With(zap.String("key", key))

	if x.cache != nil {
		var found bool
		var cacheErr error
		data, found, cacheErr = x.cache.Get(ctx, key)
		if cacheErr != nil {
			log.Warn("render cache read failed", zap.Error(cacheErr))
		}
		if found {
			log.Debug("served export from cache")
			if x.recorder != nil {
				x.recorder.CacheHit()
			}
			return data, err
		}
	}

	var doc layout.Document
	doc, err = x.Layout(in)
	if err != nil {
		x.failed()
		log.Error("layout failed", zap.Error(err))
		return data, err
	}

	var buf bytes.Buffer
	err = x.finalize(doc, &buf)
	if err != nil {
		x.failed()
		log.Error("finalize failed", zap.Error(err))
		err = errors.Wrap(ErrRenderFailed, err.Error())
		return data, err
	}
	data = buf.Bytes()

	if x.cache != nil {
		cacheErr := x.cache.Put(ctx, key, data)
		if cacheErr != nil {
			log.Warn("render cache write failed", zap.Error(cacheErr))
		}
	}

	elapsed := time.Since(start)
	if x.recorder != nil {
		x.recorder.Rendered(elapsed, len(doc.Pages), len(data))
	}
	log.Info("rendered portfolio",
		zap.Int("pages", len(doc.Pages)),
		zap.Int("bytes", len(data)),
		zap.Strings("sections", in.Selection.Keys()),
		zap.Duration("elapsed", elapsed),
	)

	return data, err
}

// ExportFile renders in and saves it at path. Nothing is written on failure.
func (x *Exporter) ExportFile(ctx context.Context, in Input, path string) (err error) {
	if path == "" {
		path = DefaultFilename
	}

	var data []byte
	data, err = x.Render(ctx, in)
	if err != nil {
		return err
	}

	err = renderer.WriteFile(data, path)
	if err != nil {
		err = errors.Wrap(err, "failed to save portfolio")
		return err
	}

	return err
}

// finalize recovers finalizer panics so the caller sees one generic failure.
func (x *Exporter) finalize(doc layout.Document, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("finalizer panic: %v", r)
		}
	}()
	err = x.finalizer.Finalize(doc, w)
	return err
}

func (x *Exporter) failed() {
	if x.recorder != nil {
		x.recorder.Failed()
	}
}
