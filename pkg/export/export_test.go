package export

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/checkdisout/checkdisout/pkg/compose"
	"github.com/checkdisout/checkdisout/pkg/layout"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/checkdisout/checkdisout/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) (p *int) {
	p = &i
	return p
}

func adaInput() (in Input) {
	in = Input{
		User: portfolio.UserProfile{
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Qualities: []string{"Curious"},
			Skills:    []string{},
		},
		Achievements:   []portfolio.Achievement{},
		Projects:       []portfolio.Project{},
		Participations: []portfolio.Participation{},
		Selection:      portfolio.AllSections(),
	}
	return in
}

func composeTexts(t *testing.T, in Input) (texts []string) {
	t.Helper()
	doc, err := Compose(in, layout.A4(), nil)
	require.NoError(t, err)
	texts = doc.Texts()
	return texts
}

func TestComposeProfileOnly(t *testing.T) {
	got := composeTexts(t, adaInput())

	assert.Equal(t, []string{
		"Ada Lovelace",
		"ada@example.com",
		"Qualities:",
		"- Curious",
		compose.PromoLine,
		compose.PromoInvite,
		compose.PromoURL,
	}, got)
	assert.NotContains(t, got, "Skills:")
	assert.NotContains(t, got, compose.AchievementsHeader)
	assert.NotContains(t, got, compose.ProjectsHeader)
	assert.NotContains(t, got, compose.ParticipationsHeader)
}

func TestComposeSingleAchievement(t *testing.T) {
	in := adaInput()
	in.Achievements = []portfolio.Achievement{{
		Title:     "Winner",
		Position:  intPtr(1),
		EventDate: portfolio.NewDate(2024, time.March, 1),
		EventType: "online",
		IsSolo:    true,
	}}

	got := composeTexts(t, in)

	for _, want := range []string{compose.AchievementsHeader, "Title: Winner", "Position: 1", "Date: March 1, 2024", "Type: Online", "Effort: Solo"} {
		assert.Contains(t, got, want)
	}
	for _, line := range got {
		assert.False(t, strings.HasPrefix(line, "Description"), "unexpected line %q", line)
		assert.False(t, strings.HasPrefix(line, "Certificate"), "unexpected line %q", line)
		assert.False(t, strings.HasPrefix(line, "Tags"), "unexpected line %q", line)
	}
}

func TestSelectionGating(t *testing.T) {
	bundle := fakeBundle(1, 2)

	tests := []struct {
		name      string
		selection portfolio.Selection
		present   []string
		absent    []string
	}{
		{
			name:      "all selected",
			selection: portfolio.AllSections(),
			present:   []string{compose.AchievementsHeader, compose.ProjectsHeader, compose.ParticipationsHeader},
		},
		{
			name:      "achievements deselected",
			selection: portfolio.Selection{Projects: true, Participations: true},
			present:   []string{compose.ProjectsHeader, compose.ParticipationsHeader},
			absent:    []string{compose.AchievementsHeader},
		},
		{
			name:      "nothing selected",
			selection: portfolio.Selection{},
			absent:    []string{compose.AchievementsHeader, compose.ProjectsHeader, compose.ParticipationsHeader},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeTexts(t, NewInput(bundle, tt.selection))
			for _, h := range tt.present {
				assert.Contains(t, got, h)
			}
			for _, h := range tt.absent {
				assert.NotContains(t, got, h)
			}
			// The promo block is unconditional.
			assert.Equal(t, compose.PromoURL, got[len(got)-1])
		})
	}
}

func TestSelectedButEmptyOmitsSection(t *testing.T) {
	in := adaInput()
	in.Projects = nil

	assert.NotContains(t, composeTexts(t, in), compose.ProjectsHeader)
}

func TestSectionOrder(t *testing.T) {
	got := composeTexts(t, NewInput(fakeBundle(2, 1), portfolio.AllSections()))

	index := func(s string) (i int) {
		for i = range got {
			if got[i] == s {
				return i
			}
		}
		i = -1
		return i
	}

	assert.Less(t, index(compose.AchievementsHeader), index(compose.ProjectsHeader))
	assert.Less(t, index(compose.ProjectsHeader), index(compose.ParticipationsHeader))
	assert.Less(t, index(compose.ParticipationsHeader), index(compose.PromoLine))
}

func TestOmitsBio(t *testing.T) {
	without := composeTexts(t, adaInput())

	in := adaInput()
	in.User.Bio = "Analyst of engines"
	with := composeTexts(t, in)

	assert.Len(t, with, len(without)+1)
	assert.Contains(t, with, "Analyst of engines")
}

func TestComposePaginates(t *testing.T) {
	in := NewInput(fakeBundle(3, 20), portfolio.AllSections())
	g := layout.A4()

	doc, err := Compose(in, g, nil)
	require.NoError(t, err)

	assert.Greater(t, len(doc.Pages), 1)
	for _, p := range doc.Pages {
		require.NotEmpty(t, p.Lines)
		assert.Equal(t, g.TopMargin, p.Lines[0].Y)
		for _, l := range p.Lines {
			assert.LessOrEqual(t, l.Y, g.Bound())
		}
	}
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	in := NewInput(fakeBundle(4, 3), portfolio.AllSections())
	before, err := Digest(in)
	require.NoError(t, err)

	_, err = Compose(in, layout.A4(), nil)
	require.NoError(t, err)

	after, err := Digest(in)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// panicky measures by panicking, standing in for an unexpected layout fault.
type panicky struct{}

func (panicky) Width(string, layout.Style) float64 {
	panic("measure exploded")
}

func TestComposeRecoversPanic(t *testing.T) {
	in := adaInput()
	in.User.Bio = "wrapped text triggers the measurer"

	doc, err := Compose(in, layout.A4(), panicky{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
	assert.Empty(t, doc.Pages)
}

func TestRenderDeterministic(t *testing.T) {
	x := New()
	in := NewInput(fakeBundle(5, 5), portfolio.AllSections())

	first, err := x.Render(context.Background(), in)
	require.NoError(t, err)
	second, err := x.Render(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
	assert.True(t, bytes.Equal(first, second))
}

func TestRenderConcurrent(t *testing.T) {
	x := New()
	inputs := []Input{
		NewInput(fakeBundle(10, 3), portfolio.AllSections()),
		NewInput(fakeBundle(11, 6), portfolio.Selection{Projects: true}),
	}

	want := make([][]byte, len(inputs))
	for i, in := range inputs {
		data, err := x.Render(context.Background(), in)
		require.NoError(t, err)
		want[i] = data
	}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = x.Render(context.Background(), inputs[i%len(inputs)])
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.True(t, bytes.Equal(want[i%len(inputs)], results[i]), "export %d differs", i)
	}
}

// memoryCache is an in-process Cache.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
}

func newMemoryCache() (c *memoryCache) {
	c = &memoryCache{entries: make(map[string][]byte)}
	return c
}

func (c *memoryCache) Get(_ context.Context, digest string) (data []byte, found bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, found = c.entries[digest]
	return data, found, err
}

func (c *memoryCache) Put(_ context.Context, digest string, data []byte) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[digest] = data
	return err
}

// countingFinalizer counts finalize calls.
type countingFinalizer struct {
	calls int
	err   error
	panic bool
}

func (f *countingFinalizer) Finalize(doc layout.Document, w io.Writer) (err error) {
	f.calls++
	if f.panic {
		panic("finalizer exploded")
	}
	if f.err != nil {
		err = f.err
		return err
	}
	_, err = w.Write([]byte("pages:" + strings.Repeat("#", len(doc.Pages))))
	return err
}

// recorder captures metric calls.
type recorder struct {
	rendered, hits, failures int
}

func (r *recorder) Rendered(time.Duration, int, int) { r.rendered++ }
func (r *recorder) CacheHit()                        { r.hits++ }
func (r *recorder) Failed()                          { r.failures++ }

func TestRenderUsesCache(t *testing.T) {
	c := newMemoryCache()
	f := &countingFinalizer{}
	rec := &recorder{}
	x := New(WithCache(c), WithFinalizer(f), WithRecorder(rec), WithoutWrapping())

	first, err := x.Render(context.Background(), adaInput())
	require.NoError(t, err)
	second, err := x.Render(context.Background(), adaInput())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 2, c.gets)
	assert.Equal(t, 1, rec.rendered)
	assert.Equal(t, 1, rec.hits)
}

func TestRenderFinalizerError(t *testing.T) {
	rec := &recorder{}
	x := New(WithFinalizer(&countingFinalizer{err: errors.New("disk on fire")}), WithRecorder(rec))

	data, err := x.Render(context.Background(), adaInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
	assert.Nil(t, data)
	assert.Equal(t, 1, rec.failures)
}

func TestRenderFinalizerPanic(t *testing.T) {
	x := New(WithFinalizer(&countingFinalizer{panic: true}))

	_, err := x.Render(context.Background(), adaInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailed))
}

func TestExportFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out", DefaultFilename)

	err := New().ExportFile(context.Background(), adaInput(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportFileFailureWritesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DefaultFilename)

	x := New(WithFinalizer(&countingFinalizer{err: errors.New("boom")}))
	err := x.ExportFile(context.Background(), adaInput(), path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFromDocumentDefaultsToAllSections(t *testing.T) {
	in := FromDocument(portfolio.Document{User: &portfolio.UserProfile{Name: "Ada"}})

	assert.Equal(t, portfolio.AllSections(), in.Selection)
	assert.Equal(t, "Ada", in.User.Name)
}

func TestDigestDistinguishesSelection(t *testing.T) {
	a := adaInput()
	b := adaInput()
	b.Selection.Projects = false

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)

	assert.NotEqual(t, da, db)
}

func TestCacheKeyDependsOnSettings(t *testing.T) {
	in := adaInput()

	key := func(x *Exporter) (k string) {
		k, err := x.CacheKey(in)
		require.NoError(t, err)
		return k
	}

	base := key(New(WithFinalizer(renderer.NewPDF("Portfolio", "Ada"))))

	assert.Equal(t, base, key(New(WithFinalizer(renderer.NewPDF("Portfolio", "Ada")))))
	assert.NotEqual(t, base, key(New(WithFinalizer(renderer.NewPDF("Résumé", "Ada")))))
	assert.NotEqual(t, base, key(New(WithFinalizer(renderer.NewPDF("Portfolio", "Grace")))))
	assert.NotEqual(t, base, key(New(WithFinalizer(renderer.NewPDF("Portfolio", "Ada")), WithoutWrapping())))

	narrow := layout.A4()
	narrow.PageWidth = 148
	assert.NotEqual(t, base, key(New(WithFinalizer(renderer.NewPDF("Portfolio", "Ada")), WithGeometry(narrow))))
}

func TestRenderSharedCacheKeepsSettingsApart(t *testing.T) {
	c := newMemoryCache()
	rec := &recorder{}
	first := New(WithCache(c), WithRecorder(rec), WithFinalizer(renderer.NewPDF("First", "")))
	second := New(WithCache(c), WithRecorder(rec), WithFinalizer(renderer.NewPDF("Second", "")))

	a, err := first.Render(context.Background(), adaInput())
	require.NoError(t, err)
	b, err := second.Render(context.Background(), adaInput())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, 0, rec.hits)
	assert.Equal(t, 2, rec.rendered)
	assert.Len(t, c.entries, 2)
}
