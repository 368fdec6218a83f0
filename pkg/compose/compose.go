// Package compose turns portfolio records into ordered template lines.
//
// Every renderer consumes the same Entries, so the PDF and the text preview
// cannot drift apart. A blank field skips its line; it never skips the record.
package compose

import (
	"strings"

	"github.com/checkdisout/checkdisout/pkg/layout"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

// Template styles.
//
//nolint:gochecknoglobals // fixed template
var (
	TitleStyle  = layout.Style{Weight: layout.Bold, Size: 20}
	HeaderStyle = layout.Style{Weight: layout.Bold, Size: 14}
	FieldStyle  = layout.Style{Weight: layout.Normal, Size: 11}
	StrongStyle = layout.Style{Weight: layout.Bold, Size: 12}
	ItemStyle   = layout.Style{Weight: layout.Italic, Size: 11}
	PromoStyle  = layout.Style{Weight: layout.Italic, Size: 9}
	LinkStyle   = layout.Style{Weight: layout.Normal, Size: 9}
)

// Indent is the offset of list items and sub-lines.
const Indent = 10.0

// Bullet prefixes list items.
const Bullet = "- "

// Promo block text.
const (
	PromoLine   = "This portfolio was generated with CheckDisOut."
	PromoInvite = "Create and share your own portfolio at:"
	PromoURL    = "https://checkdisout.vercel.app"
)

// Entry is one template line, or a gap.
type Entry struct {
	Text   string
	Style  layout.Style
	Indent float64
	Wrap   bool
	Link   string
	Gap    bool
}

// Exportable is a record that knows its own template lines.
type Exportable interface {
	Lines() []Entry
}

// Write emits entries in order.
func Write(e *layout.Emitter, entries []Entry) {
	for _, entry := range entries {
		switch {
		case entry.Gap:
			e.Gap()
		case entry.Link != "":
			e.EmitLink(entry.Text, entry.Link, entry.Style, entry.Indent)
		case entry.Wrap:
			e.EmitWrapped(entry.Text, entry.Style, entry.Indent)
		default:
			e.EmitLine(entry.Text, entry.Style, entry.Indent)
		}
	}
}

// builder accumulates entries and drops blank values. Every line it builds
// wraps at the printable width.
type builder struct {
	entries []Entry
}

func (b *builder) line(text string, style layout.Style, indent float64) {
	if portfolio.IsBlank(text) {
		return
	}
	b.entries = append(b.entries, Entry{Text: strings.TrimSpace(text), Style: style, Indent: indent, Wrap: true})
}

func (b *builder) field(label, value string, style layout.Style) {
	if portfolio.IsBlank(value) {
		return
	}
	b.line(label+": "+strings.TrimSpace(value), style, 0)
}

func (b *builder) paragraph(label, text string) {
	if portfolio.IsBlank(text) {
		return
	}
	b.line(label+":", FieldStyle, 0)
	b.entries = append(b.entries, Entry{Text: strings.TrimSpace(text), Style: FieldStyle, Indent: Indent, Wrap: true})
}

func (b *builder) items(header string, items []string) {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if !portfolio.IsBlank(item) {
			kept = append(kept, strings.TrimSpace(item))
		}
	}
	if len(kept) == 0 {
		return
	}
	b.line(header, HeaderStyle, 0)
	for _, item := range kept {
		b.line(Bullet+item, ItemStyle, Indent)
	}
	b.gap()
}

func (b *builder) gap() {
	b.entries = append(b.entries, Entry{Gap: true})
}

// Profile is the always-present head of the export: name, email, bio, then the
// qualities, skills and social links blocks when they have content.
func Profile(user portfolio.UserProfile) (entries []Entry) {
	b := &builder{}

	b.line(user.Name, TitleStyle, 0)
	b.line(user.Email, FieldStyle, 0)
	if !portfolio.IsBlank(user.Bio) {
		b.entries = append(b.entries, Entry{Text: strings.TrimSpace(user.Bio), Style: ItemStyle, Wrap: true})
	}
	if len(b.entries) > 0 {
		b.gap()
	}

	b.items("Qualities:", user.Qualities)
	b.items("Skills:", user.Skills)

	links := user.SocialLinks.Entries()
	if len(links) > 0 {
		b.line("Social Links:", HeaderStyle, 0)
		for _, link := range links {
			b.line(link.Platform+": "+link.URL, FieldStyle, Indent)
		}
		b.gap()
	}

	entries = b.entries
	return entries
}

// Promo is the fixed closing block, emitted on every export.
func Promo() (entries []Entry) {
	entries = []Entry{
		{Text: PromoLine, Style: PromoStyle},
		{Text: PromoInvite, Style: PromoStyle},
		{Text: PromoURL, Style: LinkStyle, Link: PromoURL},
	}
	return entries
}

// Section is a header followed by every item's lines. No items, no section.
func Section(header string, items []Exportable) (entries []Entry) {
	if len(items) == 0 {
		return entries
	}
	entries = append(entries, Entry{Text: header, Style: HeaderStyle})
	for _, item := range items {
		entries = append(entries, item.Lines()...)
	}
	return entries
}
