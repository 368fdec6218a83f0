package compose

import (
	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

// Section headers.
const (
	AchievementsHeader   = "Achievements:"
	ProjectsHeader       = "Projects:"
	ParticipationsHeader = "Participations:"
)

// AchievementItem adapts an achievement to Exportable.
type AchievementItem portfolio.Achievement

// Lines lists title, position, event, date, type, effort, description,
// certificate and tags, then a gap.
func (a AchievementItem) Lines() (entries []Entry) {
	b := &builder{}
	b.field("Title", a.Title, StrongStyle)
	b.field("Position", FormatPosition(a.Position), FieldStyle)
	b.event(a.EventName, a.EventDate, a.EventType, a.IsSolo)
	b.paragraph("Description", a.Description)
	b.field("Certificate", a.CertificateURL, FieldStyle)
	b.field("Tags", JoinList(a.Tags), FieldStyle)
	b.gap()
	entries = b.entries
	return entries
}

// ParticipationItem adapts a participation to Exportable.
type ParticipationItem portfolio.Participation

// Lines mirrors AchievementItem without a position.
func (p ParticipationItem) Lines() (entries []Entry) {
	b := &builder{}
	b.field("Title", p.Title, StrongStyle)
	b.event(p.EventName, p.EventDate, p.EventType, p.IsSolo)
	b.paragraph("Description", p.Description)
	b.field("Certificate", p.CertificateURL, FieldStyle)
	b.field("Tags", JoinList(p.Tags), FieldStyle)
	b.gap()
	entries = b.entries
	return entries
}

// ProjectItem adapts a project to Exportable.
type ProjectItem portfolio.Project

// Lines lists name, description, technologies, type, team members, tags and
// GitHub URL, then a gap.
func (p ProjectItem) Lines() (entries []Entry) {
	b := &builder{}
	b.field("Name", p.Name, StrongStyle)
	b.paragraph("Description", p.Description)
	b.field("Technologies", JoinList(p.Technologies), FieldStyle)
	b.field("Type", ProjectTypeLabel(p.IsSolo), FieldStyle)

	if !p.IsSolo {
		members := make([]string, 0, len(p.TeamMembers))
		for _, m := range p.TeamMembers {
			if formatted := FormatMember(m); formatted != "" {
				members = append(members, formatted)
			}
		}
		if len(members) > 0 {
			b.line("Team Members:", FieldStyle, 0)
			for _, m := range members {
				b.line(Bullet+m, ItemStyle, Indent)
			}
		}
	}

	b.field("Tags", JoinList(p.Tags), FieldStyle)
	b.field("GitHub", p.GitHubURL, FieldStyle)
	b.gap()
	entries = b.entries
	return entries
}

func (b *builder) event(name string, date portfolio.Date, eventType string, solo bool) {
	b.field("Event", name, FieldStyle)
	b.field("Date", FormatDate(date), FieldStyle)
	b.field("Type", Capitalize(eventType), FieldStyle)
	b.field("Effort", EffortLabel(solo), FieldStyle)
}

// Achievements adapts a collection for Section.
func Achievements(records []portfolio.Achievement) (items []Exportable) {
	items = make([]Exportable, 0, len(records))
	for _, r := range records {
		items = append(items, AchievementItem(r))
	}
	return items
}

// Projects adapts a collection for Section.
func Projects(records []portfolio.Project) (items []Exportable) {
	items = make([]Exportable, 0, len(records))
	for _, r := range records {
		items = append(items, ProjectItem(r))
	}
	return items
}

// Participations adapts a collection for Section.
func Participations(records []portfolio.Participation) (items []Exportable) {
	items = make([]Exportable, 0, len(records))
	for _, r := range records {
		items = append(items, ParticipationItem(r))
	}
	return items
}
