package portfolio

import (
	"strings"

	"github.com/pkg/errors"
)

// Section keys accepted in selections.
const (
	SectionAchievements   = "achievements"
	SectionProjects       = "projects"
	SectionParticipations = "participations"
)

// Selection gates the optional sections of an export.
type Selection struct {
	Achievements   bool `json:"achievements"`
	Projects       bool `json:"projects"`
	Participations bool `json:"participations"`
}

// AllSections selects every optional section.
func AllSections() (selection Selection) {
	selection = Selection{Achievements: true, Projects: true, Participations: true}
	return selection
}

// Any reports whether at least one section is selected.
func (s Selection) Any() (selected bool) {
	selected = s.Achievements || s.Projects || s.Participations
	return selected
}

// Keys returns the selected section keys in export order.
func (s Selection) Keys() (keys []string) {
	keys = make([]string, 0, 3)
	if s.Achievements {
		keys = append(keys, SectionAchievements)
	}
	if s.Projects {
		keys = append(keys, SectionProjects)
	}
	if s.Participations {
		keys = append(keys, SectionParticipations)
	}
	return keys
}

// ParseSelection reads a comma-separated list of section keys.
// An empty list selects nothing; "all" selects everything.
func ParseSelection(list string) (selection Selection, err error) {
	for _, raw := range strings.Split(list, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		switch key {
		case "":
			continue
		case "all":
			selection = AllSections()
		case SectionAchievements:
			selection.Achievements = true
		case SectionProjects:
			selection.Projects = true
		case SectionParticipations:
			selection.Participations = true
		default:
			err = errors.Errorf("unknown section %q: must be achievements, projects, participations or all", key)
			return selection, err
		}
	}
	return selection, err
}
