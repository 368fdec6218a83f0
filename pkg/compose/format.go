package compose

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

// DisplayDateLayout is the long date format used in exports.
const DisplayDateLayout = "January 2, 2006"

// FormatDate renders a date as "Month Day, Year". The zero date renders empty.
func FormatDate(d portfolio.Date) (formatted string) {
	if d.IsZero() {
		return formatted
	}
	formatted = d.Format(DisplayDateLayout)
	return formatted
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) (capitalized string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return capitalized
	}
	first, size := utf8.DecodeRuneInString(s)
	capitalized = string(unicode.ToUpper(first)) + s[size:]
	return capitalized
}

// JoinList joins the non-blank items with ", ".
func JoinList(items []string) (joined string) {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kept = append(kept, item)
	}
	joined = strings.Join(kept, ", ")
	return joined
}

// EffortLabel names an achievement or participation effort.
func EffortLabel(solo bool) (label string) {
	label = "Team"
	if solo {
		label = "Solo"
	}
	return label
}

// ProjectTypeLabel names a project's type.
func ProjectTypeLabel(solo bool) (label string) {
	label = "Team Project"
	if solo {
		label = "Solo Project"
	}
	return label
}

// FormatPosition renders an optional ranking. Nil renders empty.
func FormatPosition(position *int) (formatted string) {
	if position == nil {
		return formatted
	}
	formatted = strconv.Itoa(*position)
	return formatted
}

// FormatMember renders "name (role)" or "name" when the role is blank.
func FormatMember(m portfolio.TeamMember) (formatted string) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return formatted
	}
	formatted = name
	if role := strings.TrimSpace(m.Role); role != "" {
		formatted += " (" + role + ")"
	}
	return formatted
}
