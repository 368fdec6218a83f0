package compose

import (
	"testing"
	"time"

	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

func TestJoinList(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "three items", items: []string{"A", "B", "C"}, want: "A, B, C"},
		{name: "single item", items: []string{"A"}, want: "A"},
		{name: "trims and skips blanks", items: []string{" A ", "", "  ", "B"}, want: "A, B"},
		{name: "empty", items: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinList(tt.items)
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "online", want: "Online"},
		{in: "offline", want: "Offline"},
		{in: "hYBRID", want: "HYBRID"},
		{in: "école", want: "École"},
		{in: "", want: ""},
		{in: "  ", want: ""},
	}

	for _, tt := range tests {
		got := Capitalize(tt.in)
		if got != tt.want {
			t.Errorf("Capitalize(%q): expected '%s', got '%s'", tt.in, tt.want, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(portfolio.NewDate(2024, time.March, 1))
	if got != "March 1, 2024" {
		t.Errorf("Expected 'March 1, 2024', got '%s'", got)
	}

	if FormatDate(portfolio.Date{}) != "" {
		t.Error("Expected zero date to format empty")
	}
}

func TestLabels(t *testing.T) {
	if EffortLabel(true) != "Solo" || EffortLabel(false) != "Team" {
		t.Error("Unexpected effort labels")
	}
	if ProjectTypeLabel(true) != "Solo Project" || ProjectTypeLabel(false) != "Team Project" {
		t.Error("Unexpected project type labels")
	}
}

func TestFormatPosition(t *testing.T) {
	if FormatPosition(nil) != "" {
		t.Error("Expected nil position to format empty")
	}
	three := 3
	if FormatPosition(&three) != "3" {
		t.Errorf("Expected '3', got '%s'", FormatPosition(&three))
	}
}

func TestFormatMember(t *testing.T) {
	tests := []struct {
		member portfolio.TeamMember
		want   string
	}{
		{member: portfolio.TeamMember{Name: "Ada", Role: "Lead"}, want: "Ada (Lead)"},
		{member: portfolio.TeamMember{Name: "Ada"}, want: "Ada"},
		{member: portfolio.TeamMember{Name: "Ada", Role: " "}, want: "Ada"},
		{member: portfolio.TeamMember{Role: "Lead"}, want: ""},
	}

	for _, tt := range tests {
		got := FormatMember(tt.member)
		if got != tt.want {
			t.Errorf("Expected '%s', got '%s'", tt.want, got)
		}
	}
}
