package portfolio

import (
	"sort"
	"strings"
)

// topN caps the frequency lists in Stats.
const topN = 5

// Stats summarizes a bundle for dashboards.
type Stats struct {
	Achievements    int         `json:"achievements"`
	Projects        int         `json:"projects"`
	Participations  int         `json:"participations"`
	Wins            int         `json:"wins"`
	Podiums         int         `json:"podiums"`
	Online          int         `json:"online"`
	Offline         int         `json:"offline"`
	Solo            int         `json:"solo"`
	Team            int         `json:"team"`
	Events          int         `json:"events"`
	TopTechnologies []Frequency `json:"topTechnologies"`
	TopTags         []Frequency `json:"topTags"`
}

// Frequency is a value and how often it occurs.
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ComputeStats aggregates counts across a user's collections.
func ComputeStats(bundle Bundle) (stats Stats) {
	stats.Achievements = len(bundle.Achievements)
	stats.Projects = len(bundle.Projects)
	stats.Participations = len(bundle.Participations)

	events := make(map[string]bool)
	tags := make(map[string]int)
	technologies := make(map[string]int)

	for _, a := range bundle.Achievements {
		if a.Position != nil {
			if *a.Position == 1 {
				stats.Wins++
			}
			if *a.Position >= 1 && *a.Position <= 3 {
				stats.Podiums++
			}
		}
		stats.countEvent(a.EventName, a.EventType, events)
		stats.countEffort(a.IsSolo)
		countValues(tags, a.Tags)
	}

	for _, p := range bundle.Participations {
		stats.countEvent(p.EventName, p.EventType, events)
		stats.countEffort(p.IsSolo)
		countValues(tags, p.Tags)
	}

	for _, p := range bundle.Projects {
		stats.countEffort(p.IsSolo)
		countValues(tags, p.Tags)
		countValues(technologies, p.Technologies)
	}

	stats.Events = len(events)
	stats.TopTags = rank(tags, topN)
	stats.TopTechnologies = rank(technologies, topN)

	return stats
}

func (s *Stats) countEvent(name, eventType string, events map[string]bool) {
	if !IsBlank(name) {
		events[strings.TrimSpace(name)] = true
	}

	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "online":
		s.Online++
	case "offline":
		s.Offline++
	}
}

func (s *Stats) countEffort(solo bool) {
	if solo {
		s.Solo++
		return
	}
	s.Team++
}

func countValues(counts map[string]int, values []string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
	}
}

// rank orders by count descending, then value ascending.
func rank(counts map[string]int, limit int) (ranked []Frequency) {
	ranked = make([]Frequency, 0, len(counts))
	for value, count := range counts {
		ranked = append(ranked, Frequency{Value: value, Count: count})
	}

	sort.Slice(ranked, func(i, j int) (less bool) {
		if ranked[i].Count != ranked[j].Count {
			less = ranked[i].Count > ranked[j].Count
			return less
		}
		less = ranked[i].Value < ranked[j].Value
		return less
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
