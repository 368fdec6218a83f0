package portfolio

import (
	"strings"
)

// UserProfile is the profile block of a portfolio.
type UserProfile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Bio         string      `json:"bio,omitempty"`
	Qualities   []string    `json:"qualities"`
	Skills      []string    `json:"skills"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// SocialLinks holds profile URLs keyed by platform.
type SocialLinks struct {
	GitHub    string `json:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
}

// SocialLink is one present platform link.
type SocialLink struct {
	Platform string
	URL      string
}

// Entries returns the present links in display order. Blank URLs are skipped.
func (s SocialLinks) Entries() (links []SocialLink) {
	candidates := []SocialLink{
		{Platform: "GitHub", URL: s.GitHub},
		{Platform: "LinkedIn", URL: s.LinkedIn},
		{Platform: "Twitter", URL: s.Twitter},
		{Platform: "Instagram", URL: s.Instagram},
		{Platform: "Website", URL: s.Website},
	}

	links = make([]SocialLink, 0, len(candidates))
	for _, c := range candidates {
		url := strings.TrimSpace(c.URL)
		if url == "" {
			continue
		}
		links = append(links, SocialLink{Platform: c.Platform, URL: url})
	}

	return links
}

// Achievement is a ranked result at an event.
type Achievement struct {
	Title          string   `json:"title"`
	Position       *int     `json:"position,omitempty"`
	EventName      string   `json:"eventName"`
	EventDate      Date     `json:"eventDate"`
	EventType      string   `json:"eventType"`
	IsSolo         bool     `json:"isSolo"`
	Description    string   `json:"description,omitempty"`
	CertificateURL string   `json:"certificateUrl,omitempty"`
	Tags           []string `json:"tags"`
}

// Project is a piece of work the user built.
type Project struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Technologies []string     `json:"technologies"`
	Tags         []string     `json:"tags"`
	IsSolo       bool         `json:"isSolo"`
	TeamMembers  []TeamMember `json:"teamMembers"`
	GitHubURL    string       `json:"githubUrl,omitempty"`
}

// TeamMember is a collaborator on a team project.
type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Participation is an event the user took part in.
type Participation struct {
	Title          string   `json:"title"`
	EventName      string   `json:"eventName"`
	EventDate      Date     `json:"eventDate"`
	EventType      string   `json:"eventType"`
	IsSolo         bool     `json:"isSolo"`
	Description    string   `json:"description,omitempty"`
	CertificateURL string   `json:"certificateUrl,omitempty"`
	Tags           []string `json:"tags"`
}

// Bundle is one user's profile and record collections.
type Bundle struct {
	User           UserProfile     `json:"user"`
	Achievements   []Achievement   `json:"achievements"`
	Projects       []Project       `json:"projects"`
	Participations []Participation `json:"participations"`
}

// Document is the export input as read from a file or request body.
type Document struct {
	User           *UserProfile    `json:"user"`
	Sections       *Selection      `json:"sections"`
	Achievements   []Achievement   `json:"achievements"`
	Projects       []Project       `json:"projects"`
	Participations []Participation `json:"participations"`
}

// Bundle returns the document's records. A missing user yields an empty profile.
func (d Document) Bundle() (bundle Bundle) {
	if d.User != nil {
		bundle.User = *d.User
	}
	bundle.Achievements = d.Achievements
	bundle.Projects = d.Projects
	bundle.Participations = d.Participations
	return bundle
}

// Selection returns the document's sections, or every section when absent.
func (d Document) Selection() (selection Selection) {
	if d.Sections == nil {
		selection = AllSections()
		return selection
	}
	selection = *d.Sections
	return selection
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) (blank bool) {
	blank = strings.TrimSpace(s) == ""
	return blank
}
