package store

import (
	"time"

	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

// userRow is a stored profile.
type userRow struct {
	ID          string                `gorm:"primaryKey;size:128"`
	Name        string                `gorm:"size:255"`
	Email       string                `gorm:"size:255"`
	Bio         string                `gorm:"type:text"`
	Qualities   []string              `gorm:"serializer:json"`
	Skills      []string              `gorm:"serializer:json"`
	SocialLinks portfolio.SocialLinks `gorm:"serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (userRow) TableName() (name string) {
	name = "users"
	return name
}

// achievementRow is a stored achievement.
type achievementRow struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         string `gorm:"index;size:128"`
	Ordinal        int
	Title          string
	Position       *int
	EventName      string
	EventDate      *time.Time
	EventType      string `gorm:"size:32"`
	IsSolo         bool
	Description    string   `gorm:"type:text"`
	CertificateURL string   `gorm:"size:1024"`
	Tags           []string `gorm:"serializer:json"`
}

func (achievementRow) TableName() (name string) {
	name = "achievements"
	return name
}

// projectRow is a stored project.
type projectRow struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"index;size:128"`
	Ordinal      int
	Name         string
	Description  string                 `gorm:"type:text"`
	Technologies []string               `gorm:"serializer:json"`
	Tags         []string               `gorm:"serializer:json"`
	IsSolo       bool                   `gorm:"column:is_solo"`
	TeamMembers  []portfolio.TeamMember `gorm:"serializer:json"`
	GitHubURL    string                 `gorm:"column:github_url;size:1024"`
}

func (projectRow) TableName() (name string) {
	name = "projects"
	return name
}

// participationRow is a stored participation.
type participationRow struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         string `gorm:"index;size:128"`
	Ordinal        int
	Title          string
	EventName      string
	EventDate      *time.Time
	EventType      string `gorm:"size:32"`
	IsSolo         bool
	Description    string   `gorm:"type:text"`
	CertificateURL string   `gorm:"size:1024"`
	Tags           []string `gorm:"serializer:json"`
}

func (participationRow) TableName() (name string) {
	name = "participations"
	return name
}

func dateToRow(d portfolio.Date) (t *time.Time) {
	if d.IsZero() {
		return t
	}
	v := d.Time
	t = &v
	return t
}

func dateFromRow(t *time.Time) (d portfolio.Date) {
	if t == nil {
		return d
	}
	utc := t.UTC()
	d = portfolio.NewDate(utc.Year(), utc.Month(), utc.Day())
	return d
}
