package export

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
)

// fakeBundle generates a reproducible portfolio of the given size.
func fakeBundle(seed int64, n int) (bundle portfolio.Bundle) {
	f := gofakeit.New(seed)

	bundle.User = portfolio.UserProfile{
		Name:      f.Name(),
		Email:     f.Email(),
		Bio:       f.Paragraph(1, 3, 12, " "),
		Qualities: []string{f.Word(), f.Word()},
		Skills:    []string{f.ProgrammingLanguage(), f.ProgrammingLanguage(), f.ProgrammingLanguage()},
		SocialLinks: portfolio.SocialLinks{
			GitHub:  f.URL(),
			Website: f.URL(),
		},
	}

	for i := 0; i < n; i++ {
		date := f.Date()
		position := f.Number(1, 10)
		bundle.Achievements = append(bundle.Achievements, portfolio.Achievement{
			Title:          f.JobTitle(),
			Position:       &position,
			EventName:      f.Company(),
			EventDate:      portfolio.NewDate(date.Year(), date.Month(), date.Day()),
			EventType:      f.RandomString([]string{"online", "offline"}),
			IsSolo:         f.Bool(),
			Description:    f.Sentence(40),
			CertificateURL: f.URL(),
			Tags:           []string{f.Word(), f.Word()},
		})

		project := portfolio.Project{
			Name:         f.AppName(),
			Description:  f.Sentence(30),
			Technologies: []string{f.ProgrammingLanguage(), f.ProgrammingLanguage()},
			Tags:         []string{f.Word()},
			IsSolo:       f.Bool(),
			GitHubURL:    f.URL(),
		}
		if !project.IsSolo {
			project.TeamMembers = []portfolio.TeamMember{
				{Name: f.Name(), Role: f.JobTitle()},
				{Name: f.Name()},
			}
		}
		bundle.Projects = append(bundle.Projects, project)

		date = f.Date()
		bundle.Participations = append(bundle.Participations, portfolio.Participation{
			Title:       f.JobTitle(),
			EventName:   f.Company(),
			EventDate:   portfolio.NewDate(date.Year(), date.Month(), date.Day()),
			EventType:   f.RandomString([]string{"online", "offline"}),
			IsSolo:      f.Bool(),
			Description: f.Sentence(20),
			Tags:        []string{f.Word()},
		})
	}

	return bundle
}
