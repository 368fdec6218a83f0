// Package store persists portfolios so the server can export them by user id.
package store

import (
	"context"

	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrNotFound is returned when no profile is stored for a user.
var ErrNotFound = errors.New("portfolio not found")

// Open connects to the configured database.
func Open(driver string, dsn string) (db *gorm.DB, err error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		err = errors.Errorf("unsupported database driver %q", driver)
		return db, err
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to open %s database", driver)
		return db, err
	}

	return db, err
}

// Repository reads and writes portfolios.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) (r *Repository) {
	r = &Repository{db: db}
	return r
}

// Migrate creates or updates the portfolio tables.
func (r *Repository) Migrate(ctx context.Context) (err error) {
	err = r.db.WithContext(ctx).AutoMigrate(&userRow{}, &achievementRow{}, &projectRow{}, &participationRow{})
	if err != nil {
		err = errors.Wrap(err, "failed to migrate portfolio tables")
		return err
	}
	return err
}

// Save replaces everything stored for userID with bundle.
func (r *Repository) Save(ctx context.Context, userID string, bundle portfolio.Bundle) (err error) {
	if portfolio.IsBlank(userID) {
		err = errors.New("user id is required")
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		user := toUserRow(userID, bundle.User)
		err = tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&user).Error
		if err != nil {
			return errors.Wrap(err, "failed to save profile")
		}

		for _, model := range []interface{}{&achievementRow{}, &projectRow{}, &participationRow{}} {
			err = tx.Where("user_id = ?", userID).Delete(model).Error
			if err != nil {
				return errors.Wrap(err, "failed to clear records")
			}
		}

		if rows := toAchievementRows(userID, bundle.Achievements); len(rows) > 0 {
			err = tx.Create(&rows).Error
			if err != nil {
				return errors.Wrap(err, "failed to save achievements")
			}
		}
		if rows := toProjectRows(userID, bundle.Projects); len(rows) > 0 {
			err = tx.Create(&rows).Error
			if err != nil {
				return errors.Wrap(err, "failed to save projects")
			}
		}
		if rows := toParticipationRows(userID, bundle.Participations); len(rows) > 0 {
			err = tx.Create(&rows).Error
			if err != nil {
				return errors.Wrap(err, "failed to save participations")
			}
		}

		return err
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to save portfolio for %s", userID)
		return err
	}

	return err
}

// Load returns the portfolio stored for userID, records in saved order.
func (r *Repository) Load(ctx context.Context, userID string) (bundle portfolio.Bundle, err error) {
	db := r.db.WithContext(ctx)

	var user userRow
	err = db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
			return bundle, err
		}
		err = errors.Wrapf(err, "failed to load profile %s", userID)
		return bundle, err
	}
	bundle.User = fromUserRow(user)

	var achievements []achievementRow
	err = db.Where("user_id = ?", userID).Order("ordinal").Find(&achievements).Error
	if err != nil {
		err = errors.Wrap(err, "failed to load achievements")
		return bundle, err
	}
	var projects []projectRow
	err = db.Where("user_id = ?", userID).Order("ordinal").Find(&projects).Error
	if err != nil {
		err = errors.Wrap(err, "failed to load projects")
		return bundle, err
	}
	var participations []participationRow
	err = db.Where("user_id = ?", userID).Order("ordinal").Find(&participations).Error
	if err != nil {
		err = errors.Wrap(err, "failed to load participations")
		return bundle, err
	}

	bundle.Achievements = make([]portfolio.Achievement, 0, len(achievements))
	for _, row := range achievements {
		bundle.Achievements = append(bundle.Achievements, portfolio.Achievement{
			Title:          row.Title,
			Position:       row.Position,
			EventName:      row.EventName,
			EventDate:      dateFromRow(row.EventDate),
			EventType:      row.EventType,
			IsSolo:         row.IsSolo,
			Description:    row.Description,
			CertificateURL: row.CertificateURL,
			Tags:           row.Tags,
		})
	}
	bundle.Projects = make([]portfolio.Project, 0, len(projects))
	for _, row := range projects {
		bundle.Projects = append(bundle.Projects, portfolio.Project{
			Name:         row.Name,
			Description:  row.Description,
			Technologies: row.Technologies,
			Tags:         row.Tags,
			IsSolo:       row.IsSolo,
			TeamMembers:  row.TeamMembers,
			GitHubURL:    row.GitHubURL,
		})
	}
	bundle.Participations = make([]portfolio.Participation, 0, len(participations))
	for _, row := range participations {
		bundle.Participations = append(bundle.Participations, portfolio.Participation{
			Title:          row.Title,
			EventName:      row.EventName,
			EventDate:      dateFromRow(row.EventDate),
			EventType:      row.EventType,
			IsSolo:         row.IsSolo,
			Description:    row.Description,
			CertificateURL: row.CertificateURL,
			Tags:           row.Tags,
		})
	}

	return bundle, err
}

func toUserRow(userID string, u portfolio.UserProfile) (row userRow) {
	row = userRow{
		ID:          userID,
		Name:        u.Name,
		Email:       u.Email,
		Bio:         u.Bio,
		Qualities:   u.Qualities,
		Skills:      u.Skills,
		SocialLinks: u.SocialLinks,
	}
	return row
}

func fromUserRow(row userRow) (u portfolio.UserProfile) {
	u = portfolio.UserProfile{
		Name:        row.Name,
		Email:       row.Email,
		Bio:         row.Bio,
		Qualities:   row.Qualities,
		Skills:      row.Skills,
		SocialLinks: row.SocialLinks,
	}
	return u
}

func toAchievementRows(userID string, items []portfolio.Achievement) (rows []achievementRow) {
	for i, a := range items {
		rows = append(rows, achievementRow{
			UserID:         userID,
			Ordinal:        i,
			Title:          a.Title,
			Position:       a.Position,
			EventName:      a.EventName,
			EventDate:      dateToRow(a.EventDate),
			EventType:      a.EventType,
			IsSolo:         a.IsSolo,
			Description:    a.Description,
			CertificateURL: a.CertificateURL,
			Tags:           a.Tags,
		})
	}
	return rows
}

func toProjectRows(userID string, items []portfolio.Project) (rows []projectRow) {
	for i, p := range items {
		rows = append(rows, projectRow{
			UserID:       userID,
			Ordinal:      i,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			Tags:         p.Tags,
			IsSolo:       p.IsSolo,
			TeamMembers:  p.TeamMembers,
			GitHubURL:    p.GitHubURL,
		})
	}
	return rows
}

func toParticipationRows(userID string, items []portfolio.Participation) (rows []participationRow) {
	for i, p := range items {
		rows = append(rows, participationRow{
			UserID:         userID,
			Ordinal:        i,
			Title:          p.Title,
			EventName:      p.EventName,
			EventDate:      dateToRow(p.EventDate),
			EventType:      p.EventType,
			IsSolo:         p.IsSolo,
			Description:    p.Description,
			CertificateURL: p.CertificateURL,
			Tags:           p.Tags,
		})
	}
	return rows
}
