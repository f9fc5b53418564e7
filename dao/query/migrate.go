package query

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

// Migrate brings the schema up to date. The initial migration creates every
// table; later schema changes get their own migration IDs appended below.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110-init",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.Constituency{},
					&model.Project{},
					&model.Contractor{},
					&model.ProcurementAward{},
					&model.Feedback{},
					&model.ProjectImage{},
					&model.User{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"project_images", "feedbacks", "procurement_awards",
					"contractors", "projects", "constituencies", "users",
				)
			},
		},
	})
	return m.Migrate()
}
