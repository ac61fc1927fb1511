package seeds

import (
	"context"
	"path/filepath"

	"gorm.io/gorm"

	"internship_backend/internals/configs"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/seeds/internships"
)

// RunAllSeeds loads the demo data found in dir. Existing rows are left alone.
func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string) error {
	today := dbtime.Today(dbtime.SystemClock, configs.ProgramLocation())

	if err := internships.SeedRoundsFromJSON(ctx, db, filepath.Join(dir, "data_rounds.json"), today); err != nil {
		return err
	}
	return internships.SeedInternSelectionsFromJSON(ctx, db, filepath.Join(dir, "data_intern_selections.json"))
}
