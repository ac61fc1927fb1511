package internships

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_backend/internals/constants"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/testsupport"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testsupport.OpenDB(t)
	ctx := context.Background()
	today := dbtime.NewDate(2026, time.October, 17)

	for i := 0; i < 2; i++ {
		require.NoError(t, SeedRoundsFromJSON(ctx, db, "data_rounds.json", today))
		require.NoError(t, SeedInternSelectionsFromJSON(ctx, db, "data_intern_selections.json"))
	}

	var rounds, selections, mentors int64
	require.NoError(t, db.Model(&roundModel.RoundModel{}).Count(&rounds).Error)
	require.NoError(t, db.Model(&selectionModel.InternSelectionModel{}).Count(&selections).Error)
	require.NoError(t, db.Model(&selectionModel.InternSelectionMentorModel{}).Count(&mentors).Error)
	assert.EqualValues(t, 2, rounds)
	assert.EqualValues(t, 2, selections)
	assert.EqualValues(t, 3, mentors)

	var ada selectionModel.InternSelectionModel
	require.NoError(t, db.Where("intern_selection_intern_username = ?", "ada").Take(&ada).Error)
	// current-round initial feedback is 16 days ago, so its window is open
	w := ada.Window(constants.StageInitial)
	assert.Equal(t, "2026-09-24", w.Opens.String())
	assert.Equal(t, "2026-10-01", w.Due.String())
}

func TestSeedMissingFile(t *testing.T) {
	db := testsupport.OpenDB(t)
	assert.Error(t, SeedRoundsFromJSON(context.Background(), db, "missing.json", dbtime.NewDate(2026, time.October, 17)))
}
