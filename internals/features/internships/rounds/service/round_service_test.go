package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/testsupport"
)

func round(name string, starts dbtime.Date) *roundModel.RoundModel {
	return &roundModel.RoundModel{
		RoundName:            name,
		RoundInternStarts:    starts,
		RoundInitialFeedback: starts.AddWeeks(2),
		RoundMidFeedback:     starts.AddWeeks(7),
		RoundFinalFeedback:   starts.AddWeeks(12),
		RoundInternEnds:      starts.AddWeeks(14),
	}
}

func TestCheckOrder(t *testing.T) {
	starts := dbtime.NewDate(2026, time.June, 1)
	assert.NoError(t, checkOrder(round("ok", starts)))

	same := round("same day", starts)
	same.RoundInitialFeedback = starts
	assert.NoError(t, checkOrder(same))

	bad := round("bad", starts)
	bad.RoundMidFeedback = bad.RoundFinalFeedback.AddDays(1)
	assert.ErrorIs(t, checkOrder(bad), ErrMilestonesOutOfOrder)
}

func TestCreateGetAndSave(t *testing.T) {
	svc := NewRoundService(testsupport.OpenDB(t))
	ctx := context.Background()
	starts := dbtime.NewDate(2026, time.May, 25)

	first := round("May 2026", starts)
	require.NoError(t, svc.Create(ctx, first))
	assert.Equal(t, "may-2026", first.RoundSlug)

	second := round("May 2026", starts)
	require.NoError(t, svc.Create(ctx, second))
	assert.NotEqual(t, first.RoundSlug, second.RoundSlug)

	got, err := svc.Get(ctx, "may-2026")
	require.NoError(t, err)
	assert.Equal(t, first.RoundID, got.RoundID)
	assert.Equal(t, "2026-08-17", got.RoundFinalFeedback.String())

	got, err = svc.Get(ctx, first.RoundID.String())
	require.NoError(t, err)
	assert.Equal(t, "may-2026", got.RoundSlug)

	_, err = svc.Get(ctx, "no-such-round")
	assert.ErrorIs(t, err, ErrRoundNotFound)

	got.RoundInternEnds = got.RoundInternStarts.AddDays(-1)
	assert.ErrorIs(t, svc.Save(ctx, got), ErrMilestonesOutOfOrder)

	rows, total, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)
}
