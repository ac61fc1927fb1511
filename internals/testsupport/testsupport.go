// Package testsupport opens throwaway SQLite databases and builds fixtures for tests.
package testsupport

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"internship_backend/internals/constants"
	database "internship_backend/internals/databases"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/dbtime"
)

// OpenDB returns a migrated SQLite database that lives for the duration of t.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// FixedClock always reports noon UTC of day.
func FixedClock(day dbtime.Date) dbtime.Clock {
	return func() time.Time { return day.Add(12 * time.Hour) }
}

// Round inserts a round with the given feedback milestones.
func Round(t testing.TB, db *gorm.DB, initial, mid, final dbtime.Date) *roundModel.RoundModel {
	t.Helper()
	r := roundModel.RoundModel{
		RoundSlug:            "round-" + uuid.NewString()[:8],
		RoundName:            "Test Round",
		RoundInternStarts:    initial.AddDays(-14),
		RoundInitialFeedback: initial,
		RoundMidFeedback:     mid,
		RoundFinalFeedback:   final,
		RoundInternEnds:      final.AddDays(14),
	}
	require.NoError(t, db.Create(&r).Error)
	return &r
}

// Participant is a user taking part in an internship.
type Participant struct {
	ID       uuid.UUID
	Username string
}

func NewParticipant(username string) Participant {
	return Participant{ID: uuid.New(), Username: username}
}

// Selection inserts an active internship of intern in round with windows taken from
// the round schedule (opens a week before each milestone).
func Selection(t testing.TB, db *gorm.DB, r *roundModel.RoundModel, intern Participant, mentors ...Participant) *selectionModel.InternSelectionModel {
	t.Helper()
	m := selectionModel.InternSelectionModel{
		InternSelectionRoundID:        r.RoundID,
		InternSelectionInternUserID:   intern.ID,
		InternSelectionInternUsername: intern.Username,
		InternSelectionInternName:     intern.Username + " Intern",
		InternSelectionProjectName:    "Project of " + intern.Username,
		InternSelectionActive:         true,
		InternSelectionInternStarts:   r.RoundInternStarts,
		InternSelectionInternEnds:     r.RoundInternEnds,
	}
	for _, st := range constants.Stages {
		due := r.Milestone(st)
		m.SetWindow(st, selectionModel.Window{Opens: due.AddDays(-7), Due: due})
	}
	require.NoError(t, db.Create(&m).Error)

	for _, p := range mentors {
		row := selectionModel.InternSelectionMentorModel{
			InternSelectionMentorSelectionID: m.InternSelectionID,
			InternSelectionMentorUserID:      p.ID,
			InternSelectionMentorName:        p.Username,
		}
		require.NoError(t, db.Create(&row).Error)
		m.Mentors = append(m.Mentors, row)
	}
	return &m
}

// AsUser stands in for the JWT middleware by filling the auth locals directly.
func AsUser(p Participant, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, p.ID.String())
		c.Locals(helper.LocUsername, p.Username)
		c.Locals(helper.LocRoles, roles)
		return c.Next()
	}
}

// Token signs an HS256 access token for p.
func Token(t testing.TB, secret string, p Participant, roles ...string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       p.ID.String(),
		"username": p.Username,
		"roles":    roles,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}
