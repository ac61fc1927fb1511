package helper_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	roundModel "internship_backend/internals/features/internships/rounds/model"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/testsupport"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Summer 2026 Round", "summer-2026-round"},
		{"  --Winter__cohort!! ", "winter-cohort"},
		{"", ""},
		{"Ünïcode Round", "ünïcode-round"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, helper.GenerateSlug(tc.in), tc.in)
	}
}

func TestGenerateUniqueSlug(t *testing.T) {
	db := testsupport.OpenDB(t)
	opts := helper.SlugOptions{Table: "internship_rounds", SlugColumn: "round_slug", DefaultBase: "round"}

	d := dbtime.NewDate(2026, time.June, 1)
	for _, slug := range []string{"may-2026", "may-2026-2"} {
		require.NoError(t, db.Create(&roundModel.RoundModel{
			RoundSlug: slug, RoundName: slug,
			RoundInternStarts: d, RoundInitialFeedback: d, RoundMidFeedback: d, RoundFinalFeedback: d, RoundInternEnds: d,
		}).Error)
	}

	got, err := helper.GenerateUniqueSlug(db, opts, "May 2026")
	require.NoError(t, err)
	assert.Equal(t, "may-2026-3", got)

	got, err = helper.GenerateUniqueSlug(db, opts, "!!!")
	require.NoError(t, err)
	assert.Equal(t, "round", got)

	_, err = helper.GenerateUniqueSlug(db, helper.SlugOptions{}, "x")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, helper.IsUniqueViolation(nil))
	assert.True(t, helper.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, helper.IsUniqueViolation(fmt.Errorf("save: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, helper.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, helper.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, helper.IsUniqueViolation(gorm.ErrRecordNotFound))

	db := testsupport.OpenDB(t)
	d := dbtime.NewDate(2026, time.June, 1)
	mk := func() *roundModel.RoundModel {
		return &roundModel.RoundModel{
			RoundSlug: "dup", RoundName: "dup",
			RoundInternStarts: d, RoundInitialFeedback: d, RoundMidFeedback: d, RoundFinalFeedback: d, RoundInternEnds: d,
		}
	}
	require.NoError(t, db.Create(mk()).Error)
	assert.True(t, helper.IsUniqueViolation(db.Create(mk()).Error))
	assert.True(t, helper.IsNotFound(db.Where("round_slug = ?", "missing").Take(&roundModel.RoundModel{}).Error))
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := helper.ResolvePaging(c, 20, 100)
		return c.JSON(helper.BuildPagination(45, p, 5))
	})

	cases := []struct {
		query string
		want  helper.Pagination
	}{
		{"", helper.Pagination{Page: 1, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, Count: 5}},
		{"?page=3&per_page=20", helper.Pagination{Page: 3, PerPage: 20, Total: 45, TotalPages: 3, HasPrev: true, Count: 5}},
		{"?limit=500", helper.Pagination{Page: 1, PerPage: 100, Total: 45, TotalPages: 1, Count: 5}},
		{"?page=-2&per_page=abc", helper.Pagination{Page: 1, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, Count: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+tc.query, nil))
			require.NoError(t, err)
			var got helper.Pagination
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFieldErrorsUseFormNames(t *testing.T) {
	type form struct {
		Stage string `form:"stage" json:"stage" validate:"required,oneof=initial midpoint final"`
		Weeks int    `json:"weeks" validate:"min=1,max=5"`
	}
	err := helper.NewValidator().Struct(form{Stage: "late", Weeks: 9})
	fields, ok := helper.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "stage")
	assert.Contains(t, fields, "weeks")
	assert.Contains(t, fields["weeks"][0], "at most 5")

	_, ok = helper.FieldErrors(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestGetUsernameTrimsLocal(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(helper.LocUsername, "  alice \n")
		return c.SendString(helper.GetUsername(c))
	})
	app.Get("/anon", func(c *fiber.Ctx) error {
		return c.SendString("[" + helper.GetUsername(c) + "]")
	})

	for path, want := range map[string]string{"/": "alice", "/anon": "[]"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body), path)
	}
}
