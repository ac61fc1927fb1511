package internships

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	selectionService "internship_backend/internals/features/internships/intern_selections/service"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/helpers/dbtime"
)

// Offsets are in days from the seeding date so the demo windows stay current.
type RoundSeed struct {
	RoundSlug             string `json:"round_slug"`
	RoundName             string `json:"round_name"`
	InternStartsOffset    int    `json:"internstarts_offset"`
	InitialFeedbackOffset int    `json:"initialfeedback_offset"`
	MidFeedbackOffset     int    `json:"midfeedback_offset"`
	FinalFeedbackOffset   int    `json:"finalfeedback_offset"`
	InternEndsOffset      int    `json:"internends_offset"`
}

type MentorSeed struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type SelectionSeed struct {
	RoundSlug      string       `json:"round_slug"`
	InternUserID   string       `json:"intern_user_id"`
	InternUsername string       `json:"intern_username"`
	InternName     string       `json:"intern_name"`
	ProjectName    string       `json:"project_name"`
	Mentors        []MentorSeed `json:"mentors"`
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SeedRoundsFromJSON inserts rounds whose slug does not exist yet.
func SeedRoundsFromJSON(ctx context.Context, db *gorm.DB, filePath string, today dbtime.Date) error {
	var rows []RoundSeed
	if err := readJSON(filePath, &rows); err != nil {
		return err
	}

	for _, r := range rows {
		var n int64
		if err := db.WithContext(ctx).Model(&roundModel.RoundModel{}).Where("round_slug = ?", r.RoundSlug).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			applog.Info().Add(applog.Component("seed")).Add(applog.Str("round_slug", r.RoundSlug)).Msg("round exists, skipping")
			continue
		}

		m := roundModel.RoundModel{
			RoundSlug:            r.RoundSlug,
			RoundName:            r.RoundName,
			RoundInternStarts:    today.AddDays(r.InternStartsOffset),
			RoundInitialFeedback: today.AddDays(r.InitialFeedbackOffset),
			RoundMidFeedback:     today.AddDays(r.MidFeedbackOffset),
			RoundFinalFeedback:   today.AddDays(r.FinalFeedbackOffset),
			RoundInternEnds:      today.AddDays(r.InternEndsOffset),
		}
		if err := db.WithContext(ctx).Create(&m).Error; err != nil {
			return fmt.Errorf("insert round %s: %w", r.RoundSlug, err)
		}
		applog.Info().Add(applog.Component("seed")).Add(applog.Str("round_slug", r.RoundSlug)).Msg("round inserted")
	}
	return nil
}

// SeedInternSelectionsFromJSON creates internships through the service so windows
// come from the round schedule. An intern already placed in the round is skipped.
func SeedInternSelectionsFromJSON(ctx context.Context, db *gorm.DB, filePath string) error {
	var rows []SelectionSeed
	if err := readJSON(filePath, &rows); err != nil {
		return err
	}
	svc := selectionService.NewInternSelectionService(db)

	for _, s := range rows {
		var round roundModel.RoundModel
		if err := db.WithContext(ctx).Where("round_slug = ?", s.RoundSlug).Take(&round).Error; err != nil {
			return fmt.Errorf("round %s for %s: %w", s.RoundSlug, s.InternUsername, err)
		}

		var n int64
		err := db.WithContext(ctx).Model(&selectionModel.InternSelectionModel{}).
			Where("intern_selection_round_id = ? AND intern_selection_intern_username = ?", round.RoundID, s.InternUsername).
			Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			applog.Info().Add(applog.Component("seed")).Add(applog.Str("intern_username", s.InternUsername)).Msg("internship exists, skipping")
			continue
		}

		internID, err := uuid.Parse(s.InternUserID)
		if err != nil {
			return fmt.Errorf("intern %s: %w", s.InternUsername, err)
		}
		in := selectionService.CreateInput{
			RoundID:        round.RoundID,
			InternUserID:   internID,
			InternUsername: s.InternUsername,
			InternName:     s.InternName,
			ProjectName:    s.ProjectName,
		}
		for _, mt := range s.Mentors {
			id, err := uuid.Parse(mt.UserID)
			if err != nil {
				return fmt.Errorf("mentor of %s: %w", s.InternUsername, err)
			}
			in.Mentors = append(in.Mentors, selectionService.MentorInput{UserID: id, Name: mt.Name})
		}
		if _, err := svc.Create(ctx, in); err != nil {
			return fmt.Errorf("insert internship of %s: %w", s.InternUsername, err)
		}
	}
	return nil
}
