package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"internship_backend/internals/configs"
	"internship_backend/internals/constants"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	feedbackService "internship_backend/internals/features/internships/feedback/service"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/helpers/dbtime"
)

var (
	ErrSelectionNotFound = errors.New("internship not found")
	ErrRoundNotFound     = errors.New("round not found")
	ErrNotFunded         = errors.New("internship cannot be approved before a funding source is set")
	ErrInvalidFunding    = errors.New("unknown funding source")
	ErrNotMentor         = errors.New("you are not a mentor of this internship")
	ErrMentorExists      = errors.New("mentor already assigned to this internship")
	ErrLastMentor        = errors.New("the only mentor of an internship cannot resign")
	ErrInvalidWeeks      = errors.New("extensions are 1 to 5 weeks")
)

const MaxExtensionWeeks = 5

// WindowLead is how long before a milestone its feedback window opens.
const WindowLead = 7

type InternSelectionService struct {
	DB       *gorm.DB
	Clock    dbtime.Clock
	Location *time.Location
}

func NewInternSelectionService(db *gorm.DB) *InternSelectionService {
	return &InternSelectionService{
		DB:       db,
		Clock:    dbtime.SystemClock,
		Location: configs.ProgramLocation(),
	}
}

func (s *InternSelectionService) today() dbtime.Date {
	return dbtime.Today(s.Clock, s.Location)
}

// ApplyRoundSchedule copies the round's milestones onto a new internship.
func ApplyRoundSchedule(m *selectionModel.InternSelectionModel, r *roundModel.RoundModel) {
	for _, st := range constants.Stages {
		due := r.Milestone(st)
		m.SetWindow(st, selectionModel.Window{Opens: due.AddDays(-WindowLead), Due: due})
	}
	m.InternSelectionInternStarts = r.RoundInternStarts
	m.InternSelectionInternEnds = r.RoundInternEnds
}

type MentorInput struct {
	UserID uuid.UUID
	Name   string
}

type CreateInput struct {
	RoundID        uuid.UUID
	InternUserID   uuid.UUID
	InternUsername string
	InternName     string
	ProjectName    string
	Mentors        []MentorInput
}

func (s *InternSelectionService) Create(ctx context.Context, in CreateInput) (*selectionModel.InternSelectionModel, error) {
	var out selectionModel.InternSelectionModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round roundModel.RoundModel
		if err := tx.Where("round_id = ?", in.RoundID).Take(&round).Error; err != nil {
			if helper.IsNotFound(err) {
				return ErrRoundNotFound
			}
			return fmt.Errorf("load round %s: %w", in.RoundID, err)
		}

		out = selectionModel.InternSelectionModel{
			InternSelectionRoundID:        round.RoundID,
			InternSelectionInternUserID:   in.InternUserID,
			InternSelectionInternUsername: in.InternUsername,
			InternSelectionInternName:     in.InternName,
			InternSelectionProjectName:    in.ProjectName,
			InternSelectionActive:         true,
		}
		ApplyRoundSchedule(&out, &round)

		if err := tx.Omit(clause.Associations).Create(&out).Error; err != nil {
			return fmt.Errorf("create internship: %w", err)
		}

		seen := make(map[uuid.UUID]bool, len(in.Mentors))
		for _, mt := range in.Mentors {
			if seen[mt.UserID] {
				continue
			}
			seen[mt.UserID] = true
			row := selectionModel.InternSelectionMentorModel{
				InternSelectionMentorSelectionID: out.InternSelectionID,
				InternSelectionMentorUserID:      mt.UserID,
				InternSelectionMentorName:        mt.Name,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("add mentor %s: %w", mt.UserID, err)
			}
			out.Mentors = append(out.Mentors, row)
		}
		out.Round = &round
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Info().
		Add(applog.Component("intern_selections")).
		Add(applog.SelectionID(out.InternSelectionID)).
		Add(applog.Str("intern_username", out.InternSelectionInternUsername)).
		Msg("internship created")
	return &out, nil
}

type ListFilter struct {
	RoundID *uuid.UUID
	Active  *bool
}

func (s *InternSelectionService) List(ctx context.Context, f ListFilter, offset, limit int) ([]selectionModel.InternSelectionModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&selectionModel.InternSelectionModel{})
	if f.RoundID != nil {
		q = q.Where("intern_selection_round_id = ?", *f.RoundID)
	}
	if f.Active != nil {
		q = q.Where("intern_selection_active = ?", *f.Active)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []selectionModel.InternSelectionModel
	err := q.Preload("Round").Preload("Mentors").
		Order("intern_selection_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *InternSelectionService) Get(ctx context.Context, id uuid.UUID) (*selectionModel.InternSelectionModel, error) {
	return load(s.DB.WithContext(ctx), id, false)
}

func load(tx *gorm.DB, id uuid.UUID, lock bool) (*selectionModel.InternSelectionModel, error) {
	q := tx.Preload("Round").Preload("Mentors")
	if lock && tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m selectionModel.InternSelectionModel
	if err := q.Where("intern_selection_id = ?", id).Take(&m).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("load internship %s: %w", id, err)
	}
	return &m, nil
}

func (s *InternSelectionService) AddMentor(ctx context.Context, id uuid.UUID, in MentorInput) (*selectionModel.InternSelectionModel, error) {
	var out *selectionModel.InternSelectionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := load(tx, id, true)
		if err != nil {
			return err
		}
		if m.HasMentor(in.UserID) {
			return ErrMentorExists
		}
		row := selectionModel.InternSelectionMentorModel{
			InternSelectionMentorSelectionID: m.InternSelectionID,
			InternSelectionMentorUserID:      in.UserID,
			InternSelectionMentorName:        in.Name,
		}
		if err := tx.Create(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrMentorExists
			}
			return fmt.Errorf("add mentor: %w", err)
		}
		m.Mentors = append(m.Mentors, row)
		out = m
		return nil
	})
	return out, err
}

// ExtensionResult reports what an extension changed.
type ExtensionResult struct {
	Selection *selectionModel.InternSelectionModel
	NewDate   dbtime.Date
	Reopened  bool
}

// Extend moves a stage's window to the round milestone plus weeks. Extensions do
// not stack: a second extension is measured from the round again.
func (s *InternSelectionService) Extend(ctx context.Context, id uuid.UUID, stage constants.Stage, weeks int) (*ExtensionResult, error) {
	if weeks < 1 || weeks > MaxExtensionWeeks {
		return nil, ErrInvalidWeeks
	}
	var res ExtensionResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := load(tx, id, true)
		if err != nil {
			return err
		}
		if m.Round == nil {
			return fmt.Errorf("internship %s has no round", id)
		}

		newDate := m.Round.Milestone(stage).AddWeeks(weeks)
		m.SetWindow(stage, selectionModel.Window{Opens: newDate, Due: newDate.AddDays(WindowLead)})
		if stage == constants.StageFinal {
			m.InternSelectionInternEnds = newDate
		}
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("extend internship %s: %w", id, err)
		}

		reopened, err := feedbackService.ReopenTx(tx, feedbackModel.Kind{Stage: stage, Role: constants.FeedbackByMentor}, id)
		if err != nil {
			return err
		}
		res = ExtensionResult{Selection: m, NewDate: newDate, Reopened: reopened}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Info().
		Add(applog.Component("intern_selections")).
		Add(applog.SelectionID(id)).
		Add(applog.Stage(string(stage))).
		Add(applog.Int("weeks", weeks)).
		Add(applog.Date("new_date", res.NewDate.Time)).
		Add(applog.Bool("reopened", res.Reopened)).
		Msg("internship extended")
	return &res, nil
}

// Terminate deactivates the internship and ends it today.
func (s *InternSelectionService) Terminate(ctx context.Context, id uuid.UUID) (*selectionModel.InternSelectionModel, error) {
	today := s.today()
	var out *selectionModel.InternSelectionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := load(tx, id, true)
		if err != nil {
			return err
		}
		m.InternSelectionActive = false
		m.InternSelectionInternEnds = today
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("terminate internship %s: %w", id, err)
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	applog.Warn().
		Add(applog.Component("intern_selections")).
		Add(applog.SelectionID(id)).
		Add(applog.Date("intern_ends", today.Time)).
		Msg("internship terminated")
	return out, nil
}

func (s *InternSelectionService) Fund(ctx context.Context, id uuid.UUID, source selectionModel.FundingSource) (*selectionModel.InternSelectionModel, error) {
	if !source.Valid() {
		return nil, ErrInvalidFunding
	}
	return s.update(ctx, id, func(m *selectionModel.InternSelectionModel) error {
		m.InternSelectionFundingSource = source
		return nil
	})
}

// SetApproval records the organizer decision. Funding must be decided first.
func (s *InternSelectionService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*selectionModel.InternSelectionModel, error) {
	return s.update(ctx, id, func(m *selectionModel.InternSelectionModel) error {
		if m.InternSelectionFundingSource == selectionModel.FundingNotFunded {
			return ErrNotFunded
		}
		m.InternSelectionOrganizerApproved = &approved
		return nil
	})
}

func (s *InternSelectionService) update(ctx context.Context, id uuid.UUID, fn func(*selectionModel.InternSelectionModel) error) (*selectionModel.InternSelectionModel, error) {
	var out *selectionModel.InternSelectionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := load(tx, id, true)
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return fmt.Errorf("update internship %s: %w", id, err)
		}
		out = m
		return nil
	})
	return out, err
}

// Resign removes mentorID from the internship's mentors.
func (s *InternSelectionService) Resign(ctx context.Context, id, mentorID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := load(tx, id, true)
		if err != nil {
			return err
		}
		if !m.HasMentor(mentorID) {
			return ErrNotMentor
		}
		if len(m.Mentors) == 1 {
			return ErrLastMentor
		}
		err = tx.Where("intern_selection_mentor_selection_id = ? AND intern_selection_mentor_user_id = ?", id, mentorID).
			Delete(&selectionModel.InternSelectionMentorModel{}).Error
		if err != nil {
			return fmt.Errorf("resign from internship %s: %w", id, err)
		}
		applog.Info().
			Add(applog.Component("intern_selections")).
			Add(applog.SelectionID(id)).
			Add(applog.UserID(mentorID)).
			Msg("mentor resigned")
		return nil
	})
}
