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
	feedbackDTO "internship_backend/internals/features/internships/feedback/dto"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	versionService "internship_backend/internals/features/internships/feedback_versions/service"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/helpers/dbtime"
)

type FeedbackService struct {
	DB       *gorm.DB
	Versions *versionService.FeedbackVersionService
	Gate     Gate
	Clock    dbtime.Clock
	Location *time.Location
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{
		DB:       db,
		Versions: versionService.NewFeedbackVersionService(db),
		Gate:     Gate{ReopenRequiresOpenWindow: configs.FeedbackReopenRequiresOpenWindow},
		Clock:    dbtime.SystemClock,
		Location: configs.ProgramLocation(),
	}
}

// Today is the current calendar date in the program timezone.
func (s *FeedbackService) Today() dbtime.Date {
	return dbtime.Today(s.Clock, s.Location)
}

/* ===================== LOOKUPS ===================== */

// FindMentorSelection resolves the active internship of internUsername and checks
// that mentorID mentors it.
func (s *FeedbackService) FindMentorSelection(ctx context.Context, internUsername string, mentorID uuid.UUID) (*selectionModel.InternSelectionModel, error) {
	var sel selectionModel.InternSelectionModel
	err := s.DB.WithContext(ctx).
		Preload("Mentors").
		Where("intern_selection_intern_username = ? AND intern_selection_active = ?", internUsername, true).
		Order("intern_selection_created_at DESC").
		Take(&sel).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("find internship of %q: %w", internUsername, err)
	}
	if !sel.HasMentor(mentorID) {
		return nil, ErrNotMentor
	}
	return &sel, nil
}

// FindInternSelection resolves the caller's own active internship.
func (s *FeedbackService) FindInternSelection(ctx context.Context, internID uuid.UUID) (*selectionModel.InternSelectionModel, error) {
	var sel selectionModel.InternSelectionModel
	err := s.DB.WithContext(ctx).
		Where("intern_selection_intern_user_id = ? AND intern_selection_active = ?", internID, true).
		Order("intern_selection_created_at DESC").
		Take(&sel).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("find internship of intern %s: %w", internID, err)
	}
	return &sel, nil
}

// loadRecord returns (nil, nil) when no record of that kind exists for the selection.
func loadRecord(tx *gorm.DB, kind feedbackModel.Kind, selectionID uuid.UUID) (feedbackModel.Feedback, error) {
	rec, err := feedbackModel.New(kind)
	if err != nil {
		return nil, ErrInvalidStage
	}
	err = tx.Where("intern_selection_id = ?", selectionID).Take(rec).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s for %s: %w", kind, selectionID, err)
	}
	return rec, nil
}

// lockSelection serialises submissions per internship. SQLite has no row locks.
func lockSelection(tx *gorm.DB, selectionID uuid.UUID) (*selectionModel.InternSelectionModel, error) {
	q := tx.Preload("Round")
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var sel selectionModel.InternSelectionModel
	if err := q.Where("intern_selection_id = ?", selectionID).Take(&sel).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("lock internship %s: %w", selectionID, err)
	}
	return &sel, nil
}

/* ===================== SUBMIT ===================== */

// Precheck runs the gate outside a transaction so rejected callers get 403
// before their form is validated. Submit checks again under the lock.
func (s *FeedbackService) Precheck(ctx context.Context, kind feedbackModel.Kind, sel *selectionModel.InternSelectionModel) error {
	prior, err := loadRecord(s.DB.WithContext(ctx), kind, sel.InternSelectionID)
	if err != nil {
		return err
	}
	var priorBase *feedbackModel.FeedbackBase
	if prior != nil {
		priorBase = prior.Base()
	}
	return s.Gate.Check(sel.Window(kind.Stage), priorBase, s.Today())
}

type SubmitInput struct {
	Kind         feedbackModel.Kind
	SelectionID  uuid.UUID
	AuthorUserID uuid.UUID
	Form         feedbackDTO.Form
}

// Submit runs gate, write and version append in one transaction.
// Rejections leave the database untouched.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitInput) (feedbackModel.Feedback, error) {
	today := s.Today()
	var saved feedbackModel.Feedback

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sel, err := lockSelection(tx, in.SelectionID)
		if err != nil {
			return err
		}

		prior, err := loadRecord(tx, in.Kind, sel.InternSelectionID)
		if err != nil {
			return err
		}
		var priorBase *feedbackModel.FeedbackBase
		if prior != nil {
			priorBase = prior.Base()
		}
		if err := s.Gate.Check(sel.Window(in.Kind.Stage), priorBase, today); err != nil {
			return err
		}

		rec := prior
		if rec == nil {
			if rec, err = feedbackModel.New(in.Kind); err != nil {
				return ErrInvalidStage
			}
			rec.Base().InternSelectionID = sel.InternSelectionID
		}
		if err := in.Form.ApplyTo(rec); err != nil {
			return err
		}

		if mf, ok := in.Form.(feedbackDTO.MentorForm); ok {
			mrec, ok := rec.(feedbackModel.MentorFeedback)
			if !ok {
				return fmt.Errorf("%s does not carry mentor actions", in.Kind)
			}
			if sel.Round == nil {
				return fmt.Errorf("internship %s has no round", sel.InternSelectionID)
			}
			actions, err := DeriveActions(mf.RequestedAction(), sel.Round.Milestone(in.Kind.Stage))
			if err != nil {
				return err
			}
			*mrec.Actions() = actions
		}

		base := rec.Base()
		base.AllowEdits = false
		author := in.AuthorUserID
		base.SubmittedByUserID = &author

		comment := "submitted"
		if prior == nil {
			err = tx.Create(rec).Error
		} else {
			comment = "resubmitted after reopen"
			err = tx.Save(rec).Error
		}
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrAlreadyFinalized
			}
			return fmt.Errorf("save %s: %w", in.Kind, err)
		}

		if _, err := s.Versions.Append(tx, versionService.Entry{
			RecordType:        in.Kind.String(),
			RecordID:          base.ID,
			InternSelectionID: sel.InternSelectionID,
			AuthorUserID:      &author,
			Comment:           comment,
			Record:            rec,
		}); err != nil {
			return err
		}

		saved = rec
		return nil
	})
	if err != nil {
		applog.Info().
			Add(applog.Component("feedback")).
			Add(applog.SelectionID(in.SelectionID)).
			Add(applog.Stage(string(in.Kind.Stage))).
			Add(applog.Role(string(in.Kind.Role))).
			Add(applog.Err(err)).
			Msg("feedback submission rejected")
		return nil, err
	}

	applog.Info().
		Add(applog.Component("feedback")).
		Add(applog.SelectionID(in.SelectionID)).
		Add(applog.Stage(string(in.Kind.Stage))).
		Add(applog.Role(string(in.Kind.Role))).
		Add(applog.UserID(in.AuthorUserID)).
		Msg("feedback accepted")
	return saved, nil
}

/* ===================== ADMIN ===================== */

// Get returns the record of kind for a selection.
func (s *FeedbackService) Get(ctx context.Context, kind feedbackModel.Kind, selectionID uuid.UUID) (feedbackModel.Feedback, error) {
	rec, err := loadRecord(s.DB.WithContext(ctx), kind, selectionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// Reopen lets the next submission overwrite the record. It is not a submission,
// so no version is appended.
func (s *FeedbackService) Reopen(ctx context.Context, kind feedbackModel.Kind, selectionID uuid.UUID) (feedbackModel.Feedback, error) {
	return reopen(s.DB.WithContext(ctx), kind, selectionID)
}

func reopen(tx *gorm.DB, kind feedbackModel.Kind, selectionID uuid.UUID) (feedbackModel.Feedback, error) {
	rec, err := loadRecord(tx, kind, selectionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	if err := tx.Model(rec).Update("allow_edits", true).Error; err != nil {
		return nil, fmt.Errorf("reopen %s for %s: %w", kind, selectionID, err)
	}
	rec.Base().AllowEdits = true
	return rec, nil
}

// ReopenTx is used by the extension flow, which reopens inside its own transaction.
// A missing record is not an error there.
func ReopenTx(tx *gorm.DB, kind feedbackModel.Kind, selectionID uuid.UUID) (bool, error) {
	_, err := reopen(tx, kind, selectionID)
	if errors.Is(err, ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}
