package service

import (
	"errors"

	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	"internship_backend/internals/helpers/dbtime"
)

var (
	ErrWindowNotOpen     = errors.New("feedback window is not open yet")
	ErrAlreadyFinalized  = errors.New("feedback has already been submitted and is not editable")
	ErrNotMentor         = errors.New("not a mentor of this internship")
	ErrSelectionNotFound = errors.New("no active internship found")
	ErrInvalidStage      = errors.New("unknown feedback stage or role")
	ErrRecordNotFound    = errors.New("feedback record not found")
)

// Gate decides whether a submission for one stage and role is accepted today.
type Gate struct {
	// ReopenRequiresOpenWindow makes reopened records wait for the window too.
	ReopenRequiresOpenWindow bool
}

// Check only looks at the selection's own window, never at the round schedule,
// so extended internships stay submittable past the nominal end date.
func (g Gate) Check(w selectionModel.Window, prior *feedbackModel.FeedbackBase, today dbtime.Date) error {
	if prior != nil {
		if !prior.AllowEdits {
			return ErrAlreadyFinalized
		}
		if g.ReopenRequiresOpenWindow && today.Before(w.Opens) {
			return ErrWindowNotOpen
		}
		return nil
	}
	if today.Before(w.Opens) {
		return ErrWindowNotOpen
	}
	return nil
}

// Accepts is Check as a predicate, used by the dashboard.
func (g Gate) Accepts(w selectionModel.Window, prior *feedbackModel.FeedbackBase, today dbtime.Date) bool {
	return g.Check(w, prior, today) == nil
}
