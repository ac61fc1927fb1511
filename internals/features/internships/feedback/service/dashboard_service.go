package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"internship_backend/internals/constants"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	"internship_backend/internals/helpers/dbtime"
)

// CallToAction is one feedback form the user may submit right now.
type CallToAction struct {
	Label             string                 `json:"label"`
	Stage             constants.Stage        `json:"stage"`
	Role              constants.FeedbackRole `json:"role"`
	InternSelectionID uuid.UUID              `json:"intern_selection_id"`
	InternUsername    string                 `json:"intern_username"`
	InternName        string                 `json:"intern_name"`
	ProjectName       string                 `json:"project_name"`
	SubmitPath        string                 `json:"submit_path"`
	Opens             dbtime.Date            `json:"opens"`
	Due               dbtime.Date            `json:"due"`
	Reopened          bool                   `json:"reopened"`
}

// SubmitPath is where the form of kind is posted for an internship.
func SubmitPath(kind feedbackModel.Kind, internUsername string) string {
	if kind.Role == constants.FeedbackByMentor {
		return fmt.Sprintf("/api/u/feedback/%s/mentor/%s", kind.Stage, internUsername)
	}
	return fmt.Sprintf("/api/u/feedback/%s/intern", kind.Stage)
}

// Dashboard lists a call-to-action for every (active internship, stage, role) of the
// user that the gate accepts today.
func (s *FeedbackService) Dashboard(ctx context.Context, userID uuid.UUID) ([]CallToAction, error) {
	db := s.DB.WithContext(ctx)
	today := s.Today()

	var mentoring []selectionModel.InternSelectionModel
	if err := db.
		Select("intern_selections.*").
		Joins("JOIN intern_selection_mentors m ON m.intern_selection_mentor_selection_id = intern_selections.intern_selection_id").
		Where("m.intern_selection_mentor_user_id = ? AND intern_selections.intern_selection_active = ?", userID, true).
		Order("intern_selections.intern_selection_created_at ASC").
		Find(&mentoring).Error; err != nil {
		return nil, fmt.Errorf("list mentored internships: %w", err)
	}

	var interning []selectionModel.InternSelectionModel
	if err := db.
		Where("intern_selection_intern_user_id = ? AND intern_selection_active = ?", userID, true).
		Order("intern_selection_created_at ASC").
		Find(&interning).Error; err != nil {
		return nil, fmt.Errorf("list own internships: %w", err)
	}

	out := make([]CallToAction, 0)
	for _, group := range []struct {
		role constants.FeedbackRole
		sels []selectionModel.InternSelectionModel
	}{
		{constants.FeedbackByMentor, mentoring},
		{constants.FeedbackByIntern, interning},
	} {
		if len(group.sels) == 0 {
			continue
		}
		ids := make([]uuid.UUID, 0, len(group.sels))
		for _, sel := range group.sels {
			ids = append(ids, sel.InternSelectionID)
		}

		for _, stage := range constants.Stages {
			kind := feedbackModel.Kind{Stage: stage, Role: group.role}
			priors, err := s.priorRecords(ctx, kind, ids)
			if err != nil {
				return nil, err
			}
			for i := range group.sels {
				sel := &group.sels[i]
				w := sel.Window(stage)
				prior := priors[sel.InternSelectionID]
				if !s.Gate.Accepts(w, prior, today) {
					continue
				}
				out = append(out, CallToAction{
					Label:             fmt.Sprintf("Submit %s Feedback", stage.Title()),
					Stage:             stage,
					Role:              group.role,
					InternSelectionID: sel.InternSelectionID,
					InternUsername:    sel.InternSelectionInternUsername,
					InternName:        sel.InternSelectionInternName,
					ProjectName:       sel.InternSelectionProjectName,
					SubmitPath:        SubmitPath(kind, sel.InternSelectionInternUsername),
					Opens:             w.Opens,
					Due:               w.Due,
					Reopened:          prior != nil,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Due.Before(out[j].Due) })
	return out, nil
}

// priorRecords maps selection id to the existing record of kind, if any.
func (s *FeedbackService) priorRecords(ctx context.Context, kind feedbackModel.Kind, ids []uuid.UUID) (map[uuid.UUID]*feedbackModel.FeedbackBase, error) {
	rec, err := feedbackModel.New(kind)
	if err != nil {
		return nil, ErrInvalidStage
	}
	var rows []feedbackModel.FeedbackBase
	if err := s.DB.WithContext(ctx).
		Table(rec.TableName()).
		Select("id", "intern_selection_id", "allow_edits").
		Where("intern_selection_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load %s records: %w", kind, err)
	}
	out := make(map[uuid.UUID]*feedbackModel.FeedbackBase, len(rows))
	for i := range rows {
		out[rows[i].InternSelectionID] = &rows[i]
	}
	return out, nil
}
