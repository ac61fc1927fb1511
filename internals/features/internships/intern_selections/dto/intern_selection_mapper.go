package dto

import (
	"internship_backend/internals/constants"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
)

func FromModel(m selectionModel.InternSelectionModel) InternSelectionResponse {
	windows := make(map[string]WindowResponse, len(constants.Stages))
	for _, st := range constants.Stages {
		w := m.Window(st)
		windows[string(st)] = WindowResponse{Opens: w.Opens, Due: w.Due}
	}

	mentors := make([]MentorResponse, 0, len(m.Mentors))
	for _, mt := range m.Mentors {
		mentors = append(mentors, MentorResponse{
			UserID: mt.InternSelectionMentorUserID,
			Name:   mt.InternSelectionMentorName,
		})
	}

	out := InternSelectionResponse{
		InternSelectionID: m.InternSelectionID,
		RoundID:           m.InternSelectionRoundID,
		InternUserID:      m.InternSelectionInternUserID,
		InternUsername:    m.InternSelectionInternUsername,
		InternName:        m.InternSelectionInternName,
		ProjectName:       m.InternSelectionProjectName,
		Active:            m.InternSelectionActive,
		FundingSource:     m.InternSelectionFundingSource,
		OrganizerApproved: m.InternSelectionOrganizerApproved,
		Windows:           windows,
		InternStarts:      m.InternSelectionInternStarts,
		InternEnds:        m.InternSelectionInternEnds,
		Mentors:           mentors,
		CreatedAt:         m.InternSelectionCreatedAt,
		UpdatedAt:         m.InternSelectionUpdatedAt,
	}
	if m.Round != nil {
		out.RoundSlug = m.Round.RoundSlug
	}
	return out
}

func FromModels(rows []selectionModel.InternSelectionModel) []InternSelectionResponse {
	out := make([]InternSelectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
