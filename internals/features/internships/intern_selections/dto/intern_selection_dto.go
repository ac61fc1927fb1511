package dto

import (
	"time"

	"github.com/google/uuid"

	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	"internship_backend/internals/helpers/dbtime"
)

type MentorRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name" validate:"max=160"`
}

type CreateInternSelectionRequest struct {
	RoundID        string          `json:"round_id" validate:"required,uuid"`
	InternUserID   string          `json:"intern_user_id" validate:"required,uuid"`
	InternUsername string          `json:"intern_username" validate:"required,max=150"`
	InternName     string          `json:"intern_name" validate:"max=160"`
	ProjectName    string          `json:"project_name" validate:"max=200"`
	Mentors        []MentorRequest `json:"mentors" validate:"required,min=1,dive"`
}

type AddMentorRequest struct {
	MentorRequest
}

type ExtendRequest struct {
	Stage string `json:"stage" form:"stage" validate:"required,oneof=initial midpoint final"`
	Weeks int    `json:"weeks" form:"weeks" validate:"required,min=1,max=5"`
}

type FundRequest struct {
	FundingSource string `json:"funding_source" form:"funding_source" validate:"required,oneof=org_funded general_funded undecided"`
}

type MentorResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
}

type WindowResponse struct {
	Opens dbtime.Date `json:"opens"`
	Due   dbtime.Date `json:"due"`
}

type InternSelectionResponse struct {
	InternSelectionID uuid.UUID                    `json:"intern_selection_id"`
	RoundID           uuid.UUID                    `json:"round_id"`
	RoundSlug         string                       `json:"round_slug,omitempty"`
	InternUserID      uuid.UUID                    `json:"intern_user_id"`
	InternUsername    string                       `json:"intern_username"`
	InternName        string                       `json:"intern_name"`
	ProjectName       string                       `json:"project_name"`
	Active            bool                         `json:"active"`
	FundingSource     selectionModel.FundingSource `json:"funding_source"`
	OrganizerApproved *bool                        `json:"organizer_approved"`
	Windows           map[string]WindowResponse    `json:"feedback_windows"`
	InternStarts      dbtime.Date                  `json:"intern_starts"`
	InternEnds        dbtime.Date                  `json:"intern_ends"`
	Mentors           []MentorResponse             `json:"mentors"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}
