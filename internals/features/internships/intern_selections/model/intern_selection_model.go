package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/dbtime"
)

// Funding sources, matching the CHECK on intern_selection_funding_source.
type FundingSource string

const (
	FundingNotFunded     FundingSource = ""
	FundingOrgFunded     FundingSource = "org_funded"
	FundingGeneralFunded FundingSource = "general_funded"
	FundingUndecided     FundingSource = "undecided"
)

func (f FundingSource) Valid() bool {
	switch f {
	case FundingOrgFunded, FundingGeneralFunded, FundingUndecided:
		return true
	}
	return false
}

// InternSelectionModel is one confirmed intern/mentor(s)/round pairing.
type InternSelectionModel struct {
	InternSelectionID      uuid.UUID `gorm:"type:uuid;primaryKey;column:intern_selection_id" json:"intern_selection_id"`
	InternSelectionRoundID uuid.UUID `gorm:"type:uuid;not null;index;column:intern_selection_round_id" json:"intern_selection_round_id"`

	InternSelectionInternUserID   uuid.UUID `gorm:"type:uuid;not null;index;column:intern_selection_intern_user_id" json:"intern_user_id"`
	InternSelectionInternUsername string    `gorm:"type:varchar(150);not null;index;column:intern_selection_intern_username" json:"intern_username"`
	InternSelectionInternName     string    `gorm:"type:varchar(160);column:intern_selection_intern_name" json:"intern_name"`
	InternSelectionProjectName    string    `gorm:"type:varchar(200);column:intern_selection_project_name" json:"project_name"`

	InternSelectionActive            bool          `gorm:"not null;default:true;column:intern_selection_active" json:"active"`
	InternSelectionFundingSource     FundingSource `gorm:"type:varchar(24);not null;default:'';column:intern_selection_funding_source" json:"funding_source"`
	InternSelectionOrganizerApproved *bool         `gorm:"column:intern_selection_organizer_approved" json:"organizer_approved"`

	InternSelectionInitialFeedbackOpens  dbtime.Date `gorm:"type:date;not null;column:intern_selection_initial_feedback_opens" json:"initial_feedback_opens"`
	InternSelectionInitialFeedbackDue    dbtime.Date `gorm:"type:date;not null;column:intern_selection_initial_feedback_due" json:"initial_feedback_due"`
	InternSelectionMidpointFeedbackOpens dbtime.Date `gorm:"type:date;not null;column:intern_selection_midpoint_feedback_opens" json:"midpoint_feedback_opens"`
	InternSelectionMidpointFeedbackDue   dbtime.Date `gorm:"type:date;not null;column:intern_selection_midpoint_feedback_due" json:"midpoint_feedback_due"`
	InternSelectionFinalFeedbackOpens    dbtime.Date `gorm:"type:date;not null;column:intern_selection_final_feedback_opens" json:"final_feedback_opens"`
	InternSelectionFinalFeedbackDue      dbtime.Date `gorm:"type:date;not null;column:intern_selection_final_feedback_due" json:"final_feedback_due"`

	InternSelectionInternStarts dbtime.Date `gorm:"type:date;not null;column:intern_selection_intern_starts" json:"intern_starts"`
	InternSelectionInternEnds   dbtime.Date `gorm:"type:date;not null;column:intern_selection_intern_ends" json:"intern_ends"`

	InternSelectionCreatedAt time.Time `gorm:"not null;autoCreateTime;column:intern_selection_created_at" json:"created_at"`
	InternSelectionUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:intern_selection_updated_at" json:"updated_at"`

	Round   *roundModel.RoundModel       `gorm:"foreignKey:InternSelectionRoundID;references:RoundID" json:"round,omitempty"`
	Mentors []InternSelectionMentorModel `gorm:"foreignKey:InternSelectionMentorSelectionID;references:InternSelectionID" json:"mentors,omitempty"`
}

func (InternSelectionModel) TableName() string { return "intern_selections" }

func (m *InternSelectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.InternSelectionID == uuid.Nil {
		m.InternSelectionID = uuid.New()
	}
	return nil
}

// Window is the submission window of one feedback stage.
type Window struct {
	Opens dbtime.Date `json:"opens"`
	Due   dbtime.Date `json:"due"`
}

// Window returns this internship's own (possibly extended) dates for a stage.
func (m *InternSelectionModel) Window(stage constants.Stage) Window {
	switch stage {
	case constants.StageInitial:
		return Window{Opens: m.InternSelectionInitialFeedbackOpens, Due: m.InternSelectionInitialFeedbackDue}
	case constants.StageMidpoint:
		return Window{Opens: m.InternSelectionMidpointFeedbackOpens, Due: m.InternSelectionMidpointFeedbackDue}
	default:
		return Window{Opens: m.InternSelectionFinalFeedbackOpens, Due: m.InternSelectionFinalFeedbackDue}
	}
}

// SetWindow overwrites the dates of one stage.
func (m *InternSelectionModel) SetWindow(stage constants.Stage, w Window) {
	switch stage {
	case constants.StageInitial:
		m.InternSelectionInitialFeedbackOpens, m.InternSelectionInitialFeedbackDue = w.Opens, w.Due
	case constants.StageMidpoint:
		m.InternSelectionMidpointFeedbackOpens, m.InternSelectionMidpointFeedbackDue = w.Opens, w.Due
	default:
		m.InternSelectionFinalFeedbackOpens, m.InternSelectionFinalFeedbackDue = w.Opens, w.Due
	}
}

// HasMentor reports whether userID mentors this internship. Mentors must be preloaded.
func (m *InternSelectionModel) HasMentor(userID uuid.UUID) bool {
	for i := range m.Mentors {
		if m.Mentors[i].InternSelectionMentorUserID == userID {
			return true
		}
	}
	return false
}

// InternSelectionMentorModel links a mentor to an internship.
type InternSelectionMentorModel struct {
	InternSelectionMentorID          uuid.UUID `gorm:"type:uuid;primaryKey;column:intern_selection_mentor_id" json:"intern_selection_mentor_id"`
	InternSelectionMentorSelectionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_selection_mentor;column:intern_selection_mentor_selection_id" json:"intern_selection_id"`
	InternSelectionMentorUserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_selection_mentor;index;column:intern_selection_mentor_user_id" json:"mentor_user_id"`
	InternSelectionMentorName        string    `gorm:"type:varchar(160);column:intern_selection_mentor_name" json:"mentor_name"`

	InternSelectionMentorCreatedAt time.Time `gorm:"not null;autoCreateTime;column:intern_selection_mentor_created_at" json:"created_at"`
}

func (InternSelectionMentorModel) TableName() string { return "intern_selection_mentors" }

func (m *InternSelectionMentorModel) BeforeCreate(tx *gorm.DB) error {
	if m.InternSelectionMentorID == uuid.Nil {
		m.InternSelectionMentorID = uuid.New()
	}
	return nil
}
