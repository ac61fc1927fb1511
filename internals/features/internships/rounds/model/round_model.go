package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	"internship_backend/internals/helpers/dbtime"
)

// RoundModel is one program cohort and its milestone schedule.
type RoundModel struct {
	RoundID   uuid.UUID `gorm:"type:uuid;primaryKey;column:round_id" json:"round_id"`
	RoundSlug string    `gorm:"type:varchar(160);not null;uniqueIndex;column:round_slug" json:"round_slug"`
	RoundName string    `gorm:"type:varchar(160);not null;column:round_name" json:"round_name"`

	RoundInternStarts    dbtime.Date `gorm:"type:date;not null;column:round_internstarts" json:"internstarts"`
	RoundInitialFeedback dbtime.Date `gorm:"type:date;not null;column:round_initialfeedback" json:"initialfeedback"`
	RoundMidFeedback     dbtime.Date `gorm:"type:date;not null;column:round_midfeedback" json:"midfeedback"`
	RoundFinalFeedback   dbtime.Date `gorm:"type:date;not null;column:round_finalfeedback" json:"finalfeedback"`
	RoundInternEnds      dbtime.Date `gorm:"type:date;not null;column:round_internends" json:"internends"`

	RoundCreatedAt time.Time `gorm:"not null;autoCreateTime;column:round_created_at" json:"round_created_at"`
	RoundUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:round_updated_at" json:"round_updated_at"`
}

func (RoundModel) TableName() string { return "internship_rounds" }

func (r *RoundModel) BeforeCreate(tx *gorm.DB) error {
	if r.RoundID == uuid.Nil {
		r.RoundID = uuid.New()
	}
	return nil
}

// Milestone returns the canonical feedback date of the round for a stage.
func (r *RoundModel) Milestone(stage constants.Stage) dbtime.Date {
	switch stage {
	case constants.StageInitial:
		return r.RoundInitialFeedback
	case constants.StageMidpoint:
		return r.RoundMidFeedback
	default:
		return r.RoundFinalFeedback
	}
}
