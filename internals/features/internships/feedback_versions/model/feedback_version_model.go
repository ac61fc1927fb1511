package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrImmutable = errors.New("feedback versions are append-only")

// FeedbackVersionModel is one append-only audit entry. Rows are never updated or deleted.
type FeedbackVersionModel struct {
	FeedbackVersionID                uuid.UUID      `gorm:"type:uuid;primaryKey;column:feedback_version_id" json:"feedback_version_id"`
	FeedbackVersionRecordType        string         `gorm:"type:varchar(48);not null;index:idx_feedback_version_record,priority:1;column:feedback_version_record_type" json:"record_type"`
	FeedbackVersionRecordID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_feedback_version_record,priority:2;column:feedback_version_record_id" json:"record_id"`
	FeedbackVersionInternSelectionID uuid.UUID      `gorm:"type:uuid;not null;index;column:feedback_version_intern_selection_id" json:"intern_selection_id"`
	FeedbackVersionAuthorUserID      *uuid.UUID     `gorm:"type:uuid;column:feedback_version_author_user_id" json:"author_user_id,omitempty"`
	FeedbackVersionComment           string         `gorm:"type:varchar(255);not null;default:'';column:feedback_version_comment" json:"comment"`
	FeedbackVersionSnapshot          datatypes.JSON `gorm:"not null;column:feedback_version_snapshot" json:"snapshot"`
	FeedbackVersionCreatedAt         time.Time      `gorm:"not null;autoCreateTime;column:feedback_version_created_at" json:"created_at"`
}

func (FeedbackVersionModel) TableName() string { return "feedback_versions" }

func (m *FeedbackVersionModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackVersionID == uuid.Nil {
		m.FeedbackVersionID = uuid.New()
	}
	return nil
}

func (m *FeedbackVersionModel) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (m *FeedbackVersionModel) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}
