package service

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	versionModel "internship_backend/internals/features/internships/feedback_versions/model"
	"internship_backend/internals/helpers/applog"
)

// Entry describes one accepted write to be recorded.
type Entry struct {
	RecordType        string
	RecordID          uuid.UUID
	InternSelectionID uuid.UUID
	AuthorUserID      *uuid.UUID
	Comment           string
	Record            any // snapshotted as JSON
}

type FeedbackVersionService struct {
	DB *gorm.DB
}

func NewFeedbackVersionService(db *gorm.DB) *FeedbackVersionService {
	return &FeedbackVersionService{DB: db}
}

// Append inserts a version using tx, so it commits or rolls back with the write it records.
func (s *FeedbackVersionService) Append(tx *gorm.DB, e Entry) (*versionModel.FeedbackVersionModel, error) {
	snapshot, err := sonic.Marshal(e.Record)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s %s: %w", e.RecordType, e.RecordID, err)
	}

	v := &versionModel.FeedbackVersionModel{
		FeedbackVersionRecordType:        e.RecordType,
		FeedbackVersionRecordID:          e.RecordID,
		FeedbackVersionInternSelectionID: e.InternSelectionID,
		FeedbackVersionAuthorUserID:      e.AuthorUserID,
		FeedbackVersionComment:           e.Comment,
		FeedbackVersionSnapshot:          datatypes.JSON(snapshot),
	}
	if err := tx.Create(v).Error; err != nil {
		return nil, fmt.Errorf("append version for %s %s: %w", e.RecordType, e.RecordID, err)
	}

	applog.Debug().
		Add(applog.Component("feedback_versions")).
		Add(applog.Str("record_type", e.RecordType)).
		Add(applog.Str("record_id", e.RecordID.String())).
		Msg("version appended")
	return v, nil
}

// CountForRecord is the number of accepted submissions for a record.
func (s *FeedbackVersionService) CountForRecord(db *gorm.DB, recordType string, recordID uuid.UUID) (int64, error) {
	if db == nil {
		db = s.DB
	}
	var n int64
	err := db.Model(&versionModel.FeedbackVersionModel{}).
		Where("feedback_version_record_type = ? AND feedback_version_record_id = ?", recordType, recordID).
		Count(&n).Error
	return n, err
}

// ListForRecord returns versions newest first, plus the total count.
func (s *FeedbackVersionService) ListForRecord(recordType string, recordID uuid.UUID, offset, limit int) ([]versionModel.FeedbackVersionModel, int64, error) {
	q := s.DB.Model(&versionModel.FeedbackVersionModel{}).
		Where("feedback_version_record_type = ? AND feedback_version_record_id = ?", recordType, recordID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []versionModel.FeedbackVersionModel
	if err := q.Order("feedback_version_created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
