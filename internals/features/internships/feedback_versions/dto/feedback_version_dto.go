package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	versionModel "internship_backend/internals/features/internships/feedback_versions/model"
)

type FeedbackVersionResponse struct {
	FeedbackVersionID uuid.UUID       `json:"feedback_version_id"`
	RecordType        string          `json:"record_type"`
	RecordID          uuid.UUID       `json:"record_id"`
	InternSelectionID uuid.UUID       `json:"intern_selection_id"`
	AuthorUserID      *uuid.UUID      `json:"author_user_id,omitempty"`
	Comment           string          `json:"comment"`
	Snapshot          json.RawMessage `json:"snapshot"`
	CreatedAt         time.Time       `json:"created_at"`
}

func FromModel(m versionModel.FeedbackVersionModel) FeedbackVersionResponse {
	return FeedbackVersionResponse{
		FeedbackVersionID: m.FeedbackVersionID,
		RecordType:        m.FeedbackVersionRecordType,
		RecordID:          m.FeedbackVersionRecordID,
		InternSelectionID: m.FeedbackVersionInternSelectionID,
		AuthorUserID:      m.FeedbackVersionAuthorUserID,
		Comment:           m.FeedbackVersionComment,
		Snapshot:          json.RawMessage(m.FeedbackVersionSnapshot),
		CreatedAt:         m.FeedbackVersionCreatedAt,
	}
}

func FromModels(rows []versionModel.FeedbackVersionModel) []FeedbackVersionResponse {
	out := make([]FeedbackVersionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
