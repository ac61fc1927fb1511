package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	roundModel "internship_backend/internals/features/internships/rounds/model"
	"internship_backend/internals/helpers/dbtime"
)

type CreateRoundRequest struct {
	RoundName       string `json:"round_name" form:"round_name" validate:"required,max=160"`
	InternStarts    string `json:"internstarts" form:"internstarts" validate:"required,datetime=2006-01-02"`
	InitialFeedback string `json:"initialfeedback" form:"initialfeedback" validate:"required,datetime=2006-01-02"`
	MidFeedback     string `json:"midfeedback" form:"midfeedback" validate:"required,datetime=2006-01-02"`
	FinalFeedback   string `json:"finalfeedback" form:"finalfeedback" validate:"required,datetime=2006-01-02"`
	InternEnds      string `json:"internends" form:"internends" validate:"required,datetime=2006-01-02"`
}

func (r CreateRoundRequest) ToModel() (roundModel.RoundModel, error) {
	var m roundModel.RoundModel
	m.RoundName = r.RoundName
	for _, f := range []struct {
		dst *dbtime.Date
		raw string
		key string
	}{
		{&m.RoundInternStarts, r.InternStarts, "internstarts"},
		{&m.RoundInitialFeedback, r.InitialFeedback, "initialfeedback"},
		{&m.RoundMidFeedback, r.MidFeedback, "midfeedback"},
		{&m.RoundFinalFeedback, r.FinalFeedback, "finalfeedback"},
		{&m.RoundInternEnds, r.InternEnds, "internends"},
	} {
		d, err := dbtime.ParseDate(f.raw)
		if err != nil {
			return m, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = d
	}
	return m, nil
}

// UpdateRoundRequest is a partial update; nil fields are left as they are.
type UpdateRoundRequest struct {
	RoundName       *string `json:"round_name" validate:"omitempty,max=160"`
	InternStarts    *string `json:"internstarts" validate:"omitempty,datetime=2006-01-02"`
	InitialFeedback *string `json:"initialfeedback" validate:"omitempty,datetime=2006-01-02"`
	MidFeedback     *string `json:"midfeedback" validate:"omitempty,datetime=2006-01-02"`
	FinalFeedback   *string `json:"finalfeedback" validate:"omitempty,datetime=2006-01-02"`
	InternEnds      *string `json:"internends" validate:"omitempty,datetime=2006-01-02"`
}

func (r UpdateRoundRequest) ApplyTo(m *roundModel.RoundModel) error {
	if r.RoundName != nil {
		m.RoundName = *r.RoundName
	}
	for _, f := range []struct {
		dst *dbtime.Date
		raw *string
		key string
	}{
		{&m.RoundInternStarts, r.InternStarts, "internstarts"},
		{&m.RoundInitialFeedback, r.InitialFeedback, "initialfeedback"},
		{&m.RoundMidFeedback, r.MidFeedback, "midfeedback"},
		{&m.RoundFinalFeedback, r.FinalFeedback, "finalfeedback"},
		{&m.RoundInternEnds, r.InternEnds, "internends"},
	} {
		if f.raw == nil {
			continue
		}
		d, err := dbtime.ParseDate(*f.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = d
	}
	return nil
}

type RoundResponse struct {
	RoundID         uuid.UUID   `json:"round_id"`
	RoundSlug       string      `json:"round_slug"`
	RoundName       string      `json:"round_name"`
	InternStarts    dbtime.Date `json:"internstarts"`
	InitialFeedback dbtime.Date `json:"initialfeedback"`
	MidFeedback     dbtime.Date `json:"midfeedback"`
	FinalFeedback   dbtime.Date `json:"finalfeedback"`
	InternEnds      dbtime.Date `json:"internends"`
	CreatedAt       time.Time   `json:"round_created_at"`
	UpdatedAt       time.Time   `json:"round_updated_at"`
}

func FromModel(m roundModel.RoundModel) RoundResponse {
	return RoundResponse{
		RoundID:         m.RoundID,
		RoundSlug:       m.RoundSlug,
		RoundName:       m.RoundName,
		InternStarts:    m.RoundInternStarts,
		InitialFeedback: m.RoundInitialFeedback,
		MidFeedback:     m.RoundMidFeedback,
		FinalFeedback:   m.RoundFinalFeedback,
		InternEnds:      m.RoundInternEnds,
		CreatedAt:       m.RoundCreatedAt,
		UpdatedAt:       m.RoundUpdatedAt,
	}
}

func FromModels(rows []roundModel.RoundModel) []RoundResponse {
	out := make([]RoundResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
