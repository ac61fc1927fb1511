package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roundModel "internship_backend/internals/features/internships/rounds/model"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/helpers/dbtime"
)

var (
	ErrRoundNotFound        = errors.New("round not found")
	ErrMilestonesOutOfOrder = errors.New("round dates must satisfy internstarts <= initialfeedback <= midfeedback <= finalfeedback <= internends")
)

type RoundService struct {
	DB *gorm.DB
}

func NewRoundService(db *gorm.DB) *RoundService {
	return &RoundService{DB: db}
}

func checkOrder(m *roundModel.RoundModel) error {
	seq := []dbtime.Date{
		m.RoundInternStarts,
		m.RoundInitialFeedback,
		m.RoundMidFeedback,
		m.RoundFinalFeedback,
		m.RoundInternEnds,
	}
	for i := 1; i < len(seq); i++ {
		if seq[i].Before(seq[i-1]) {
			return ErrMilestonesOutOfOrder
		}
	}
	return nil
}

// Create stores a round under a slug generated from its name.
func (s *RoundService) Create(ctx context.Context, m *roundModel.RoundModel) error {
	if err := checkOrder(m); err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)
	slug, err := helper.GenerateUniqueSlug(db, helper.SlugOptions{
		Table:       roundModel.RoundModel{}.TableName(),
		SlugColumn:  "round_slug",
		DefaultBase: "round",
	}, m.RoundName)
	if err != nil {
		return fmt.Errorf("generate round slug: %w", err)
	}
	m.RoundSlug = slug
	if err := db.Create(m).Error; err != nil {
		return fmt.Errorf("create round: %w", err)
	}
	applog.Info().Add(applog.Component("rounds")).Add(applog.Str("round_slug", slug)).Msg("round created")
	return nil
}

func (s *RoundService) List(ctx context.Context, offset, limit int) ([]roundModel.RoundModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&roundModel.RoundModel{}).Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []roundModel.RoundModel
	if err := q.Order("round_internstarts DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Get accepts either the round id or its slug.
func (s *RoundService) Get(ctx context.Context, idOrSlug string) (*roundModel.RoundModel, error) {
	q := s.DB.WithContext(ctx)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		q = q.Where("round_id = ?", id)
	} else {
		q = q.Where("round_slug = ?", idOrSlug)
	}
	var m roundModel.RoundModel
	if err := q.Take(&m).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Save persists edited milestones. Existing internships keep their own windows.
func (s *RoundService) Save(ctx context.Context, m *roundModel.RoundModel) error {
	if err := checkOrder(m); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Save(m).Error
}
