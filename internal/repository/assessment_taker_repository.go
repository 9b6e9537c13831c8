package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentTakerRepository struct {
	DB *gorm.DB
}

func NewAssessmentTakerRepository(db *gorm.DB) *AssessmentTakerRepository {
	return &AssessmentTakerRepository{DB: db}
}

func (r *AssessmentTakerRepository) Create(taker *model.AssessmentTaker) error {
	return r.DB.Create(taker).Error
}

func (r *AssessmentTakerRepository) FindByID(id string) (*model.AssessmentTaker, error) {
	var taker model.AssessmentTaker
	err := r.DB.First(&taker, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTakerNotFound
	}
	return &taker, err
}

func (r *AssessmentTakerRepository) FindByAssessmentAndUser(assessmentID, userID string) (*model.AssessmentTaker, error) {
	var taker model.AssessmentTaker
	err := r.DB.First(&taker, "assessment_id = ? AND user_id = ?", assessmentID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTakerNotFound
	}
	return &taker, err
}

type TakerFilter struct {
	AssessmentID string
	UserID       string
	Status       model.TakerStatus
	Page         int
	Size         int
}

func (r *AssessmentTakerRepository) List(filter TakerFilter) ([]model.AssessmentTaker, int64, error) {
	var takers []model.AssessmentTaker
	var total int64

	q := r.DB.Model(&model.AssessmentTaker{})
	if filter.AssessmentID != "" {
		q = q.Where("assessment_id = ?", filter.AssessmentID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(filter.Page, filter.Size)).Limit(filter.Size).
		Find(&takers).Error
	return takers, total, err
}

func (r *AssessmentTakerRepository) Update(taker *model.AssessmentTaker) error {
	return r.DB.Save(taker).Error
}

func (r *AssessmentTakerRepository) Delete(id string) error {
	return r.DB.Delete(&model.AssessmentTaker{}, "id = ?", id).Error
}

// GradeUngraded runs one grading pass in a single transaction. Completed,
// ungraded takers are selected with row locks so two concurrent passes cannot
// both score the same taker; the score callback computes the results that are
// then persisted. Returns how many takers were graded out of how many were
// selected.
func (r *AssessmentTakerRepository) GradeUngraded(assessmentID string, score func(*model.AssessmentTaker) model.TakerResults) (int, int, error) {
	graded, total := 0, 0
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var takers []model.AssessmentTaker
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("assessment_id = ? AND status = ? AND results IS NULL",
				assessmentID, model.TakerCompleted).
			Find(&takers).Error; err != nil {
			return err
		}

		total = len(takers)
		for i := range takers {
			results := score(&takers[i])
			if err := tx.Model(&takers[i]).Update("results", &results).Error; err != nil {
				return err
			}
			graded++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return graded, total, nil
}
