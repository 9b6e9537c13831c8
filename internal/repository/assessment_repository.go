package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// CreateWithQuestions persists the assessment, its ordered question
// attachments and the audience fan-out takers in one transaction. A failure
// anywhere rolls back everything; no partial fan-out survives.
func (r *AssessmentRepository) CreateWithQuestions(a *model.Assessment, questions []model.AssessmentQuestion, takers []model.AssessmentTaker) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].AssessmentID = a.ID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		if len(takers) == 0 {
			return nil
		}
		for i := range takers {
			takers[i].AssessmentID = a.ID
		}
		return tx.Create(&takers).Error
	})
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

// FindByIDWithQuestions loads the assessment together with its attachments
// and their bank entries, ordered for display.
func (r *AssessmentRepository) FindByIDWithQuestions(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Preload("Questions.Question").
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

type AssessmentFilter struct {
	Query          string
	SchoolID       string
	TargetAudience model.TargetAudience
	Page           int
	Size           int
}

func (r *AssessmentRepository) List(filter AssessmentFilter) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	q := r.DB.Model(&model.Assessment{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.SchoolID != "" {
		q = q.Where("school_id = ?", filter.SchoolID)
	}
	if filter.TargetAudience != "" {
		q = q.Where("target_audience = ?", filter.TargetAudience)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(filter.Page, filter.Size)).Limit(filter.Size).
		Find(&assessments).Error
	return assessments, total, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// Delete removes the assessment and cascades to its attachments and takers.
func (r *AssessmentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AssessmentQuestion{}, "assessment_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.AssessmentTaker{}, "assessment_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Assessment{}, "id = ?", id).Error
	})
}

// ListAttachments returns the ordered join rows for one assessment.
func (r *AssessmentRepository) ListAttachments(assessmentID string) ([]model.AssessmentQuestion, error) {
	var attachments []model.AssessmentQuestion
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("display_order asc").
		Preload("Question").
		Find(&attachments).Error
	return attachments, err
}

// NextQuestionOrder returns the next free 1-based order slot.
func (r *AssessmentRepository) NextQuestionOrder(assessmentID string) (int, error) {
	var max *int
	err := r.DB.Model(&model.AssessmentQuestion{}).
		Where("assessment_id = ?", assessmentID).
		Select("MAX(display_order)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *AssessmentRepository) AttachQuestion(attachment *model.AssessmentQuestion) error {
	return r.DB.Create(attachment).Error
}

// DetachQuestion deletes the join row only; the bank entry survives.
func (r *AssessmentRepository) DetachQuestion(assessmentID, questionID string) error {
	res := r.DB.Delete(&model.AssessmentQuestion{}, "assessment_id = ? AND question_id = ?", assessmentID, questionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrQuestionNotAttached
	}
	return nil
}
