package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) Create(question *model.QuestionBank) error {
	return r.DB.Create(question).Error
}

func (r *QuestionBankRepository) FindByID(id string) (*model.QuestionBank, error) {
	var question model.QuestionBank
	err := r.DB.First(&question, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return &question, err
}

func (r *QuestionBankRepository) List(page, size int, query string, categories []string) ([]model.QuestionBank, int64, error) {
	var questions []model.QuestionBank
	var total int64

	q := r.DB.Model(&model.QuestionBank{})
	if query != "" {
		q = q.Where("question LIKE ?", "%"+query+"%")
	}
	// categories live in a JSON column; match any requested tag
	if len(categories) > 0 {
		sub := r.DB.Where("JSON_CONTAINS(categories, JSON_QUOTE(?))", categories[0])
		for _, cat := range categories[1:] {
			sub = sub.Or("JSON_CONTAINS(categories, JSON_QUOTE(?))", cat)
		}
		q = q.Where(sub)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&questions).Error
	return questions, total, err
}

func (r *QuestionBankRepository) Update(question *model.QuestionBank) error {
	return r.DB.Save(question).Error
}

func (r *QuestionBankRepository) Delete(id string) error {
	return r.DB.Delete(&model.QuestionBank{}, "id = ?", id).Error
}
