package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

// Create inserts the school and stamps its registration code from the
// database-assigned serial, in one transaction.
func (r *SchoolRepository) Create(school *model.School) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(school).Error; err != nil {
			return err
		}
		school.RegistrationID = util.FormatSchoolCode(school.Serial)
		return tx.Model(school).Update("registration_id", school.RegistrationID).Error
	})
}

func (r *SchoolRepository) FindByID(id string) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSchoolNotFound
	}
	return &school, err
}

func (r *SchoolRepository) FindBySerial(serial uint) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, "serial = ?", serial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSchoolNotFound
	}
	return &school, err
}

func (r *SchoolRepository) List(page, size int, query string, isActive *bool) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	q := r.DB.Model(&model.School{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR registration_id LIKE ?", like, like)
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&schools).Error
	return schools, total, err
}

func (r *SchoolRepository) Update(school *model.School) error {
	return r.DB.Save(school).Error
}

func (r *SchoolRepository) Delete(id string) error {
	return r.DB.Delete(&model.School{}, "id = ?", id).Error
}
