package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolAdminRepository struct {
	DB *gorm.DB
}

func NewSchoolAdminRepository(db *gorm.DB) *SchoolAdminRepository {
	return &SchoolAdminRepository{DB: db}
}

func (r *SchoolAdminRepository) Create(record *model.SchoolAdmin) error {
	return r.DB.Create(record).Error
}

func (r *SchoolAdminRepository) FindByAdminAndSchool(adminID, schoolID string) (*model.SchoolAdmin, error) {
	var record model.SchoolAdmin
	err := r.DB.First(&record, "admin_id = ? AND school_id = ?", adminID, schoolID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSchoolAdminNotFound
	}
	return &record, err
}

func (r *SchoolAdminRepository) List(page, size int, schoolID string, role model.SchoolAdminRole) ([]model.SchoolAdmin, int64, error) {
	var records []model.SchoolAdmin
	var total int64

	q := r.DB.Model(&model.SchoolAdmin{})
	if schoolID != "" {
		q = q.Where("school_id = ?", schoolID)
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Admin").Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&records).Error
	return records, total, err
}

func (r *SchoolAdminRepository) Update(record *model.SchoolAdmin) error {
	return r.DB.Save(record).Error
}

func (r *SchoolAdminRepository) Delete(adminID, schoolID string) error {
	return r.DB.Delete(&model.SchoolAdmin{}, "admin_id = ? AND school_id = ?", adminID, schoolID).Error
}
