package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type SchoolTeacherRepository struct {
	DB *gorm.DB
}

func NewSchoolTeacherRepository(db *gorm.DB) *SchoolTeacherRepository {
	return &SchoolTeacherRepository{DB: db}
}

func (r *SchoolTeacherRepository) Create(membership *model.SchoolTeacher) error {
	return r.DB.Create(membership).Error
}

func (r *SchoolTeacherRepository) FindBySchoolAndUser(schoolID, userID string) (*model.SchoolTeacher, error) {
	var membership model.SchoolTeacher
	err := r.DB.First(&membership, "school_id = ? AND user_id = ?", schoolID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &membership, err
}

// ListMembers returns the school's staff, optionally filtered by the
// teaching flag. A nil filter returns everyone. Only active memberships
// are considered for audience resolution.
func (r *SchoolTeacherRepository) ListMembers(schoolID string, isTeachingStaff *bool) ([]model.SchoolTeacher, error) {
	var memberships []model.SchoolTeacher
	q := r.DB.Where("school_id = ? AND is_active = ?", schoolID, true)
	if isTeachingStaff != nil {
		q = q.Where("is_teaching_staff = ?", *isTeachingStaff)
	}
	err := q.Find(&memberships).Error
	return memberships, err
}

func (r *SchoolTeacherRepository) List(page, size int, schoolID string) ([]model.SchoolTeacher, int64, error) {
	var memberships []model.SchoolTeacher
	var total int64

	q := r.DB.Model(&model.SchoolTeacher{})
	if schoolID != "" {
		q = q.Where("school_id = ?", schoolID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("User").Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&memberships).Error
	return memberships, total, err
}

func (r *SchoolTeacherRepository) Update(membership *model.SchoolTeacher) error {
	return r.DB.Save(membership).Error
}

func (r *SchoolTeacherRepository) Delete(schoolID, userID string) error {
	return r.DB.Delete(&model.SchoolTeacher{}, "school_id = ? AND user_id = ?", schoolID, userID).Error
}
