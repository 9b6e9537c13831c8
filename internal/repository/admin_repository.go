package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(admin *model.Admin) error {
	return r.DB.Create(admin).Error
}

func (r *AdminRepository) FindByID(id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAdminNotFound
	}
	return &admin, err
}

func (r *AdminRepository) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.First(&admin, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAdminNotFound
	}
	return &admin, err
}

func (r *AdminRepository) List(page, size int) ([]model.Admin, int64, error) {
	var admins []model.Admin
	var total int64

	q := r.DB.Model(&model.Admin{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&admins).Error
	return admins, total, err
}

func (r *AdminRepository) Update(admin *model.Admin) error {
	return r.DB.Save(admin).Error
}

func (r *AdminRepository) Delete(id string) error {
	return r.DB.Delete(&model.Admin{}, "id = ?", id).Error
}

// CountSuperAdmins is used by the bootstrap seeder to decide whether the
// configured default super admin must be created.
func (r *AdminRepository) CountSuperAdmins() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Admin{}).Where("is_super_admin = ?", true).Count(&count).Error
	return count, err
}
