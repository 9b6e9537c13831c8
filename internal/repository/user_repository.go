package repository

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts the user and stamps the generated registration number from
// the database-assigned serial.
func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		user.RegistrationNumber = util.FormatRegistrationNumber(user.Serial)
		return tx.Model(user).Update("registration_number", user.RegistrationNumber).Error
	})
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) List(page, size int, query string) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	q := r.DB.Model(&model.User{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR registration_number LIKE ?",
			like, like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at desc").
		Offset(util.PageOffset(page, size)).Limit(size).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.DB.Delete(&model.User{}, "id = ?", id).Error
}

func (r *UserRepository) UpdateLastLogin(id string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP(3)")).Error
}
