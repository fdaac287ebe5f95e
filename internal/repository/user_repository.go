package repository

import (
	"studyset_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Take(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Take(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateAvatar(userID, avatarURL string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("avatar_url", avatarURL).Error
}

func (r *UserRepository) ListAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(userID string, role model.UserRole) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("role", role).Error
}

func (r *UserRepository) SetActive(userID string, active bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("is_active", active).Error
}
