package repository

import (
	"time"

	"studyset_backend/internal/model"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	DB *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{DB: db}
}

func (r *RefreshTokenRepository) Create(token *model.RefreshToken) error {
	return r.DB.Create(token).Error
}

func (r *RefreshTokenRepository) FindByToken(token string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.Take(&t, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) DeleteByToken(token string) error {
	return r.DB.Delete(&model.RefreshToken{}, "token = ?", token).Error
}

func (r *RefreshTokenRepository) DeleteForUser(userID string) error {
	return r.DB.Delete(&model.RefreshToken{}, "user_id = ?", userID).Error
}

// DeleteExpired purges tokens past their expiry, returning how many rows
// were removed.
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	res := r.DB.Where("expires_at < ?", time.Now()).Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
