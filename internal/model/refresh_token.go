package model

import "time"

type RefreshToken struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	Token     string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func NewRefreshToken(userID, token string, ttl time.Duration) *RefreshToken {
	return &RefreshToken{
		ID:        NewID(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (t *RefreshToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}
