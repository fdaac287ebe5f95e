package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"studyset_backend/internal/config"
	"studyset_backend/internal/model"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	TokenRepo *repository.RefreshTokenRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		Cfg:       cfg,
	}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Register(req RegisterReq) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        model.Student,
		LoginMethod: model.LoginEmail,
		IsActive:    true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(req LoginReq) (*TokenPair, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if user.LoginMethod != model.LoginEmail {
		return nil, nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, util.ErrAccountLocked
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	stored, err := s.TokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, util.ErrRefreshTokenInvalid
	}
	if stored.Expired() {
		_ = s.TokenRepo.DeleteByToken(refreshToken)
		return nil, util.ErrRefreshTokenInvalid
	}

	user, err := s.UserRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, util.ErrRefreshTokenInvalid
	}
	if !user.IsActive {
		return nil, util.ErrAccountLocked
	}

	if err := s.TokenRepo.DeleteByToken(refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.TokenRepo.DeleteByToken(refreshToken)
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user.ID, user.Username, string(user.Role), s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	refresh := hex.EncodeToString(raw)

	record := model.NewRefreshToken(user.ID, refresh, s.Cfg.JWT.RefreshExpire)
	if err := s.TokenRepo.Create(record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
