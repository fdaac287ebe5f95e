package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"studyset_backend/internal/model"
	"studyset_backend/internal/repository"
	"studyset_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

type UpdateProfileReq struct {
	Username *string `json:"username"`
}

func (s *UserService) GetProfile(userID string) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID string, req UpdateProfileReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if strings.TrimSpace(*req.Username) == "" {
			return nil, fmt.Errorf("%w: username must not be empty", util.ErrValidation)
		}
		user.Username = *req.Username
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image under avatars/<userID><ext> and records the
// resulting URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID, originalName, contentType string, reader io.Reader, size int64) (string, error) {
	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("avatars/%s%s", userID, ext)

	url, err := s.Storage.Upload(ctx, filename, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}
