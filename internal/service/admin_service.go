package service

import (
	"errors"

	"studyset_backend/internal/model"
	"studyset_backend/internal/util"

	"gorm.io/gorm"
)

// AdminUserStore is the slice of the user repository the admin surface
// needs. Implemented by repository.UserRepository.
type AdminUserStore interface {
	FindByID(id string) (*model.User, error)
	ListAll() ([]model.User, error)
	UpdateRole(userID string, role model.UserRole) error
	SetActive(userID string, active bool) error
}

type AdminService struct {
	Users AdminUserStore
}

func NewAdminService(users AdminUserStore) *AdminService {
	return &AdminService{Users: users}
}

// assertAdmin re-checks the caller's role against the stored row, not just
// the token claims: a revoked admin keeps a valid token until it expires.
func (s *AdminService) assertAdmin(callerID string) error {
	caller, err := s.Users.FindByID(callerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrAdminRequired
	}
	if err != nil {
		return err
	}
	if caller.Role != model.Admin || !caller.IsActive {
		return util.ErrAdminRequired
	}
	return nil
}

func (s *AdminService) lookupTarget(userID string) (*model.User, error) {
	target, err := s.Users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (s *AdminService) ListUsers(callerID string) ([]model.User, error) {
	if err := s.assertAdmin(callerID); err != nil {
		return nil, err
	}
	return s.Users.ListAll()
}

func (s *AdminService) GrantAdmin(callerID, userID string) error {
	if err := s.assertAdmin(callerID); err != nil {
		return err
	}
	if _, err := s.lookupTarget(userID); err != nil {
		return err
	}
	return s.Users.UpdateRole(userID, model.Admin)
}

func (s *AdminService) LockUser(callerID, userID string) error {
	if err := s.assertAdmin(callerID); err != nil {
		return err
	}
	if _, err := s.lookupTarget(userID); err != nil {
		return err
	}
	return s.Users.SetActive(userID, false)
}

func (s *AdminService) UnlockUser(callerID, userID string) error {
	if err := s.assertAdmin(callerID); err != nil {
		return err
	}
	if _, err := s.lookupTarget(userID); err != nil {
		return err
	}
	return s.Users.SetActive(userID, true)
}
