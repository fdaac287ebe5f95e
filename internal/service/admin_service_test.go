package service

import (
	"errors"
	"testing"

	"studyset_backend/internal/model"
	"studyset_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUserAdminStore struct {
	users map[string]*model.User
}

func newFakeUserAdminStore() *fakeUserAdminStore {
	return &fakeUserAdminStore{users: map[string]*model.User{}}
}

func (f *fakeUserAdminStore) add(id string, role model.UserRole, active bool) {
	f.users[id] = &model.User{ID: id, Role: role, IsActive: active}
}

func (f *fakeUserAdminStore) FindByID(id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserAdminStore) ListAll() ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserAdminStore) UpdateRole(userID string, role model.UserRole) error {
	if u, ok := f.users[userID]; ok {
		u.Role = role
	}
	return nil
}

func (f *fakeUserAdminStore) SetActive(userID string, active bool) error {
	if u, ok := f.users[userID]; ok {
		u.IsActive = active
	}
	return nil
}

func newAdminFixture() (*AdminService, *fakeUserAdminStore) {
	store := newFakeUserAdminStore()
	store.add("admin-1", model.Admin, true)
	store.add("student-1", model.Student, true)
	return NewAdminService(store), store
}

func TestListUsersRequiresAdminRole(t *testing.T) {
	svc, _ := newAdminFixture()

	if _, err := svc.ListUsers("student-1"); !errors.Is(err, util.ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired for student caller, got %v", err)
	}

	users, err := svc.ListUsers("admin-1")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestLockedAdminCannotAdminister(t *testing.T) {
	svc, store := newAdminFixture()
	store.add("admin-2", model.Admin, false)

	if _, err := svc.ListUsers("admin-2"); !errors.Is(err, util.ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired for locked admin, got %v", err)
	}
}

func TestGrantAdminUpdatesRole(t *testing.T) {
	svc, store := newAdminFixture()

	if err := svc.GrantAdmin("admin-1", "student-1"); err != nil {
		t.Fatalf("GrantAdmin: %v", err)
	}
	if store.users["student-1"].Role != model.Admin {
		t.Fatalf("expected student-1 promoted to admin, got %s", store.users["student-1"].Role)
	}
}

func TestGrantAdminUnknownTarget(t *testing.T) {
	svc, _ := newAdminFixture()

	if err := svc.GrantAdmin("admin-1", "missing"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLockAndUnlockUser(t *testing.T) {
	svc, store := newAdminFixture()

	if err := svc.LockUser("admin-1", "student-1"); err != nil {
		t.Fatalf("LockUser: %v", err)
	}
	if store.users["student-1"].IsActive {
		t.Fatal("expected student-1 locked")
	}

	if err := svc.UnlockUser("admin-1", "student-1"); err != nil {
		t.Fatalf("UnlockUser: %v", err)
	}
	if !store.users["student-1"].IsActive {
		t.Fatal("expected student-1 unlocked")
	}
}

func TestUnlockAlreadyActiveUserSucceeds(t *testing.T) {
	svc, store := newAdminFixture()

	if err := svc.UnlockUser("admin-1", "student-1"); err != nil {
		t.Fatalf("UnlockUser on active user: %v", err)
	}
	if !store.users["student-1"].IsActive {
		t.Fatal("expected student-1 to stay active")
	}
}

func TestLockUserRequiresAdminRole(t *testing.T) {
	svc, store := newAdminFixture()

	if err := svc.LockUser("student-1", "admin-1"); !errors.Is(err, util.ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if !store.users["admin-1"].IsActive {
		t.Fatal("admin-1 must stay active")
	}
}
