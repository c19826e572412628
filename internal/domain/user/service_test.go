package user

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/cache"
)

// -- Mock Repository --

type mockUserRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*User), nextID: 1}
}

func (m *mockUserRepo) List(_ context.Context) ([]*User, error) {
	var result []*User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByRole(_ context.Context, role string) ([]*User, error) {
	var result []*User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Insert(_ context.Context, u *User) (int64, error) {
	u.UserID = m.nextID
	m.nextID++
	u.CreateTime = time.Now()
	u.UpdateTime = time.Now()
	m.users[u.UserID] = u
	return 1, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *User) (int64, error) {
	existing, ok := m.users[u.UserID]
	if !ok {
		return 0, nil
	}
	if u.Username != "" {
		existing.Username = u.Username
	}
	if u.DisplayName != "" {
		existing.DisplayName = u.DisplayName
	}
	if u.Role != "" {
		existing.Role = u.Role
	}
	if u.Status != nil {
		existing.Status = u.Status
	}
	return 1, nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, id int64, status int) (int64, error) {
	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	u.Status = &status
	return 1, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

func newTestService(repo Repository) *Service {
	accessor := cache.NewAccessor(cache.NewMemoryStore(), time.Hour, zerolog.Nop())
	return NewService(repo, accessor, zerolog.Nop())
}

// -- Tests --

func TestAddUserDefaultsAndUppercasesRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	rows, err := svc.Add(context.Background(), &User{
		Username: "zhangsan", Password: "secret", Role: "doctor",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	u, _ := repo.GetByUsername(context.Background(), "zhangsan")
	if u.Role != "DOCTOR" {
		t.Errorf("expected role DOCTOR, got %s", u.Role)
	}
	if u.Status == nil || *u.Status != StatusEnabled {
		t.Errorf("expected default status %d", StatusEnabled)
	}
}

func TestAddUserRejectsDuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Add(context.Background(), &User{Username: "lisi", Password: "p", Role: "ADMIN"}); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	_, err := svc.Add(context.Background(), &User{Username: "lisi", Password: "p", Role: "DOCTOR"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAddUserRejectsUnknownRole(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	_, err := svc.Add(context.Background(), &User{Username: "w", Password: "p", Role: "NURSE"})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUserRejectsUsernameTakenByOther(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &User{Username: "a", Password: "p", Role: "ADMIN"})
	svc.Add(context.Background(), &User{Username: "b", Password: "p", Role: "DOCTOR"})

	other, _ := repo.GetByUsername(context.Background(), "b")
	_, err := svc.Update(context.Background(), &User{UserID: other.UserID, Username: "a"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestDeleteUserDisablesAccount(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &User{Username: "c", Password: "p", Role: "DOCTOR"})
	u, _ := repo.GetByUsername(context.Background(), "c")

	rows, err := svc.Delete(context.Background(), u.UserID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	after, _ := repo.GetByID(context.Background(), u.UserID)
	if after == nil || after.Status == nil || *after.Status != StatusDisabled {
		t.Errorf("expected account disabled, not removed")
	}
	rows, err = svc.Delete(context.Background(), 9999)
	if err != nil || rows != 0 {
		t.Errorf("expected 0 rows for missing user, got %d (%v)", rows, err)
	}
}

func TestListUsersServedFromCacheUntilInvalidated(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	svc.Add(context.Background(), &User{Username: "d1", Password: "p", Role: "DOCTOR"})

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 user, got %d", len(first))
	}

	// Mutate the store behind the service's back: the cached list entry
	// still answers until a write invalidates it.
	repo.Insert(context.Background(), &User{Username: "d2", Password: "p", Role: "DOCTOR"})
	stale, _ := svc.List(context.Background())
	if len(stale) != 1 {
		t.Fatalf("expected stale cached list of 1, got %d", len(stale))
	}

	svc.Add(context.Background(), &User{Username: "d3", Password: "p", Role: "DOCTOR"})
	fresh, _ := svc.List(context.Background())
	if len(fresh) != 3 {
		t.Fatalf("expected reloaded list of 3, got %d", len(fresh))
	}
}
