package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/cache"
)

const cacheKeyUserList = "userList"

// Service holds sys_user business rules. Reads of the full list go
// through the cache accessor; every successful write invalidates the
// list key.
type Service struct {
	repo  Repository
	cache *cache.Accessor
	log   zerolog.Logger
}

func NewService(repo Repository, accessor *cache.Accessor, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: accessor, log: log.With().Str("component", "user-service").Logger()}
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return cache.GetOrLoad(ctx, s.cache, cacheKeyUserList, func(ctx context.Context) ([]*User, error) {
		return s.repo.List(ctx)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) ListByRole(ctx context.Context, role string) ([]*User, error) {
	return s.repo.GetByRole(ctx, strings.ToUpper(role))
}

func validRole(role string) bool {
	switch strings.ToUpper(role) {
	case "ADMIN", "DOCTOR":
		return true
	}
	return false
}

func (s *Service) Add(ctx context.Context, u *User) (int64, error) {
	if u.Username == "" || u.Password == "" {
		return 0, apperr.Validation("用户名和密码不能为空")
	}
	if !validRole(u.Role) {
		return 0, apperr.Validation("角色必须是 ADMIN 或 DOCTOR")
	}
	existing, err := s.repo.GetByUsername(ctx, u.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperr.Conflict("用户名已存在")
	}
	u.Role = strings.ToUpper(u.Role)
	if u.Status == nil {
		u.Status = statusPtr(StatusEnabled)
	}
	rows, err := s.repo.Insert(ctx, u)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyUserList)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, u *User) (int64, error) {
	if u.UserID == 0 {
		return 0, apperr.Validation("用户ID不能为空")
	}
	if u.Role != "" && !validRole(u.Role) {
		return 0, apperr.Validation("角色必须是 ADMIN 或 DOCTOR")
	}
	if u.Username != "" {
		existing, err := s.repo.GetByUsername(ctx, u.Username)
		if err != nil {
			return 0, err
		}
		if existing != nil && existing.UserID != u.UserID {
			return 0, apperr.Conflict("用户名已被使用")
		}
	}
	u.Role = strings.ToUpper(u.Role)
	rows, err := s.repo.Update(ctx, u)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyUserList)
	}
	return rows, nil
}

// Delete disables the account rather than removing the row, so that
// cases and prescriptions keep a valid doctor reference.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, nil
	}
	rows, err := s.repo.UpdateStatus(ctx, id, StatusDisabled)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyUserList)
	}
	return rows, nil
}

func (s *Service) HardDelete(ctx context.Context, id int64) (int64, error) {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		s.cache.Invalidate(ctx, cacheKeyUserList)
	}
	return rows, nil
}
