// Package authn implements login: credential verification against the
// user store and token issuance.
package authn

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ZhangDT-sky/PrivateClinic/internal/domain/user"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/apperr"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/metrics"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/token"
)

// LoginRequest carries the login form. UserType is accepted for older
// clients but ignored; the role always comes from the stored account.
type LoginRequest struct {
	UserType string `json:"userType"`
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// UserStore is the slice of the user service login needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type Service struct {
	users  UserStore
	tokens *token.Service
	log    zerolog.Logger
}

func NewService(users UserStore, tokens *token.Service, log zerolog.Logger) *Service {
	return &Service{users: users, tokens: tokens, log: log.With().Str("component", "authn-service").Logger()}
}

// Login verifies the credentials and returns a signed token. Unknown
// usernames and wrong passwords produce the same message so callers
// cannot probe which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if req.UserID == "" {
		return "", apperr.Validation("用户名不能为空")
	}
	if req.Password == "" {
		return "", apperr.Validation("密码不能为空")
	}

	u, err := s.users.GetByUsername(ctx, req.UserID)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return "", err
	}
	if u == nil {
		s.log.Warn().Str("username", req.UserID).Msg("登录失败，用户不存在")
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return "", apperr.Auth("用户名或密码错误")
	}
	if u.Status == nil || *u.Status != user.StatusEnabled {
		s.log.Warn().Str("username", req.UserID).Msg("登录失败，账户已被禁用")
		metrics.LoginAttempts.WithLabelValues("disabled").Inc()
		return "", apperr.Auth("账户已被禁用")
	}
	if req.Password != u.Password {
		s.log.Warn().Str("username", req.UserID).Msg("登录失败，密码错误")
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return "", apperr.Auth("用户名或密码错误")
	}

	userID := strconv.FormatInt(u.UserID, 10)
	tok, err := s.tokens.Issue(userID, token.Claims{
		UserID:      userID,
		Username:    u.Username,
		DisplayName: u.Username,
		UserType:    u.Role,
		Role:        u.Role,
	})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return "", err
	}

	s.log.Info().Str("username", u.Username).Str("role", u.Role).
		Int64("user_id", u.UserID).Msg("登录成功")
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return tok, nil
}
