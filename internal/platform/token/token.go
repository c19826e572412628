// Package token issues and verifies the bearer tokens used by the clinic
// API. Two HMAC keys are configured so the active signing key can be
// rotated without invalidating tokens issued under the previous key:
// issuance always uses the primary key, verification accepts either.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the closed claim set carried by every clinic token. DisplayName
// and Role are serialized twice under legacy keys so older claim readers
// keep working.
type Claims struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"userName"`
	UserType    string `json:"userType"`
	Role        string `json:"userRole"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens. Both keys are fixed at construction;
// there is no lazy key material anywhere in the process.
type Service struct {
	primary    []byte
	secondary  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewService builds a Service from the two configured secrets. An empty
// secondary secret disables the rotation fallback by reusing the primary.
func NewService(primarySecret, secondarySecret string, expirationSeconds int64) *Service {
	secondary := secondarySecret
	if secondary == "" {
		secondary = primarySecret
	}
	return &Service{
		primary:    []byte(primarySecret),
		secondary:  []byte(secondary),
		expiration: time.Duration(expirationSeconds) * time.Second,
		now:        time.Now,
	}
}

// Issue signs a token for subject with the primary key. Expiry is issued-at
// plus the configured duration.
func (s *Service) Issue(subject string, claims Claims) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.primary)
}

// Validate verifies the signature with the primary key and, on failure,
// retries with the secondary key so tokens from the previous rotation epoch
// stay verifiable. Any parse or signature failure yields nil. Expiry is
// NOT checked here; callers combine Validate with IsExpired (or use
// IsValid).
func (s *Service) Validate(tokenStr string) *Claims {
	if claims := s.parse(tokenStr, s.primary); claims != nil {
		return claims
	}
	return s.parse(tokenStr, s.secondary)
}

func (s *Service) parse(tokenStr string, key []byte) *Claims {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return nil
	}
	return claims
}

// IsExpired reports whether the claims' expiry is at or before now. Claims
// without an expiry are treated as expired.
func (s *Service) IsExpired(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(s.now())
}

// IsValid reports whether the token verifies under either key and has not
// expired.
func (s *Service) IsValid(tokenStr string) bool {
	claims := s.Validate(tokenStr)
	return claims != nil && !s.IsExpired(claims)
}

// Subject returns the token's subject, or "" if the token does not verify.
func (s *Service) Subject(tokenStr string) string {
	claims := s.Validate(tokenStr)
	if claims == nil {
		return ""
	}
	return claims.Subject
}

// Claim returns a single named claim value, or "" if the token does not
// verify or the key is unknown.
func (s *Service) Claim(tokenStr, key string) string {
	claims := s.Validate(tokenStr)
	if claims == nil {
		return ""
	}
	switch key {
	case "userId":
		return claims.UserID
	case "username":
		return claims.Username
	case "userName":
		return claims.DisplayName
	case "userType":
		return claims.UserType
	case "userRole":
		return claims.Role
	}
	return ""
}

// ExpiresAt returns the token's expiry, or the zero time if the token does
// not verify.
func (s *Service) ExpiresAt(tokenStr string) time.Time {
	claims := s.Validate(tokenStr)
	if claims == nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// ExpiringSoon reports whether the token expires within window. Tokens that
// do not verify count as expiring.
func (s *Service) ExpiringSoon(tokenStr string, window time.Duration) bool {
	claims := s.Validate(tokenStr)
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Sub(s.now()) <= window
}
