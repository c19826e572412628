package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/token"
)

func newTokenService() *token.Service {
	return token.NewService("test-secret", "", 3600)
}

func issueToken(t *testing.T, tokens *token.Service, role string) string {
	t.Helper()
	tok, err := tokens.Issue("5", token.Claims{
		UserID: "5", Username: "doc", DisplayName: "doc",
		UserType: role, Role: role,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func runRequest(tokens *token.Service, authHeader string, skipper func(echo.Context) bool, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/drug/list", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = Middleware(tokens, skipper)(handler)(c)
	return rec
}

func TestMiddlewareRejectsMissingAndMalformedHeader(t *testing.T) {
	tokens := newTokenService()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, header := range []string{"", "Basic abc", "Bearer", "bearertoken"} {
		rec := runRequest(tokens, header, nil, handler)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	tokens := newTokenService()
	other := token.NewService("other-secret", "", 3600)
	foreign, _ := other.Issue("1", token.Claims{UserID: "1"})

	rec := runRequest(tokens, "Bearer "+foreign, nil, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign token, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "暂未登录") {
		t.Errorf("expected unauthorized envelope, got %s", rec.Body.String())
	}
}

func TestMiddlewareStashesIdentity(t *testing.T) {
	tokens := newTokenService()
	tok := issueToken(t, tokens, "DOCTOR")

	var gotID, gotRole string
	rec := runRequest(tokens, "Bearer "+tok, nil, func(c echo.Context) error {
		gotID = UserIDFromContext(c.Request().Context())
		gotRole = RoleFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "5" || gotRole != "DOCTOR" {
		t.Errorf("identity not propagated: id=%q role=%q", gotID, gotRole)
	}
}

func TestMiddlewareHonorsSkipper(t *testing.T) {
	tokens := newTokenService()
	skipper := func(c echo.Context) bool { return true }

	rec := runRequest(tokens, "", skipper, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("skipped route must pass without a token, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := newTokenService()
	e := echo.New()
	handler := RequireRole(RoleDoctor)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func(role string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/patient/list", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			tok := issueToken(t, tokens, role)
			req.Header.Set("Authorization", "Bearer "+tok)
			_ = Middleware(tokens, nil)(handler)(c)
		} else {
			_ = handler(c)
		}
		return rec.Code
	}

	if code := run("DOCTOR"); code != http.StatusOK {
		t.Errorf("doctor should pass, got %d", code)
	}
	// Admins do not get a pass on clinical endpoints.
	if code := run("ADMIN"); code != http.StatusForbidden {
		t.Errorf("admin should be forbidden, got %d", code)
	}
	if code := run(""); code != http.StatusForbidden {
		t.Errorf("anonymous should be forbidden, got %d", code)
	}
}

func TestResolveIdentityNilOnExpired(t *testing.T) {
	tokens := token.NewService("secret", "", 0)
	tok, _ := tokens.Issue("1", token.Claims{UserID: "1"})

	if ResolveIdentity(tokens, tok) != nil {
		t.Fatal("zero-lifetime token must not resolve")
	}
	if ResolveIdentity(tokens, "garbage") != nil {
		t.Fatal("garbage must not resolve")
	}
}
