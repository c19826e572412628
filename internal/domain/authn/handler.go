package authn

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Login is the only unauthenticated endpoint besides health and metrics.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	tok, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.SuccessMsg(tok, "登录成功"))
}
