package user

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/auth"
	"github.com/ZhangDT-sky/PrivateClinic/internal/platform/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Staff account management is reserved for administrators.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/user", auth.RequireRole(auth.RoleAdmin))
	g.GET("/list", h.List)
	g.GET("/:id", h.Get)
	g.GET("/userName/:username", h.GetByUsername)
	g.GET("/role/:role", h.ListByRole)
	g.POST("/add", h.Add)
	g.PUT("/update", h.Update)
	g.DELETE("/:id", h.Delete)
	g.DELETE("/physical/:id", h.HardDelete)
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	for _, u := range users {
		u.Password = ""
	}
	return c.JSON(http.StatusOK, response.Success(users))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("用户ID不合法"))
	}
	u, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if u == nil {
		return c.JSON(http.StatusOK, response.Failed("用户不存在"))
	}
	u.Password = ""
	return c.JSON(http.StatusOK, response.Success(u))
}

func (h *Handler) GetByUsername(c echo.Context) error {
	u, err := h.svc.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if u == nil {
		return c.JSON(http.StatusOK, response.Failed("用户不存在"))
	}
	u.Password = ""
	return c.JSON(http.StatusOK, response.Success(u))
}

func (h *Handler) ListByRole(c echo.Context) error {
	users, err := h.svc.ListByRole(c.Request().Context(), c.Param("role"))
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	for _, u := range users {
		u.Password = ""
	}
	return c.JSON(http.StatusOK, response.Success(users))
}

func (h *Handler) Add(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Add(c.Request().Context(), &u)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("添加用户失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Update(c.Request().Context(), &u)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("修改用户失败"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("用户ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除用户失败"))
}

func (h *Handler) HardDelete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("用户ID不合法"))
	}
	rows, err := h.svc.HardDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除用户失败"))
}
