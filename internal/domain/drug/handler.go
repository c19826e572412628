package drug

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

// Pharmacy inventory is administered by admins only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/drug", auth.RequireRole(auth.RoleAdmin))
	g.GET("/list", h.List)
	g.GET("/:id", h.Get)
	g.GET("/name/:name", h.GetByName)
	g.POST("/add", h.Add)
	g.PUT("/update", h.Update)
	g.PUT("/:id/stock", h.SetStock)
	g.PUT("/:id/dispense", h.Dispense)
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
	drugs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(drugs))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品ID不合法"))
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if d == nil {
		return c.JSON(http.StatusOK, response.Failed("药品不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(d))
}

func (h *Handler) GetByName(c echo.Context) error {
	d, err := h.svc.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if d == nil {
		return c.JSON(http.StatusOK, response.Failed("药品不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(d))
}

func (h *Handler) Add(c echo.Context) error {
	var d Drug
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Add(c.Request().Context(), &d)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("添加药品失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var d Drug
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Update(c.Request().Context(), &d)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("修改药品失败"))
}

func (h *Handler) SetStock(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品ID不合法"))
	}
	stock, err := strconv.Atoi(c.QueryParam("stock"))
	if err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品库存不合法"))
	}
	rows, err := h.svc.SetStock(c.Request().Context(), id, stock)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("更新库存失败"))
}

func (h *Handler) Dispense(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品ID不合法"))
	}
	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("发药数量不合法"))
	}
	rows, err := h.svc.Dispense(c.Request().Context(), id, quantity)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(rows))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除药品失败"))
}

func (h *Handler) HardDelete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("药品ID不合法"))
	}
	rows, err := h.svc.HardDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除药品失败"))
}
