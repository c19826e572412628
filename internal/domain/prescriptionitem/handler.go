package prescriptionitem

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

// Items follow their prescriptions: doctors only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/prescription-item", auth.RequireRole(auth.RoleDoctor))
	g.GET("/list", h.List)
	g.GET("/:id", h.Get)
	g.GET("/prescription/:prescriptionId", h.ListByPrescription)
	g.POST("/add", h.Add)
	g.PUT("/update", h.Update)
	g.DELETE("/:id", h.Delete)
	g.DELETE("/prescription/:prescriptionId", h.DeleteByPrescription)
}

func parsePathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(items))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("明细ID不合法"))
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if item == nil {
		return c.JSON(http.StatusOK, response.Failed("处方明细不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(item))
}

func (h *Handler) ListByPrescription(c echo.Context) error {
	prescriptionID, ok := parsePathID(c, "prescriptionId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("处方ID不合法"))
	}
	items, err := h.svc.ListByPrescription(c.Request().Context(), prescriptionID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(items))
}

func (h *Handler) Add(c echo.Context) error {
	var item PrescriptionItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Add(c.Request().Context(), &item)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("添加处方明细失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var item PrescriptionItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Update(c.Request().Context(), &item)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("修改处方明细失败"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("明细ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除处方明细失败"))
}

func (h *Handler) DeleteByPrescription(c echo.Context) error {
	prescriptionID, ok := parsePathID(c, "prescriptionId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("处方ID不合法"))
	}
	rows, err := h.svc.DeleteByPrescription(c.Request().Context(), prescriptionID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(rows))
}
