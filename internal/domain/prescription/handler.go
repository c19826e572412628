package prescription

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

// Prescriptions are written and read by doctors only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/prescription", auth.RequireRole(auth.RoleDoctor))
	g.GET("/list", h.List)
	g.GET("/:id", h.Get)
	g.GET("/case/:caseId", h.ListByCase)
	g.GET("/doctor/:doctorId", h.ListByDoctor)
	g.POST("/add", h.Add)
	g.PUT("/update", h.Update)
	g.DELETE("/:id", h.Delete)
}

func parsePathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c echo.Context) error {
	prescriptions, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(prescriptions))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("处方ID不合法"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if p == nil {
		return c.JSON(http.StatusOK, response.Failed("处方不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(p))
}

func (h *Handler) ListByCase(c echo.Context) error {
	caseID, ok := parsePathID(c, "caseId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("病例ID不合法"))
	}
	prescriptions, err := h.svc.ListByCase(c.Request().Context(), caseID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(prescriptions))
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, ok := parsePathID(c, "doctorId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("医生ID不合法"))
	}
	prescriptions, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(prescriptions))
}

func (h *Handler) Add(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	ctx := c.Request().Context()
	if p.DoctorID == 0 {
		if doctorID, err := strconv.ParseInt(auth.UserIDFromContext(ctx), 10, 64); err == nil {
			p.DoctorID = doctorID
		}
	}
	rows, err := h.svc.Add(ctx, &p)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("添加处方失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var p Prescription
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Update(c.Request().Context(), &p)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("修改处方失败"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("处方ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除处方失败"))
}
