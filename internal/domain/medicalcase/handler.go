package medicalcase

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

// Case records are doctors only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/medical-case", auth.RequireRole(auth.RoleDoctor))
	g.GET("/list", h.List)
	g.GET("/:id", h.Get)
	g.GET("/patient/:patientId", h.ListByPatient)
	g.GET("/doctor/:doctorId", h.ListByDoctor)
	g.GET("/status/:status", h.ListByStatus)
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
	cases, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(cases))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("病例ID不合法"))
	}
	mc, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if mc == nil {
		return c.JSON(http.StatusOK, response.Failed("病例不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(mc))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, ok := parsePathID(c, "patientId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("患者ID不合法"))
	}
	cases, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(cases))
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, ok := parsePathID(c, "doctorId")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("医生ID不合法"))
	}
	cases, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(cases))
}

func (h *Handler) ListByStatus(c echo.Context) error {
	cases, err := h.svc.ListByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(cases))
}

func (h *Handler) Add(c echo.Context) error {
	var mc MedicalCase
	if err := c.Bind(&mc); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	ctx := c.Request().Context()
	if mc.DoctorID == 0 {
		if doctorID, err := strconv.ParseInt(auth.UserIDFromContext(ctx), 10, 64); err == nil {
			mc.DoctorID = doctorID
		}
	}
	rows, err := h.svc.Add(ctx, &mc)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("添加病例失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var mc MedicalCase
	if err := c.Bind(&mc); err != nil {
		return c.JSON(http.StatusOK, response.ValidateFailed("请求参数不合法"))
	}
	rows, err := h.svc.Update(c.Request().Context(), &mc)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("修改病例失败"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parsePathID(c, "id")
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("病例ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除病例失败"))
}
