package patient

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

// Patient records are a clinical concern: doctors only, admins do not
// pass.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patient", auth.RequireRole(auth.RoleDoctor))
	g.GET("/list", h.List)
	g.GET("/mine", h.ListMine)
	g.GET("/doctor/:doctorId", h.ListByDoctor)
	g.GET("/:id", h.Get)
	g.GET("/search", h.Search)
	g.POST("/add", h.Add)
	g.PUT("/update", h.Update)
	g.DELETE("/:id", h.Delete)
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(patients))
}

// ListMine returns the patients registered by the calling doctor.
func (h *Handler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	doctorID, err := strconv.ParseInt(auth.UserIDFromContext(ctx), 10, 64)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
	}
	patients, err := h.svc.ListByDoctor(ctx, doctorID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(patients))
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, err := strconv.ParseInt(c.Param("doctorId"), 10, 64)
	if err != nil || doctorID <= 0 {
		return c.JSON(http.StatusOK, response.ValidateFailed("医生ID不合法"))
	}
	patients, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(patients))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("患者ID不合法"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if p == nil {
		return c.JSON(http.StatusOK, response.Failed("患者不存在"))
	}
	return c.JSON(http.StatusOK, response.Success(p))
}

func (h *Handler) Search(c echo.Context) error {
	patients, err := h.svc.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	return c.JSON(http.StatusOK, response.Success(patients))
}

func (h *Handler) Add(c echo.Context) error {
	var p Patient
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
	return c.JSON(http.StatusOK, response.Failed("添加患者失败"))
}

func (h *Handler) Update(c echo.Context) error {
	var p Patient
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
	return c.JSON(http.StatusOK, response.Failed("修改患者失败"))
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, response.ValidateFailed("患者ID不合法"))
	}
	rows, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, response.FromError(err))
	}
	if rows > 0 {
		return c.JSON(http.StatusOK, response.Success(rows))
	}
	return c.JSON(http.StatusOK, response.Failed("删除患者失败"))
}
