package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// Handler handles HTTP requests for the catalog. Handlers are thin: bind
// the request, call the service, render JSON.
type Handler struct {
	service CatalogService
}

// NewHandler creates a new catalog handler.
func NewHandler(service CatalogService) *Handler {
	return &Handler{service: service}
}

// Search returns the filtered catalog (GET /catalog). An unparseable take
// falls back to the default page size.
func (h *Handler) Search(c echo.Context) error {
	take, _ := strconv.Atoi(c.QueryParam("take"))

	classes, err := h.service.Search(c.Request().Context(), Filter{
		Query:    c.QueryParam("q"),
		City:     c.QueryParam("city"),
		Modality: c.QueryParam("modality"),
		Take:     take,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Create publishes a class for the calling teacher (POST /classes).
func (h *Handler) Create(c echo.Context) error {
	var req CreateClassRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	class, err := h.service.CreateClass(c.Request().Context(), auth.GetIdentity(c), CreateClassInput{
		Title:           req.Title,
		Subject:         req.Subject,
		Description:     req.Description,
		Modality:        req.Modality,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		StartTime:       req.StartTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, class)
}

// Mine lists the calling teacher's classes (GET /classes/mine).
func (h *Handler) Mine(c echo.Context) error {
	classes, err := h.service.ListOwnClasses(c.Request().Context(), auth.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}
