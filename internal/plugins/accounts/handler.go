package accounts

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// Handler handles HTTP requests for the account directory. Handlers are
// thin: bind the request, call the service, render JSON.
type Handler struct {
	service AccountService
}

// NewHandler creates a new accounts handler.
func NewHandler(service AccountService) *Handler {
	return &Handler{service: service}
}

// RegisterStudent creates a student (POST /accounts/students).
func (h *Handler) RegisterStudent(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.RegisterStudent(c.Request().Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// RegisterTeacher creates a teacher and profile (POST /accounts/teachers).
func (h *Handler) RegisterTeacher(c echo.Context) error {
	var req RegisterTeacherRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.RegisterTeacher(c.Request().Context(), RegisterTeacherInput{
		RegisterInput: RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		},
		Profile: ProfileInput{
			Phone:         req.Phone,
			City:          req.City,
			Region:        req.Region,
			TeachingModes: req.TeachingModes,
			Languages:     req.Languages,
			HourlyRate:    req.HourlyRate,
			Headline:      req.Headline,
			Bio:           req.Bio,
			Experience:    req.Experience,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// Login returns a handler for POST /accounts/{students,teachers}/login.
// The role is fixed by the route, not by the request.
func (h *Handler) Login(role auth.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req LoginRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		result, err := h.service.Authenticate(c.Request().Context(), LoginInput{
			Email:    req.Email,
			Password: req.Password,
		}, role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, result)
	}
}

// List returns a handler for GET /accounts/{students,teachers}.
func (h *Handler) List(role auth.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := h.service.List(c.Request().Context(), role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetTeacher returns one teacher with profile (GET /accounts/teachers/:id).
// An id that cannot name an account is reported like a missing one.
func (h *Handler) GetTeacher(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperror.NewNotFound("teacher not found")
	}

	account, err := h.service.Get(c.Request().Context(), id, auth.RoleTeacher)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	return c.Validate(req)
}
