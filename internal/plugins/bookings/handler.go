package bookings

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// Handler handles HTTP requests for bookings.
type Handler struct {
	service BookingService
}

// NewHandler creates a new bookings handler.
func NewHandler(service BookingService) *Handler {
	return &Handler{service: service}
}

// Create books a session (POST /bookings).
func (h *Handler) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.service.CreateBooking(c.Request().Context(), auth.GetIdentity(c), CreateBookingInput{
		TeacherID: req.TeacherID,
		Date:      req.Date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// List returns the caller's bookings (GET /bookings).
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.ListForCaller(c.Request().Context(), auth.GetIdentity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
