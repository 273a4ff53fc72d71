package suggestions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// Handler handles HTTP requests for suggestions.
type Handler struct {
	service SuggestionService
}

// NewHandler creates a new suggestions handler.
func NewHandler(service SuggestionService) *Handler {
	return &Handler{service: service}
}

// ClassDescription drafts a description (POST /suggestions/class-description).
func (h *Handler) ClassDescription(c echo.Context) error {
	var req ClassDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	suggestion, err := h.service.ClassDescription(c.Request().Context(), auth.GetIdentity(c), ClassDescriptionInput{
		Title:    req.Title,
		Subject:  req.Subject,
		Modality: req.Modality,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suggestion)
}
