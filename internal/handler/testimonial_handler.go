package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/service"
)

type TestimonialHandler struct {
	svc service.TestimonialService
}

func NewTestimonialHandler(svc service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

func (h *TestimonialHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/testimonials", h.ListVisible)
}

// ListVisible returns the testimonials shown on the public site.
func (h *TestimonialHandler) ListVisible(c echo.Context) error {
	tms, err := h.svc.ListVisibleTestimonials(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tms)
}
