package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/service"
)

type ContactHandler struct {
	svc service.ContactService
}

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/contact", h.SubmitContact)
}

func (h *ContactHandler) SubmitContact(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Invalid request body."})
	}

	_, err := h.svc.SubmitContact(c.Request().Context(), service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Thanks for reaching out! We will reply shortly."})
}
