package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/service"
	"github.com/nkapoor/interview-coach-api/internal/storage"
)

type AdminHandler struct {
	bookings     service.BookingService
	admin        service.AdminService
	contacts     service.ContactService
	testimonials service.TestimonialService
	store        *storage.Store
}

func NewAdminHandler(
	bookings service.BookingService,
	admin service.AdminService,
	contacts service.ContactService,
	testimonials service.TestimonialService,
	store *storage.Store,
) *AdminHandler {
	return &AdminHandler{
		bookings:     bookings,
		admin:        admin,
		contacts:     contacts,
		testimonials: testimonials,
		store:        store,
	}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bookings", h.ListBookings)
	g.PUT("/bookings/:id", h.UpdateBooking)
	g.DELETE("/bookings/:id/files/:kind", h.DeleteBookingFile)
	g.POST("/bookings/:id/resend", h.ResendQuestionBank)

	g.GET("/messages", h.ListMessages)
	g.PATCH("/messages/:id", h.UpdateMessageStatus)
	g.DELETE("/messages/:id", h.DeleteMessage)

	g.GET("/testimonials", h.ListTestimonials)
	g.POST("/testimonials", h.CreateTestimonial)
	g.PATCH("/testimonials/:id/visibility", h.ToggleTestimonial)
	g.DELETE("/testimonials/:id", h.DeleteTestimonial)

	g.GET("/download", h.Download)
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.bookings.ListBookings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Invalid request body."})
	}

	_, err := h.admin.UpdateBooking(c.Request().Context(), service.UpdateBookingInput{
		BookingID:   c.Param("id"),
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		Status:      req.Status,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Booking updated successfully."})
}

func (h *AdminHandler) DeleteBookingFile(c echo.Context) error {
	msg, err := h.admin.DeleteBookingFile(c.Request().Context(), c.Param("id"), c.Param("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: msg})
}

func (h *AdminHandler) ResendQuestionBank(c echo.Context) error {
	if err := h.admin.ResendQuestionBank(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Question bank sent successfully."})
}

func (h *AdminHandler) ListMessages(c echo.Context) error {
	msgs, err := h.contacts.ListMessages(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *AdminHandler) UpdateMessageStatus(c echo.Context) error {
	var req dto.UpdateMessageStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Invalid request body."})
	}
	if err := h.contacts.UpdateMessageStatus(c.Request().Context(), c.Param("id"), models.MessageStatus(req.Status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Message updated."})
}

func (h *AdminHandler) DeleteMessage(c echo.Context) error {
	if err := h.contacts.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Message deleted."})
}

func (h *AdminHandler) ListTestimonials(c echo.Context) error {
	tms, err := h.testimonials.ListTestimonials(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tms)
}

func (h *AdminHandler) CreateTestimonial(c echo.Context) error {
	var req dto.CreateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Invalid request body."})
	}

	_, err := h.testimonials.CreateTestimonial(c.Request().Context(), service.CreateTestimonialInput{
		Name:    req.Name,
		Role:    req.Role,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Testimonial added successfully."})
}

func (h *AdminHandler) ToggleTestimonial(c echo.Context) error {
	_, err := h.testimonials.ToggleVisibility(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Testimonial visibility updated."})
}

func (h *AdminHandler) DeleteTestimonial(c echo.Context) error {
	if err := h.testimonials.DeleteTestimonial(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Testimonial deleted."})
}

// Download streams an uploaded file back to the admin. The file parameter is
// reduced to its basename before resolving, so traversal attempts never leave
// the upload root.
func (h *AdminHandler) Download(c echo.Context) error {
	fileParam := c.QueryParam("file")
	if fileParam == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file parameter."})
	}

	path, err := h.store.Resolve(fileParam)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "File not found."})
		}
		return respondError(c, err)
	}

	return c.Attachment(path, filepath.Base(path))
}
