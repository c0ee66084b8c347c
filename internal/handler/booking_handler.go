package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings", h.CreateBooking)
}

// CreateBooking accepts the multipart booking form and, on success, returns
// the redirect target for the payment step.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	input := service.CreateBookingInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		Course:      c.FormValue("course"),
		PackageType: models.PackageType(c.FormValue("packageType")),
		ScheduledAt: c.FormValue("scheduledAt"),
	}
	if input.PackageType == "" {
		input.PackageType = models.PackageMockInterview
	}

	resume, resumeClose, err := openFormFile(c, "resume")
	if err != nil {
		return respondError(c, err)
	}
	if resumeClose != nil {
		defer resumeClose()
	}
	jd, jdClose, err := openFormFile(c, "jd")
	if err != nil {
		return respondError(c, err)
	}
	if jdClose != nil {
		defer jdClose()
	}
	input.Resume = resume
	input.JD = jd

	_, redirect, err := h.svc.CreateBooking(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, URL: redirect})
}

// openFormFile returns the named upload, or nil when the field is absent.
func openFormFile(c echo.Context, field string) (*service.Upload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return uploadFromHeader(fileHeader)
}

func uploadFromHeader(fh *multipart.FileHeader) (*service.Upload, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &service.Upload{
		Reader: src,
		Size:   fh.Size,
		Name:   fh.Filename,
	}
	return upload, func() { src.Close() }, nil
}
