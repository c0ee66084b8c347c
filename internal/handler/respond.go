package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/payment"
	"github.com/nkapoor/interview-coach-api/internal/service"
)

// respondError maps service errors onto the {success, message} envelope.
// Validation and verification failures keep their user-facing message;
// everything else becomes a generic retry-later response.
func respondError(c echo.Context, err error) error {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: ve.Error()})
	case errors.Is(err, service.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, dto.ActionResponse{Success: false, Message: "Booking not found."})
	case errors.Is(err, service.ErrMessageNotFound):
		return c.JSON(http.StatusNotFound, dto.ActionResponse{Success: false, Message: "Message not found."})
	case errors.Is(err, service.ErrTestimonialNotFound):
		return c.JSON(http.StatusNotFound, dto.ActionResponse{Success: false, Message: "Testimonial not found."})
	case errors.Is(err, service.ErrBookingNotPending):
		return c.JSON(http.StatusConflict, dto.ActionResponse{Success: false, Message: "This booking is not awaiting payment."})
	case errors.Is(err, payment.ErrVerificationFailed):
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: err.Error()})
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return c.JSON(http.StatusBadGateway, dto.ActionResponse{Success: false, Message: err.Error()})
	case errors.Is(err, payment.ErrGatewayNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, dto.ActionResponse{Success: false, Message: "Payment verification is unavailable. Contact support."})
	default:
		log.Printf("[HTTP] %s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, dto.ActionResponse{Success: false, Message: "Something went wrong."})
	}
}
