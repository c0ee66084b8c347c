package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/payment"
	"github.com/nkapoor/interview-coach-api/internal/service"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, amountInRupees int) (*payment.Order, error)
}

type PaymentHandler struct {
	svc     service.BookingService
	gateway OrderCreator
}

func NewPaymentHandler(svc service.BookingService, gateway OrderCreator) *PaymentHandler {
	return &PaymentHandler{svc: svc, gateway: gateway}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/payments/order", h.CreateOrder)
	e.POST("/api/v1/payments/mock", h.ConfirmMock)
	e.POST("/api/v1/payments/callback", h.Callback)
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.OrderResponse{Success: false, Message: "Invalid request body."})
	}

	order, err := h.gateway.CreateOrder(c.Request().Context(), req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Order: order})
}

// ConfirmMock drives the simulated checkout used when no real gateway is
// wired up.
func (h *PaymentHandler) ConfirmMock(c echo.Context) error {
	var req dto.MockPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Invalid request body."})
	}
	if req.BookingID == "" {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Booking id is required."})
	}

	booking, err := h.svc.ConfirmMockPayment(c.Request().Context(), req.BookingID, req.Status == "SUCCESS")
	if err != nil {
		return respondError(c, err)
	}

	if booking.Status == models.StatusPaymentFailed {
		return c.JSON(http.StatusOK, dto.ActionResponse{Success: false, Message: "Payment failed. Please try again."})
	}
	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Booking confirmed! Check your email for next steps."})
}

// Callback handles the signature-verified gateway redirect.
func (h *PaymentHandler) Callback(c echo.Context) error {
	var req dto.PaymentCallbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Payment confirmation not found. Please retry the checkout."})
	}
	if req.BookingID == "" {
		return c.JSON(http.StatusBadRequest, dto.ActionResponse{Success: false, Message: "Booking id is required."})
	}

	_, err := h.svc.ConfirmVerifiedPayment(
		c.Request().Context(),
		req.BookingID,
		req.RazorpayOrderID,
		req.RazorpayPaymentID,
		req.RazorpaySignature,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ActionResponse{Success: true, Message: "Booking confirmed! Check your email for next steps."})
}
