package dto

import (
	"time"

	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/payment"
)

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}

type OrderResponse struct {
	Success bool           `json:"success"`
	Order   *payment.Order `json:"order,omitempty"`
	Message string         `json:"message,omitempty"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Course      string               `json:"course"`
	PackageType models.PackageType   `json:"package_type"`
	ScheduledAt *time.Time           `json:"scheduled_at,omitempty"`
	Duration    int                  `json:"duration"`
	AmountPaid  int                  `json:"amount_paid"`
	Status      models.BookingStatus `json:"status"`
	PaymentID   *string              `json:"payment_id,omitempty"`
	OrderID     *string              `json:"order_id,omitempty"`
	ResumePath  *string              `json:"resume_path,omitempty"`
	JDPath      *string              `json:"jd_path,omitempty"`
	MeetingLink *string              `json:"meeting_link,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Course:      b.Course,
		PackageType: b.PackageType,
		ScheduledAt: b.ScheduledAt,
		Duration:    b.Duration,
		AmountPaid:  b.AmountPaid,
		Status:      b.Status,
		PaymentID:   b.PaymentID,
		OrderID:     b.OrderID,
		ResumePath:  b.ResumePath,
		JDPath:      b.JDPath,
		MeetingLink: b.MeetingLink,
		CreatedAt:   b.CreatedAt,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
