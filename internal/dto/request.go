package dto

type CreateOrderRequest struct {
	Amount int `json:"amount"`
}

type MockPaymentRequest struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"` // SUCCESS or FAILURE
}

type PaymentCallbackRequest struct {
	BookingID         string `json:"booking_id" form:"booking_id"`
	RazorpayOrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature" form:"razorpay_signature"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

type UpdateBookingRequest struct {
	ScheduledAt string `json:"scheduled_at" form:"scheduled_at"`
	Duration    int    `json:"duration" form:"duration"`
	Status      string `json:"status" form:"status"`
	MeetingLink string `json:"meeting_link" form:"meeting_link"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}

type CreateTestimonialRequest struct {
	Name    string `json:"name" form:"name"`
	Role    string `json:"role" form:"role"`
	Content string `json:"content" form:"content"`
	Rating  int    `json:"rating" form:"rating"`
}
