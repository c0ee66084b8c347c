package models

import "time"

type BookingStatus string

const (
	StatusPending       BookingStatus = "PENDING"
	StatusConfirmed     BookingStatus = "CONFIRMED"
	StatusCompleted     BookingStatus = "COMPLETED"
	StatusCancelled     BookingStatus = "CANCELLED"
	StatusPaymentFailed BookingStatus = "PAYMENT_FAILED"
)

type PackageType string

const (
	PackageMockInterview PackageType = "MOCK_INTERVIEW"
	PackagePDFOnly       PackageType = "PDF_ONLY"
	PackageBundle        PackageType = "BUNDLE"
)

// Package prices in rupees. The charged amount is always derived from this
// table, never taken from client input.
var PackagePrices = map[PackageType]int{
	PackageMockInterview: 100,
	PackagePDFOnly:       50,
	PackageBundle:        130,
}

var PackageLabels = map[PackageType]string{
	PackageMockInterview: "Mock Interview Only",
	PackagePDFOnly:       "Question Bank PDF Only",
	PackageBundle:        "Ultimate Bundle",
}

func (p PackageType) Valid() bool {
	_, ok := PackagePrices[p]
	return ok
}

// IncludesQuestionBank reports whether the package entitles the customer to
// the question-bank PDF attachment.
func (p PackageType) IncludesQuestionBank() bool {
	return p == PackagePDFOnly || p == PackageBundle
}

const DefaultDurationMinutes = 45

type Booking struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Email       string        `gorm:"not null" json:"email"`
	Phone       string        `gorm:"not null" json:"phone"`
	Course      string        `gorm:"not null" json:"course"`
	PackageType PackageType   `gorm:"type:varchar(20);not null" json:"package_type"`
	ScheduledAt *time.Time    `json:"scheduled_at,omitempty"`
	Duration    int           `gorm:"not null;default:45" json:"duration"`
	AmountPaid  int           `gorm:"not null" json:"amount_paid"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaymentID   *string       `json:"payment_id,omitempty"`
	OrderID     *string       `json:"order_id,omitempty"`
	ResumePath  *string       `json:"resume_path,omitempty"`
	JDPath      *string       `json:"jd_path,omitempty"`
	MeetingLink *string       `json:"meeting_link,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
