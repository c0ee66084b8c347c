package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nkapoor/interview-coach-api/internal/mailer"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/notifier"
	"github.com/nkapoor/interview-coach-api/internal/repository"
	"github.com/nkapoor/interview-coach-api/internal/storage"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotPending = errors.New("booking is not awaiting payment")
)

// ValidationError carries a user-facing message that is surfaced verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var validate = validator.New()

type UploadStore interface {
	Persist(src io.Reader, size int64, origName, tag string) (string, error)
}

type PaymentVerifier interface {
	VerifySignature(orderID, paymentID, signature string) error
}

type Notifier interface {
	Dispatch(job notifier.Job)
}

type Upload struct {
	Reader io.Reader
	Size   int64
	Name   string
}

type CreateBookingInput struct {
	Name        string `validate:"required,min=2"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required,min=8"`
	Course      string `validate:"required,min=2"`
	PackageType models.PackageType
	ScheduledAt string
	Resume      *Upload
	JD          *Upload
}

var bookingFieldMessages = map[string]string{
	"Name":   "Name is required",
	"Email":  "Valid email is required",
	"Phone":  "Phone number is required",
	"Course": "Course is required",
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, string, error)
	ConfirmMockPayment(ctx context.Context, bookingID string, success bool) (*models.Booking, error)
	ConfirmVerifiedPayment(ctx context.Context, bookingID, orderID, paymentID, signature string) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	store     UploadStore
	verifier  PaymentVerifier
	notifier  Notifier
	mockDelay time.Duration
}

func NewBookingService(repo repository.BookingRepository, store UploadStore, verifier PaymentVerifier, n Notifier, mockDelay time.Duration) BookingService {
	return &bookingService{
		repo:      repo,
		store:     store,
		verifier:  verifier,
		notifier:  n,
		mockDelay: mockDelay,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, string, error) {
	if !input.PackageType.Valid() {
		return nil, "", ValidationError("Invalid package selection.")
	}
	if err := validate.Struct(input); err != nil {
		return nil, "", ValidationError(firstFieldMessage(err, bookingFieldMessages))
	}

	// PDF-only purchases have no interview slot; everything else must book one
	scheduledAt := time.Now()
	if input.PackageType != models.PackagePDFOnly {
		parsed, err := parseScheduledAt(input.ScheduledAt)
		if err != nil {
			return nil, "", ValidationError("Please choose a valid date and time.")
		}
		scheduledAt = parsed

		if input.Resume == nil || input.JD == nil {
			return nil, "", ValidationError("Resume and JD are required for mock interview bookings.")
		}
	}

	var resumePath, jdPath *string
	if input.Resume != nil {
		path, err := s.persistUpload(input.Resume, "resume")
		if err != nil {
			return nil, "", err
		}
		resumePath = &path
	}
	if input.JD != nil {
		path, err := s.persistUpload(input.JD, "jd")
		if err != nil {
			return nil, "", err
		}
		jdPath = &path
	}

	// Price comes from the package table only; a tampered client amount is
	// ignored entirely.
	amount := models.PackagePrices[input.PackageType]

	booking := &models.Booking{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Course:      input.Course,
		PackageType: input.PackageType,
		ScheduledAt: &scheduledAt,
		Duration:    models.DefaultDurationMinutes,
		AmountPaid:  amount,
		Status:      models.StatusPending,
		ResumePath:  resumePath,
		JDPath:      jdPath,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, "", fmt.Errorf("create booking: %w", err)
	}

	redirect := fmt.Sprintf("/mock-payment?bookingId=%s&amount=%d&package=%s",
		booking.ID, amount, url.QueryEscape(models.PackageLabels[input.PackageType]))
	return booking, redirect, nil
}

// ConfirmMockPayment drives the simulated payment flow. The artificial delay
// models gateway latency and is not interruptible.
func (s *bookingService) ConfirmMockPayment(ctx context.Context, bookingID string, success bool) (*models.Booking, error) {
	if s.mockDelay > 0 {
		time.Sleep(s.mockDelay)
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != models.StatusPending {
		return nil, ErrBookingNotPending
	}

	if !success {
		booking.Status = models.StatusPaymentFailed
		if err := s.repo.UpdateStatus(ctx, booking.ID, models.StatusPaymentFailed); err != nil {
			return nil, fmt.Errorf("update booking status: %w", err)
		}
		return booking, nil
	}

	if booking.PaymentID == nil {
		paymentID := fmt.Sprintf("mock_%d", time.Now().UnixMilli())
		booking.PaymentID = &paymentID
	}
	if booking.OrderID == nil {
		orderID := "mock-" + booking.ID
		booking.OrderID = &orderID
	}
	return s.confirm(ctx, booking)
}

// ConfirmVerifiedPayment confirms a booking only after the gateway callback
// signature checks out.
func (s *bookingService) ConfirmVerifiedPayment(ctx context.Context, bookingID, orderID, paymentID, signature string) (*models.Booking, error) {
	if err := s.verifier.VerifySignature(orderID, paymentID, signature); err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != models.StatusPending {
		return nil, ErrBookingNotPending
	}

	booking.PaymentID = &paymentID
	booking.OrderID = &orderID
	return s.confirm(ctx, booking)
}

func (s *bookingService) confirm(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.Status = models.StatusConfirmed
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(notifier.Job{
			Kind:    notifier.KindBookingConfirmed,
			Payload: bookingPayload(booking),
		})
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.repo.FindAll(ctx)
}

func (s *bookingService) persistUpload(u *Upload, tag string) (string, error) {
	path, err := s.store.Persist(u.Reader, u.Size, u.Name, tag)
	if err != nil {
		var ue storage.UploadError
		if errors.As(err, &ue) {
			return "", ValidationError(ue.Error())
		}
		log.Printf("[Booking] failed to persist %s upload: %v", tag, err)
		return "", fmt.Errorf("persist %s: %w", tag, err)
	}
	return path, nil
}

func bookingPayload(b *models.Booking) mailer.BookingPayload {
	scheduledAt := time.Now()
	if b.ScheduledAt != nil {
		scheduledAt = *b.ScheduledAt
	}
	p := mailer.BookingPayload{
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		Course:      b.Course,
		ScheduledAt: scheduledAt,
		PackageType: b.PackageType,
		Status:      string(b.Status),
	}
	if b.MeetingLink != nil {
		p.MeetingLink = *b.MeetingLink
	}
	return p
}

// parseScheduledAt accepts the datetime formats browsers and API clients
// actually send.
func parseScheduledAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty schedule")
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", raw)
}

// firstFieldMessage reports the first violated rule's message, matching the
// fail-fast single-error surface of the form validation.
func firstFieldMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := messages[verrs[0].Field()]; ok {
			return msg
		}
	}
	return "Invalid input"
}
