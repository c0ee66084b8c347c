package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/notifier"
	"github.com/nkapoor/interview-coach-api/internal/payment"
	"github.com/nkapoor/interview-coach-api/internal/storage"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn        func(ctx context.Context, b *models.Booking) error
	findByIDFn      func(ctx context.Context, id string) (*models.Booking, error)
	findAllFn       func(ctx context.Context) ([]models.Booking, error)
	updateFn        func(ctx context.Context, b *models.Booking) error
	updateStatusFn  func(ctx context.Context, id string, status models.BookingStatus) error
	clearFilePathFn func(ctx context.Context, id, column string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.createFn(ctx, b)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return m.findAllFn(ctx)
}
func (m *mockBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	return m.updateFn(ctx, b)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return m.updateStatusFn(ctx, id, status)
}
func (m *mockBookingRepo) ClearFilePath(ctx context.Context, id, column string) error {
	return m.clearFilePathFn(ctx, id, column)
}

// --- Mock UploadStore ---

type mockStore struct {
	persistFn func(src io.Reader, size int64, origName, tag string) (string, error)
}

func (m *mockStore) Persist(src io.Reader, size int64, origName, tag string) (string, error) {
	if m.persistFn != nil {
		return m.persistFn(src, size, origName, tag)
	}
	return "/data/uploads/" + tag + "-test.pdf", nil
}

// --- Mock PaymentVerifier ---

type mockVerifier struct {
	verifyFn func(orderID, paymentID, signature string) error
}

func (m *mockVerifier) VerifySignature(orderID, paymentID, signature string) error {
	if m.verifyFn != nil {
		return m.verifyFn(orderID, paymentID, signature)
	}
	return nil
}

// --- Mock Notifier ---

type mockNotifier struct {
	jobs []notifier.Job
}

func (m *mockNotifier) Dispatch(job notifier.Job) {
	m.jobs = append(m.jobs, job)
}

// --- Helpers ---

func testUpload(name string) *Upload {
	content := "file content"
	return &Upload{Reader: strings.NewReader(content), Size: int64(len(content)), Name: name}
}

func validBundleInput() CreateBookingInput {
	return CreateBookingInput{
		Name:        "Asha Rao",
		Email:       "asha.rao@example.com",
		Phone:       "9876543210",
		Course:      "HR Fundamentals",
		PackageType: models.PackageBundle,
		ScheduledAt: time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		Resume:      testUpload("resume.pdf"),
		JD:          testUpload("jd.pdf"),
	}
}

func newService(repo *mockBookingRepo, store *mockStore, verifier *mockVerifier, n *mockNotifier) BookingService {
	return NewBookingService(repo, store, verifier, n, 0)
}

// --- CreateBooking ---

func TestCreateBooking_BundleSuccess(t *testing.T) {
	var created *models.Booking
	repo := &mockBookingRepo{
		createFn: func(ctx context.Context, b *models.Booking) error {
			created = b
			return nil
		},
	}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	booking, redirect, err := svc.CreateBooking(context.Background(), validBundleInput())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, 130, booking.AmountPaid)
	assert.Equal(t, models.DefaultDurationMinutes, booking.Duration)
	assert.NotEmpty(t, booking.ID)
	assert.NotNil(t, booking.ResumePath)
	assert.NotNil(t, booking.JDPath)
	assert.Contains(t, redirect, "/mock-payment?bookingId="+booking.ID)
	assert.Contains(t, redirect, "amount=130")
}

func TestCreateBooking_AmountDerivedFromPackageTable(t *testing.T) {
	repo := &mockBookingRepo{createFn: func(ctx context.Context, b *models.Booking) error { return nil }}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	input := validBundleInput()
	input.PackageType = models.PackagePDFOnly
	input.Resume = nil
	input.JD = nil
	input.ScheduledAt = ""

	booking, _, err := svc.CreateBooking(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 50, booking.AmountPaid)
}

func TestCreateBooking_ScheduleRequiredUnlessPDFOnly(t *testing.T) {
	repo := &mockBookingRepo{createFn: func(ctx context.Context, b *models.Booking) error { return nil }}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	for _, pkg := range []models.PackageType{models.PackageMockInterview, models.PackageBundle} {
		input := validBundleInput()
		input.PackageType = pkg
		input.ScheduledAt = ""

		_, _, err := svc.CreateBooking(context.Background(), input)
		assert.EqualError(t, err, "Please choose a valid date and time.", "package %s", pkg)
	}

	input := validBundleInput()
	input.PackageType = models.PackagePDFOnly
	input.ScheduledAt = ""
	input.Resume = nil
	input.JD = nil

	booking, _, err := svc.CreateBooking(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, booking.ScheduledAt)
}

func TestCreateBooking_FilesRequiredUnlessPDFOnly(t *testing.T) {
	repo := &mockBookingRepo{createFn: func(ctx context.Context, b *models.Booking) error { return nil }}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	for _, pkg := range []models.PackageType{models.PackageMockInterview, models.PackageBundle} {
		input := validBundleInput()
		input.PackageType = pkg
		input.Resume = nil

		_, _, err := svc.CreateBooking(context.Background(), input)
		assert.EqualError(t, err, "Resume and JD are required for mock interview bookings.", "package %s", pkg)
	}
}

func TestCreateBooking_FirstViolationReportedVerbatim(t *testing.T) {
	repo := &mockBookingRepo{createFn: func(ctx context.Context, b *models.Booking) error { return nil }}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		want   string
	}{
		{"short name", func(i *CreateBookingInput) { i.Name = "A" }, "Name is required"},
		{"bad email", func(i *CreateBookingInput) { i.Email = "not-an-email" }, "Valid email is required"},
		{"short phone", func(i *CreateBookingInput) { i.Phone = "1234" }, "Phone number is required"},
		{"short course", func(i *CreateBookingInput) { i.Course = "X" }, "Course is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validBundleInput()
			tc.mutate(&input)

			_, _, err := svc.CreateBooking(context.Background(), input)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestCreateBooking_InvalidPackageRejected(t *testing.T) {
	svc := newService(&mockBookingRepo{}, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	input := validBundleInput()
	input.PackageType = "PREMIUM_PLUS"

	_, _, err := svc.CreateBooking(context.Background(), input)
	assert.EqualError(t, err, "Invalid package selection.")
}

func TestCreateBooking_UploadRejectionSurfacedVerbatim(t *testing.T) {
	repo := &mockBookingRepo{createFn: func(ctx context.Context, b *models.Booking) error { return nil }}
	store := &mockStore{
		persistFn: func(src io.Reader, size int64, origName, tag string) (string, error) {
			return "", storage.UploadError("Each file must be 5 MB or less. Please compress your resume file.")
		},
	}
	svc := newService(repo, store, &mockVerifier{}, &mockNotifier{})

	_, _, err := svc.CreateBooking(context.Background(), validBundleInput())

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "5 MB or less")
}

// --- ConfirmMockPayment ---

func pendingBooking(id string) *models.Booking {
	scheduled := time.Now().Add(48 * time.Hour)
	return &models.Booking{
		ID:          id,
		Name:        "Asha Rao",
		Email:       "asha.rao@example.com",
		Phone:       "9876543210",
		Course:      "HR Fundamentals",
		PackageType: models.PackageBundle,
		ScheduledAt: &scheduled,
		Duration:    45,
		AmountPaid:  130,
		Status:      models.StatusPending,
	}
}

func TestConfirmMockPayment_SuccessTransitionsToConfirmed(t *testing.T) {
	booking := pendingBooking("b1")
	var updated *models.Booking
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) { return booking, nil },
		updateFn: func(ctx context.Context, b *models.Booking) error {
			updated = b
			return nil
		},
	}
	n := &mockNotifier{}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, n)

	result, err := svc.ConfirmMockPayment(context.Background(), "b1", true)

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, result.Status)
	require.NotNil(t, updated)
	require.NotNil(t, result.PaymentID)
	assert.True(t, strings.HasPrefix(*result.PaymentID, "mock_"))
	require.NotNil(t, result.OrderID)
	assert.Equal(t, "mock-b1", *result.OrderID)

	require.Len(t, n.jobs, 1)
	assert.Equal(t, notifier.KindBookingConfirmed, n.jobs[0].Kind)
	assert.Equal(t, "Asha Rao", n.jobs[0].Payload.Name)
}

func TestConfirmMockPayment_FailureTransitionsToPaymentFailed(t *testing.T) {
	booking := pendingBooking("b1")
	var storedStatus models.BookingStatus
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) { return booking, nil },
		updateStatusFn: func(ctx context.Context, id string, status models.BookingStatus) error {
			storedStatus = status
			return nil
		},
	}
	n := &mockNotifier{}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, n)

	result, err := svc.ConfirmMockPayment(context.Background(), "b1", false)

	require.NoError(t, err)
	assert.Equal(t, models.StatusPaymentFailed, result.Status)
	assert.Equal(t, models.StatusPaymentFailed, storedStatus)
	assert.Empty(t, n.jobs, "failed payments must not trigger notifications")
}

func TestConfirmMockPayment_TerminalStatesNotReentered(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.StatusConfirmed, models.StatusCompleted,
		models.StatusCancelled, models.StatusPaymentFailed,
	} {
		booking := pendingBooking("b1")
		booking.Status = status
		repo := &mockBookingRepo{
			findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) { return booking, nil },
		}
		svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

		_, err := svc.ConfirmMockPayment(context.Background(), "b1", true)
		assert.ErrorIs(t, err, ErrBookingNotPending, "status %s", status)
	}
}

func TestConfirmMockPayment_UnknownBooking(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, errors.New("record not found")
		},
	}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, &mockNotifier{})

	_, err := svc.ConfirmMockPayment(context.Background(), "nope", true)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// --- ConfirmVerifiedPayment ---

func TestConfirmVerifiedPayment_StoresGatewayReferences(t *testing.T) {
	booking := pendingBooking("b1")
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) { return booking, nil },
		updateFn:   func(ctx context.Context, b *models.Booking) error { return nil },
	}
	n := &mockNotifier{}
	svc := newService(repo, &mockStore{}, &mockVerifier{}, n)

	result, err := svc.ConfirmVerifiedPayment(context.Background(), "b1", "order_abc", "pay_xyz", "sig")

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, result.Status)
	assert.Equal(t, "pay_xyz", *result.PaymentID)
	assert.Equal(t, "order_abc", *result.OrderID)
	assert.Len(t, n.jobs, 1)
}

func TestConfirmVerifiedPayment_BadSignatureBlocksConfirmation(t *testing.T) {
	findCalled := false
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id string) (*models.Booking, error) {
			findCalled = true
			return pendingBooking(id), nil
		},
	}
	verifier := &mockVerifier{
		verifyFn: func(orderID, paymentID, signature string) error {
			return payment.ErrVerificationFailed
		},
	}
	n := &mockNotifier{}
	svc := newService(repo, &mockStore{}, verifier, n)

	_, err := svc.ConfirmVerifiedPayment(context.Background(), "b1", "order_abc", "pay_xyz", "bad")

	assert.ErrorIs(t, err, payment.ErrVerificationFailed)
	assert.False(t, findCalled, "verification must happen before any booking lookup")
	assert.Empty(t, n.jobs)
}
