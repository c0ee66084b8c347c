package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkapoor/interview-coach-api/internal/dto"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/service"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn        func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error)
	confirmMockFn   func(ctx context.Context, bookingID string, success bool) (*models.Booking, error)
	confirmPaidFn   func(ctx context.Context, bookingID, orderID, paymentID, signature string) (*models.Booking, error)
	getFn           func(ctx context.Context, id string) (*models.Booking, error)
	listFn          func(ctx context.Context) ([]models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error) {
	return m.createFn(ctx, input)
}
func (m *mockBookingService) ConfirmMockPayment(ctx context.Context, bookingID string, success bool) (*models.Booking, error) {
	return m.confirmMockFn(ctx, bookingID, success)
}
func (m *mockBookingService) ConfirmVerifiedPayment(ctx context.Context, bookingID, orderID, paymentID, signature string) (*models.Booking, error) {
	return m.confirmPaidFn(ctx, bookingID, orderID, paymentID, signature)
}
func (m *mockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return m.listFn(ctx)
}

func bookingForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".pdf")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// --- Tests ---

func TestCreateBooking_Handler_Success(t *testing.T) {
	var captured service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error) {
			captured = input
			return &models.Booking{ID: "b-1", Status: models.StatusPending},
				"/mock-payment?bookingId=b-1&amount=130&package=Ultimate+Bundle", nil
		},
	}

	body, contentType := bookingForm(t, map[string]string{
		"name":        "Asha Verma",
		"email":       "asha@example.com",
		"phone":       "9876543210",
		"course":      "Backend Engineering",
		"packageType": "BUNDLE",
		"scheduledAt": "2026-09-12T10:30",
	}, map[string][]byte{
		"resume": []byte("resume bytes"),
		"jd":     []byte("jd bytes"),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewBookingHandler(svc)
	err := h.CreateBooking(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ActionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.URL, "/mock-payment?bookingId=b-1")

	assert.Equal(t, "Asha Verma", captured.Name)
	assert.Equal(t, models.PackageBundle, captured.PackageType)
	require.NotNil(t, captured.Resume)
	require.NotNil(t, captured.JD)
	assert.Equal(t, int64(len("resume bytes")), captured.Resume.Size)
	assert.Equal(t, "resume.pdf", captured.Resume.Name)
}

func TestCreateBooking_Handler_DefaultsPackage(t *testing.T) {
	var captured service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error) {
			captured = input
			return &models.Booking{ID: "b-2"}, "/mock-payment?bookingId=b-2", nil
		},
	}

	body, contentType := bookingForm(t, map[string]string{
		"name":        "Asha Verma",
		"email":       "asha@example.com",
		"phone":       "9876543210",
		"course":      "Backend Engineering",
		"scheduledAt": "2026-09-12T10:30",
	}, map[string][]byte{"resume": []byte("r"), "jd": []byte("j")})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	h := NewBookingHandler(svc)
	assert.NoError(t, h.CreateBooking(e.NewContext(req, rec)))
	assert.Equal(t, models.PackageMockInterview, captured.PackageType)
}

func TestCreateBooking_Handler_MissingFilesPassedAsNil(t *testing.T) {
	var captured service.CreateBookingInput
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error) {
			captured = input
			return nil, "", service.ValidationError("Resume and JD are required for mock interview bookings.")
		},
	}

	body, contentType := bookingForm(t, map[string]string{
		"name":        "Asha Verma",
		"email":       "asha@example.com",
		"phone":       "9876543210",
		"course":      "Backend Engineering",
		"packageType": "MOCK_INTERVIEW",
		"scheduledAt": "2026-09-12T10:30",
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	h := NewBookingHandler(svc)
	assert.NoError(t, h.CreateBooking(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, captured.Resume)
	assert.Nil(t, captured.JD)

	var resp dto.ActionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Resume and JD are required for mock interview bookings.", resp.Message)
}

func TestCreateBooking_Handler_ValidationMessageSurfaced(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, string, error) {
			return nil, "", service.ValidationError("Valid email is required")
		},
	}

	body, contentType := bookingForm(t, map[string]string{
		"name":  "Asha Verma",
		"email": "not-an-email",
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	h := NewBookingHandler(svc)
	assert.NoError(t, h.CreateBooking(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ActionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Valid email is required", resp.Message)
}
