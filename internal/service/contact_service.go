package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkapoor/interview-coach-api/internal/mailer"
	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/notifier"
	"github.com/nkapoor/interview-coach-api/internal/repository"
)

var ErrMessageNotFound = errors.New("message not found")

type SubmitContactInput struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10"`
}

var contactFieldMessages = map[string]string{
	"Name":    "Name is required",
	"Email":   "Valid email is required",
	"Message": "Please share a bit more detail so we can help.",
}

type ContactService interface {
	SubmitContact(ctx context.Context, input SubmitContactInput) (*models.ContactMessage, error)
	ListMessages(ctx context.Context) ([]models.ContactMessage, error)
	UpdateMessageStatus(ctx context.Context, id string, status models.MessageStatus) error
	DeleteMessage(ctx context.Context, id string) error
}

type contactService struct {
	repo     repository.ContactRepository
	notifier Notifier
}

func NewContactService(repo repository.ContactRepository, n Notifier) ContactService {
	return &contactService{repo: repo, notifier: n}
}

func (s *contactService) SubmitContact(ctx context.Context, input SubmitContactInput) (*models.ContactMessage, error) {
	if err := validate.Struct(input); err != nil {
		return nil, ValidationError(firstFieldMessage(err, contactFieldMessages))
	}

	msg := &models.ContactMessage{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Status:  models.MessageUnread,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	// Best-effort heads-up to the admin; the stored message is the source of
	// truth either way.
	if s.notifier != nil {
		s.notifier.Dispatch(notifier.Job{
			Kind: notifier.KindContactReceived,
			Payload: mailer.BookingPayload{
				Name:        msg.Name,
				Email:       msg.Email,
				Phone:       "N/A",
				Course:      "Quick Guidance",
				ScheduledAt: time.Now(),
				PackageType: models.PackagePDFOnly,
			},
		})
	}
	return msg, nil
}

func (s *contactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.FindAll(ctx)
}

func (s *contactService) UpdateMessageStatus(ctx context.Context, id string, status models.MessageStatus) error {
	if !status.Valid() {
		return ValidationError("Invalid message status.")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrMessageNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *contactService) DeleteMessage(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrMessageNotFound
	}
	return s.repo.Delete(ctx, id)
}
