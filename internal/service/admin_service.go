package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/notifier"
	"github.com/nkapoor/interview-coach-api/internal/repository"
)

const (
	minDurationMinutes = 15
	maxDurationMinutes = 180
)

type UpdateBookingInput struct {
	BookingID   string
	ScheduledAt string
	Duration    int
	Status      string
	MeetingLink string
}

// FileRemover deletes persisted uploads; paths outside the upload root are
// refused.
type FileRemover interface {
	Remove(path string) error
}

type AdminService interface {
	UpdateBooking(ctx context.Context, input UpdateBookingInput) (*models.Booking, error)
	DeleteBookingFile(ctx context.Context, bookingID, fileType string) (string, error)
	ResendQuestionBank(ctx context.Context, bookingID string) error
}

type adminService struct {
	repo     repository.BookingRepository
	files    FileRemover
	notifier Notifier
}

func NewAdminService(repo repository.BookingRepository, files FileRemover, n Notifier) AdminService {
	return &adminService{repo: repo, files: files, notifier: n}
}

func (s *adminService) UpdateBooking(ctx context.Context, input UpdateBookingInput) (*models.Booking, error) {
	if input.BookingID == "" {
		return nil, ValidationError("Booking id is required.")
	}

	scheduledAt, err := parseScheduledAt(input.ScheduledAt)
	if err != nil {
		return nil, ValidationError("Please choose a valid date and time.")
	}

	duration := input.Duration
	if duration == 0 {
		duration = models.DefaultDurationMinutes
	}
	if duration < minDurationMinutes || duration > maxDurationMinutes {
		return nil, ValidationError("Duration must be between 15 and 180 minutes.")
	}

	status := models.BookingStatus(input.Status)
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil, ValidationError("Invalid booking status.")
	}

	var meetingLink *string
	if input.MeetingLink != "" {
		parsed, err := url.Parse(input.MeetingLink)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, ValidationError("Meeting link must be a valid URL.")
		}
		meetingLink = &input.MeetingLink
	}

	booking, err := s.repo.FindByID(ctx, input.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	booking.ScheduledAt = &scheduledAt
	booking.Duration = duration
	booking.Status = status
	booking.MeetingLink = meetingLink

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(notifier.Job{
			Kind:    notifier.KindBookingUpdated,
			Payload: bookingPayload(booking),
		})
	}
	return booking, nil
}

// DeleteBookingFile removes an uploaded file and nulls its reference. The DB
// reference is cleared even when the filesystem delete fails, so the two can
// drift in that edge case.
func (s *adminService) DeleteBookingFile(ctx context.Context, bookingID, fileType string) (string, error) {
	if fileType != "resume" && fileType != "jd" {
		return "", ValidationError("Invalid file type.")
	}

	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return "", ErrBookingNotFound
	}

	targetPath := booking.ResumePath
	column := "resume_path"
	if fileType == "jd" {
		targetPath = booking.JDPath
		column = "jd_path"
	}

	if targetPath == nil {
		return "File already removed.", nil
	}

	if err := s.files.Remove(*targetPath); err != nil {
		log.Printf("[Admin] failed to delete %s file for booking %s: %v", fileType, bookingID, err)
	}

	if err := s.repo.ClearFilePath(ctx, bookingID, column); err != nil {
		return "", fmt.Errorf("clear file path: %w", err)
	}

	return fmt.Sprintf("%s file removed.", strings.ToUpper(fileType)), nil
}

// ResendQuestionBank re-triggers the notification with the booking's stored
// details. It never mutates the booking, so repeating it is safe.
func (s *adminService) ResendQuestionBank(ctx context.Context, bookingID string) error {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if !booking.PackageType.IncludesQuestionBank() {
		return ValidationError("This booking does not include the question bank.")
	}

	if s.notifier != nil {
		s.notifier.Dispatch(notifier.Job{
			Kind:    notifier.KindBookingResend,
			Payload: bookingPayload(booking),
		})
	}
	return nil
}
