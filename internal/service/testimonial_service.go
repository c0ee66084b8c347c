package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkapoor/interview-coach-api/internal/models"
	"github.com/nkapoor/interview-coach-api/internal/repository"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type CreateTestimonialInput struct {
	Name    string `validate:"required,min=2"`
	Role    string `validate:"required,min=2"`
	Content string `validate:"required,min=10"`
	Rating  int
}

var testimonialFieldMessages = map[string]string{
	"Name":    "Name is required",
	"Role":    "Role is required",
	"Content": "Testimonial content must be at least 10 characters",
}

type TestimonialService interface {
	CreateTestimonial(ctx context.Context, input CreateTestimonialInput) (*models.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListVisibleTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ToggleVisibility(ctx context.Context, id string) (*models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
}

type testimonialService struct {
	repo repository.TestimonialRepository
}

func NewTestimonialService(repo repository.TestimonialRepository) TestimonialService {
	return &testimonialService{repo: repo}
}

func (s *testimonialService) CreateTestimonial(ctx context.Context, input CreateTestimonialInput) (*models.Testimonial, error) {
	if err := validate.Struct(input); err != nil {
		return nil, ValidationError(firstFieldMessage(err, testimonialFieldMessages))
	}

	rating := input.Rating
	if rating == 0 {
		rating = 5
	}
	if rating < 1 || rating > 5 {
		return nil, ValidationError("Rating must be between 1 and 5.")
	}

	tm := &models.Testimonial{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Role:      input.Role,
		Content:   input.Content,
		Rating:    rating,
		IsVisible: true,
	}
	if err := s.repo.Create(ctx, tm); err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return tm, nil
}

func (s *testimonialService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.repo.FindAll(ctx)
}

func (s *testimonialService) ListVisibleTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return s.repo.FindVisible(ctx)
}

func (s *testimonialService) ToggleVisibility(ctx context.Context, id string) (*models.Testimonial, error) {
	tm, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTestimonialNotFound
	}
	if err := s.repo.SetVisibility(ctx, id, !tm.IsVisible); err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}
	tm.IsVisible = !tm.IsVisible
	return tm, nil
}

func (s *testimonialService) DeleteTestimonial(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrTestimonialNotFound
	}
	return s.repo.Delete(ctx, id)
}
