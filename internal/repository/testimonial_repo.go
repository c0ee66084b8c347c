package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nkapoor/interview-coach-api/internal/models"
)

type TestimonialRepository interface {
	Create(ctx context.Context, tm *models.Testimonial) error
	FindByID(ctx context.Context, id string) (*models.Testimonial, error)
	FindAll(ctx context.Context) ([]models.Testimonial, error)
	FindVisible(ctx context.Context) ([]models.Testimonial, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
	Delete(ctx context.Context, id string) error
}

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) Create(ctx context.Context, tm *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(tm).Error
}

func (r *testimonialRepository) FindByID(ctx context.Context, id string) (*models.Testimonial, error) {
	var tm models.Testimonial
	if err := r.db.WithContext(ctx).First(&tm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tm, nil
}

func (r *testimonialRepository) FindAll(ctx context.Context) ([]models.Testimonial, error) {
	var tms []models.Testimonial
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

func (r *testimonialRepository) FindVisible(ctx context.Context) ([]models.Testimonial, error) {
	var tms []models.Testimonial
	if err := r.db.WithContext(ctx).Where("is_visible = ?", true).Order("created_at DESC").Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

func (r *testimonialRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("is_visible", visible).Error
}

func (r *testimonialRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Testimonial{}, "id = ?", id).Error
}
