package repository

import (
	"context"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *models.SessionTemplate) error
	Update(ctx context.Context, template *models.SessionTemplate) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.SessionTemplate, error)
	FindAll(ctx context.Context) ([]models.SessionTemplate, error)
	ExistsByCourtAndStart(ctx context.Context, courtName, startTime string) (bool, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *models.SessionTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) Update(ctx context.Context, template *models.SessionTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SessionTemplate{}, id).Error
}

func (r *templateRepository) FindByID(ctx context.Context, id uint) (*models.SessionTemplate, error) {
	var template models.SessionTemplate
	if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAll(ctx context.Context) ([]models.SessionTemplate, error) {
	var templates []models.SessionTemplate
	err := r.db.WithContext(ctx).
		Order("court_name ASC, start_time ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) ExistsByCourtAndStart(ctx context.Context, courtName, startTime string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SessionTemplate{}).
		Where("court_name = ? AND start_time = ?", courtName, startTime).
		Count(&count).Error
	return count > 0, err
}
