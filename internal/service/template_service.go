package service

import (
	"context"
	"errors"
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("a template already exists for this court and start time")
	ErrInvalidStartTime = errors.New("start time must be in HH:MM form")
)

type TemplateService interface {
	ListTemplates(ctx context.Context) ([]models.SessionTemplate, error)
	CreateTemplate(ctx context.Context, template *models.SessionTemplate) error
	UpdateTemplate(ctx context.Context, id uint, template *models.SessionTemplate) (*models.SessionTemplate, error)
	DeleteTemplate(ctx context.Context, id uint) error
}

type templateService struct {
	templates repository.TemplateRepository
}

func NewTemplateService(templates repository.TemplateRepository) TemplateService {
	return &templateService{templates: templates}
}

func (s *templateService) ListTemplates(ctx context.Context) ([]models.SessionTemplate, error) {
	return s.templates.FindAll(ctx)
}

func (s *templateService) CreateTemplate(ctx context.Context, template *models.SessionTemplate) error {
	if _, err := time.Parse("15:04", template.StartTime); err != nil {
		return ErrInvalidStartTime
	}

	exists, err := s.templates.ExistsByCourtAndStart(ctx, template.CourtName, template.StartTime)
	if err != nil {
		return err
	}
	if exists {
		return ErrTemplateExists
	}
	return s.templates.Create(ctx, template)
}

func (s *templateService) UpdateTemplate(ctx context.Context, id uint, template *models.SessionTemplate) (*models.SessionTemplate, error) {
	if _, err := time.Parse("15:04", template.StartTime); err != nil {
		return nil, ErrInvalidStartTime
	}

	existing, err := s.templates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if existing.CourtName != template.CourtName || existing.StartTime != template.StartTime {
		exists, err := s.templates.ExistsByCourtAndStart(ctx, template.CourtName, template.StartTime)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrTemplateExists
		}
	}

	existing.CourtName = template.CourtName
	existing.StartTime = template.StartTime
	existing.Price = template.Price
	existing.IsActive = template.IsActive
	existing.Note = template.Note

	if err := s.templates.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, id uint) error {
	if _, err := s.templates.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return s.templates.Delete(ctx, id)
}
