package repository

import (
	"context"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository interface {
	FindByKey(ctx context.Context, key string) (*models.SystemConfig, error)
	FindAll(ctx context.Context) ([]models.SystemConfig, error)
	Save(ctx context.Context, config *models.SystemConfig) error
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	var config models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("config_key = ?", key).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *configRepository) FindAll(ctx context.Context) ([]models.SystemConfig, error) {
	var configs []models.SystemConfig
	if err := r.db.WithContext(ctx).Order("config_key ASC").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Save upserts by key so admin edits work whether or not the key exists.
func (r *configRepository) Save(ctx context.Context, config *models.SystemConfig) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "description"}),
	}).Create(config).Error
}
