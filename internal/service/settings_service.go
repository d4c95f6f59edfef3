package service

import (
	"context"
	"strconv"

	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/repository"
)

// Configuration keys and their fallback defaults. Values live in the
// system_config table as strings; the typed accessors below parse them and
// fall back when a key is absent or malformed.
const (
	KeyCancelTimeLimit  = "cancel_time_limit"
	KeyMaxOrderSessions = "max_order_sessions"
	KeyBusinessHours    = "business_hours"
	KeyVenueName        = "venue_name"

	DefaultCancelTimeLimit  = 4
	DefaultMaxOrderSessions = 3
)

type SettingsService interface {
	CancelTimeLimit(ctx context.Context) int
	MaxOrderSessions(ctx context.Context) int
	BusinessHours(ctx context.Context) string
	All(ctx context.Context) (map[string]string, error)
	AllEntries(ctx context.Context) ([]models.SystemConfig, error)
	Update(ctx context.Context, key, value string) error
	UpdateAll(ctx context.Context, configs map[string]string) error
}

type settingsService struct {
	configs repository.ConfigRepository
}

func NewSettingsService(configs repository.ConfigRepository) SettingsService {
	return &settingsService{configs: configs}
}

func (s *settingsService) intValue(ctx context.Context, key string, fallback int) int {
	config, err := s.configs.FindByKey(ctx, key)
	if err != nil {
		return fallback
	}
	v, err := strconv.Atoi(config.ConfigValue)
	if err != nil {
		return fallback
	}
	return v
}

// CancelTimeLimit is the minimum number of whole hours before a session's
// start time at which an order containing it may still be cancelled.
func (s *settingsService) CancelTimeLimit(ctx context.Context) int {
	return s.intValue(ctx, KeyCancelTimeLimit, DefaultCancelTimeLimit)
}

func (s *settingsService) MaxOrderSessions(ctx context.Context) int {
	return s.intValue(ctx, KeyMaxOrderSessions, DefaultMaxOrderSessions)
}

// BusinessHours is informational only; it is shown to users but not
// enforced against generation or booking.
func (s *settingsService) BusinessHours(ctx context.Context) string {
	config, err := s.configs.FindByKey(ctx, KeyBusinessHours)
	if err != nil {
		return ""
	}
	return config.ConfigValue
}

func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	entries, err := s.configs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.ConfigKey] = e.ConfigValue
	}
	return out, nil
}

func (s *settingsService) AllEntries(ctx context.Context) ([]models.SystemConfig, error) {
	return s.configs.FindAll(ctx)
}

func (s *settingsService) Update(ctx context.Context, key, value string) error {
	description := ""
	if existing, err := s.configs.FindByKey(ctx, key); err == nil {
		description = existing.Description
	}
	if description == "" {
		description = defaultDescription(key)
	}

	return s.configs.Save(ctx, &models.SystemConfig{
		ConfigKey:   key,
		ConfigValue: value,
		Description: description,
	})
}

func (s *settingsService) UpdateAll(ctx context.Context, configs map[string]string) error {
	for key, value := range configs {
		if err := s.Update(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func defaultDescription(key string) string {
	switch key {
	case KeyVenueName:
		return "venue name"
	case KeyMaxOrderSessions:
		return "maximum sessions per order"
	case KeyCancelTimeLimit:
		return "cancellation cutoff (hours)"
	case KeyBusinessHours:
		return "business hours"
	default:
		return "system configuration"
	}
}
