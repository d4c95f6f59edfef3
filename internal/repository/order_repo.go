package repository

import (
	"context"
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// WithTx runs fn inside a single database transaction. Every order
	// mutation (create, cancel, verify) is one atomic unit.
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	CreateSessions(ctx context.Context, tx *gorm.DB, sessions []models.OrderSession) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindSessionsByOrderID(ctx context.Context, orderID uint) ([]models.OrderSession, error)
	HasPendingOrder(ctx context.Context, tx *gorm.DB, userID uint) (bool, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uint, verifyTime time.Time) error
	MarkCancelled(ctx context.Context, tx *gorm.DB, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) CreateSessions(ctx context.Context, tx *gorm.DB, sessions []models.OrderSession) error {
	return tx.WithContext(ctx).Create(&sessions).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row so a concurrent verify and cancel
// of the same order serialize instead of both passing the pending check.
func (r *orderRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("create_time DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindSessionsByOrderID(ctx context.Context, orderID uint) ([]models.OrderSession, error) {
	var sessions []models.OrderSession
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *orderRepository) HasPendingOrder(ctx context.Context, tx *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) MarkCompleted(ctx context.Context, tx *gorm.DB, id uint, verifyTime time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      models.StatusCompleted,
			"verify_time": verifyTime,
		}).Error
}

func (r *orderRepository) MarkCancelled(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", models.StatusCancelled).Error
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *orderRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("create_time >= ? AND create_time < ?", start, end).
		Count(&count).Error
	return count, err
}
