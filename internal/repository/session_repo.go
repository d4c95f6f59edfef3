package repository

import (
	"context"
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	CreateBatch(ctx context.Context, sessions []models.Session) error
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Session, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error)
	FindAll(ctx context.Context) ([]models.Session, error)
	FindByCourtName(ctx context.Context, courtName string) ([]models.Session, error)
	FindByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (*models.Session, error)
	FindByCourtAndStartForUpdate(ctx context.Context, tx *gorm.DB, courtName string, startTime time.Time) (*models.Session, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]models.Session, error)
	FindAvailable(ctx context.Context) ([]models.Session, error)
	FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.Session, error)
	ExistsByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (bool, error)
	MarkBooked(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	MarkAvailable(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	GetDB() *gorm.DB
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) CreateBatch(ctx context.Context, sessions []models.Session) error {
	return r.db.WithContext(ctx).Create(&sessions).Error
}

func (r *sessionRepository) Update(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, id).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate acquires a row-level lock on the session within the
// given transaction. Reservation and release both go through this lock.
func (r *sessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error) {
	var session models.Session
	if err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAll(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).Order("start_time ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByCourtName(ctx context.Context, courtName string) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("court_name = ?", courtName).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("court_name = ? AND start_time = ?", courtName, startTime).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByCourtAndStartForUpdate(ctx context.Context, tx *gorm.DB, courtName string, startTime time.Time) (*models.Session, error) {
	var session models.Session
	err := tx.WithContext(ctx).
		Set("gorm:query_option", "FOR UPDATE").
		Where("court_name = ? AND start_time = ?", courtName, startTime).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindAvailable(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("is_booked = ? AND is_active = ?", false, true).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ? AND is_booked = ? AND is_active = ?", start, end, false, true).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) ExistsByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("court_name = ? AND start_time = ?", courtName, startTime).
		Count(&count).Error
	return count > 0, err
}

// MarkBooked flips is_booked only when the session is still free. The
// guarded update is the compare-and-set that makes two orders racing on
// the same session resolve to exactly one winner.
func (r *sessionRepository) MarkBooked(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND is_booked = ?", id, false).
		Update("is_booked", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkAvailable is idempotent: releasing an already-free session is a no-op.
func (r *sessionRepository) MarkAvailable(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("is_booked", false).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("start_time < ?", now).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).Count(&count).Error
	return count, err
}
