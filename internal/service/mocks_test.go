package service

import (
	"context"
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock SessionRepository ---

type mockSessionRepo struct {
	createFn         func(ctx context.Context, session *models.Session) error
	createBatchFn    func(ctx context.Context, sessions []models.Session) error
	updateFn         func(ctx context.Context, session *models.Session) error
	deleteFn         func(ctx context.Context, id uint) error
	findByIDFn       func(ctx context.Context, id uint) (*models.Session, error)
	findByCourtFn    func(ctx context.Context, courtName string, startTime time.Time) (*models.Session, error)
	existsFn         func(ctx context.Context, courtName string, startTime time.Time) (bool, error)
	markBookedFn     func(ctx context.Context, id uint) (bool, error)
	markAvailableFn  func(ctx context.Context, id uint) error
	deleteExpiredFn  func(ctx context.Context, now time.Time) (int64, error)
	findAllFn        func(ctx context.Context) ([]models.Session, error)
	findBetweenFn    func(ctx context.Context, start, end time.Time) ([]models.Session, error)
	findAvailableFn  func(ctx context.Context) ([]models.Session, error)
	findAvailBetwFn  func(ctx context.Context, start, end time.Time) ([]models.Session, error)
	findByCourtAllFn func(ctx context.Context, courtName string) ([]models.Session, error)
	countFn          func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) CreateBatch(ctx context.Context, sessions []models.Session) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, sessions)
	}
	return nil
}

func (m *mockSessionRepo) Update(ctx context.Context, session *models.Session) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Session, error) {
	return m.FindByID(ctx, id)
}

func (m *mockSessionRepo) FindAll(ctx context.Context) ([]models.Session, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindByCourtName(ctx context.Context, courtName string) ([]models.Session, error) {
	if m.findByCourtAllFn != nil {
		return m.findByCourtAllFn(ctx, courtName)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (*models.Session, error) {
	if m.findByCourtFn != nil {
		return m.findByCourtFn(ctx, courtName, startTime)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindByCourtAndStartForUpdate(ctx context.Context, tx *gorm.DB, courtName string, startTime time.Time) (*models.Session, error) {
	return m.FindByCourtAndStart(ctx, courtName, startTime)
}

func (m *mockSessionRepo) FindBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	if m.findBetweenFn != nil {
		return m.findBetweenFn(ctx, start, end)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindAvailable(ctx context.Context) ([]models.Session, error) {
	if m.findAvailableFn != nil {
		return m.findAvailableFn(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindAvailableBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	if m.findAvailBetwFn != nil {
		return m.findAvailBetwFn(ctx, start, end)
	}
	return nil, nil
}

func (m *mockSessionRepo) ExistsByCourtAndStart(ctx context.Context, courtName string, startTime time.Time) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, courtName, startTime)
	}
	return false, nil
}

func (m *mockSessionRepo) MarkBooked(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if m.markBookedFn != nil {
		return m.markBookedFn(ctx, id)
	}
	return true, nil
}

func (m *mockSessionRepo) MarkAvailable(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.markAvailableFn != nil {
		return m.markAvailableFn(ctx, id)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

func (m *mockSessionRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockSessionRepo) GetDB() *gorm.DB { return nil }

// --- Mock TemplateRepository ---

type mockTemplateRepo struct {
	createFn   func(ctx context.Context, template *models.SessionTemplate) error
	updateFn   func(ctx context.Context, template *models.SessionTemplate) error
	deleteFn   func(ctx context.Context, id uint) error
	findByIDFn func(ctx context.Context, id uint) (*models.SessionTemplate, error)
	findAllFn  func(ctx context.Context) ([]models.SessionTemplate, error)
	existsFn   func(ctx context.Context, courtName, startTime string) (bool, error)
}

func (m *mockTemplateRepo) Create(ctx context.Context, template *models.SessionTemplate) error {
	if m.createFn != nil {
		return m.createFn(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepo) Update(ctx context.Context, template *models.SessionTemplate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, template)
	}
	return nil
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTemplateRepo) FindByID(ctx context.Context, id uint) (*models.SessionTemplate, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) FindAll(ctx context.Context) ([]models.SessionTemplate, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockTemplateRepo) ExistsByCourtAndStart(ctx context.Context, courtName, startTime string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, courtName, startTime)
	}
	return false, nil
}

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	createFn          func(ctx context.Context, order *models.Order) error
	createSessionsFn  func(ctx context.Context, sessions []models.OrderSession) error
	findByIDFn        func(ctx context.Context, id uint) (*models.Order, error)
	findByUserFn      func(ctx context.Context, userID uint) ([]models.Order, error)
	findSessionsFn    func(ctx context.Context, orderID uint) ([]models.OrderSession, error)
	hasPendingFn      func(ctx context.Context, userID uint) (bool, error)
	markCompletedFn   func(ctx context.Context, id uint, verifyTime time.Time) error
	markCancelledFn   func(ctx context.Context, id uint) error
	countFn           func(ctx context.Context) (int64, error)
	countByStatusFn   func(ctx context.Context, status models.OrderStatus) (int64, error)
	countCreatedBetwn func(ctx context.Context, start, end time.Time) (int64, error)
}

// WithTx runs fn directly; unit tests exercise the logic, not the database.
func (m *mockOrderRepo) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *mockOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if m.createFn != nil {
		return m.createFn(ctx, order)
	}
	order.ID = 1
	return nil
}

func (m *mockOrderRepo) CreateSessions(ctx context.Context, tx *gorm.DB, sessions []models.OrderSession) error {
	if m.createSessionsFn != nil {
		return m.createSessionsFn(ctx, sessions)
	}
	return nil
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	return m.FindByID(ctx, id)
}

func (m *mockOrderRepo) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrderRepo) FindSessionsByOrderID(ctx context.Context, orderID uint) ([]models.OrderSession, error) {
	if m.findSessionsFn != nil {
		return m.findSessionsFn(ctx, orderID)
	}
	return nil, nil
}

func (m *mockOrderRepo) HasPendingOrder(ctx context.Context, tx *gorm.DB, userID uint) (bool, error) {
	if m.hasPendingFn != nil {
		return m.hasPendingFn(ctx, userID)
	}
	return false, nil
}

func (m *mockOrderRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uint, verifyTime time.Time) error {
	if m.markCompletedFn != nil {
		return m.markCompletedFn(ctx, id, verifyTime)
	}
	return nil
}

func (m *mockOrderRepo) MarkCancelled(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.markCancelledFn != nil {
		return m.markCancelledFn(ctx, id)
	}
	return nil
}

func (m *mockOrderRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockOrderRepo) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	if m.countByStatusFn != nil {
		return m.countByStatusFn(ctx, status)
	}
	return 0, nil
}

func (m *mockOrderRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	if m.countCreatedBetwn != nil {
		return m.countCreatedBetwn(ctx, start, end)
	}
	return 0, nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn   func(ctx context.Context, user *models.User) error
	updateFn   func(ctx context.Context, user *models.User) error
	findByIDFn func(ctx context.Context, id uint) (*models.User, error)
	findByName func(ctx context.Context, username string) (*models.User, error)
	existsFn   func(ctx context.Context, username string) (bool, error)
	countFn    func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findByName != nil {
		return m.findByName(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Mock ConfigRepository ---

type mockConfigRepo struct {
	findByKeyFn func(ctx context.Context, key string) (*models.SystemConfig, error)
	findAllFn   func(ctx context.Context) ([]models.SystemConfig, error)
	saveFn      func(ctx context.Context, config *models.SystemConfig) error
}

func (m *mockConfigRepo) FindByKey(ctx context.Context, key string) (*models.SystemConfig, error) {
	if m.findByKeyFn != nil {
		return m.findByKeyFn(ctx, key)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfigRepo) FindAll(ctx context.Context) ([]models.SystemConfig, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockConfigRepo) Save(ctx context.Context, config *models.SystemConfig) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, config)
	}
	return nil
}

// --- Fixed SettingsService ---

type fixedSettings struct {
	cancelLimit int
	maxSessions int
	hours       string
}

func (f fixedSettings) CancelTimeLimit(ctx context.Context) int  { return f.cancelLimit }
func (f fixedSettings) MaxOrderSessions(ctx context.Context) int { return f.maxSessions }
func (f fixedSettings) BusinessHours(ctx context.Context) string { return f.hours }
func (f fixedSettings) All(ctx context.Context) (map[string]string, error) {
	return nil, nil
}
func (f fixedSettings) AllEntries(ctx context.Context) ([]models.SystemConfig, error) {
	return nil, nil
}
func (f fixedSettings) Update(ctx context.Context, key, value string) error { return nil }
func (f fixedSettings) UpdateAll(ctx context.Context, configs map[string]string) error {
	return nil
}
