package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sportvenue/booking-service/internal/middleware"
	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/service"
)

// --- Stub OrderService ---

type stubOrderService struct {
	createOrderFn    func(ctx context.Context, userID uint, sessionIDs []uint) (*models.Order, error)
	cancelOrderFn    func(ctx context.Context, orderID, userID uint) error
	verifyOrderFn    func(ctx context.Context, orderID uint) (*models.Order, error)
	getOrderDetailFn func(ctx context.Context, orderID uint) (*service.OrderDetail, error)
	getUserOrdersFn  func(ctx context.Context, userID uint) ([]service.OrderDetail, error)
	getStatsFn       func(ctx context.Context) (*service.Stats, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, userID uint, sessionIDs []uint) (*models.Order, error) {
	return s.createOrderFn(ctx, userID, sessionIDs)
}

func (s *stubOrderService) CancelOrder(ctx context.Context, orderID, userID uint) error {
	return s.cancelOrderFn(ctx, orderID, userID)
}

func (s *stubOrderService) VerifyOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	return s.verifyOrderFn(ctx, orderID)
}

func (s *stubOrderService) GetOrderDetail(ctx context.Context, orderID uint) (*service.OrderDetail, error) {
	return s.getOrderDetailFn(ctx, orderID)
}

func (s *stubOrderService) GetUserOrders(ctx context.Context, userID uint) ([]service.OrderDetail, error) {
	return s.getUserOrdersFn(ctx, userID)
}

func (s *stubOrderService) GetStats(ctx context.Context) (*service.Stats, error) {
	return s.getStatsFn(ctx)
}

// --- Stub SessionService ---

type stubSessionService struct {
	getSessionFn       func(ctx context.Context, id uint) (*models.Session, error)
	listFn             func(ctx context.Context) ([]models.Session, error)
	listByCourtFn      func(ctx context.Context, courtName string) ([]models.Session, error)
	listBetweenFn      func(ctx context.Context, start, end time.Time) ([]models.Session, error)
	listAvailableFn    func(ctx context.Context) ([]models.Session, error)
	listAvailBetweenFn func(ctx context.Context, start, end time.Time) ([]models.Session, error)
	createFn           func(ctx context.Context, session *models.Session) error
	updateFn           func(ctx context.Context, id uint, session *models.Session) (*models.Session, error)
	deleteFn           func(ctx context.Context, id uint) error
	generateDayFn      func(ctx context.Context, date time.Time) (int, error)
	generateNextFn     func(ctx context.Context) (int, error)
	clearExpiredFn     func(ctx context.Context) (int64, error)
}

func (s *stubSessionService) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	return s.getSessionFn(ctx, id)
}

func (s *stubSessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	return s.listFn(ctx)
}

func (s *stubSessionService) ListSessionsByCourt(ctx context.Context, courtName string) ([]models.Session, error) {
	return s.listByCourtFn(ctx, courtName)
}

func (s *stubSessionService) ListSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	return s.listBetweenFn(ctx, start, end)
}

func (s *stubSessionService) ListAvailableSessions(ctx context.Context) ([]models.Session, error) {
	return s.listAvailableFn(ctx)
}

func (s *stubSessionService) ListAvailableSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	return s.listAvailBetweenFn(ctx, start, end)
}

func (s *stubSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	return s.createFn(ctx, session)
}

func (s *stubSessionService) UpdateSession(ctx context.Context, id uint, session *models.Session) (*models.Session, error) {
	return s.updateFn(ctx, id, session)
}

func (s *stubSessionService) DeleteSession(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubSessionService) GenerateDay(ctx context.Context, date time.Time) (int, error) {
	return s.generateDayFn(ctx, date)
}

func (s *stubSessionService) GenerateNextDay(ctx context.Context) (int, error) {
	return s.generateNextFn(ctx)
}

func (s *stubSessionService) ClearExpired(ctx context.Context) (int64, error) {
	return s.clearExpiredFn(ctx)
}

func (s *stubSessionService) Initialize(ctx context.Context) error { return nil }

// --- Stub TemplateService ---

type stubTemplateService struct {
	listFn   func(ctx context.Context) ([]models.SessionTemplate, error)
	createFn func(ctx context.Context, template *models.SessionTemplate) error
	updateFn func(ctx context.Context, id uint, template *models.SessionTemplate) (*models.SessionTemplate, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubTemplateService) ListTemplates(ctx context.Context) ([]models.SessionTemplate, error) {
	return s.listFn(ctx)
}

func (s *stubTemplateService) CreateTemplate(ctx context.Context, template *models.SessionTemplate) error {
	return s.createFn(ctx, template)
}

func (s *stubTemplateService) UpdateTemplate(ctx context.Context, id uint, template *models.SessionTemplate) (*models.SessionTemplate, error) {
	return s.updateFn(ctx, id, template)
}

func (s *stubTemplateService) DeleteTemplate(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// --- Stub UserService ---

type stubUserService struct {
	registerFn func(ctx context.Context, username, password, phone string) (*models.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *models.User, error)
	getUserFn  func(ctx context.Context, id uint) (*models.User, error)
	updateFn   func(ctx context.Context, id uint, phone, oldPassword, newPassword string) error
}

func (s *stubUserService) Register(ctx context.Context, username, password, phone string) (*models.User, error) {
	return s.registerFn(ctx, username, password, phone)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.getUserFn(ctx, id)
}

func (s *stubUserService) UpdateUser(ctx context.Context, id uint, phone, oldPassword, newPassword string) error {
	return s.updateFn(ctx, id, phone, oldPassword, newPassword)
}

// --- Stub SettingsService ---

type stubSettings struct {
	hours string
}

func (s stubSettings) CancelTimeLimit(ctx context.Context) int  { return 4 }
func (s stubSettings) MaxOrderSessions(ctx context.Context) int { return 3 }
func (s stubSettings) BusinessHours(ctx context.Context) string { return s.hours }
func (s stubSettings) All(ctx context.Context) (map[string]string, error) {
	return map[string]string{"business_hours": s.hours}, nil
}
func (s stubSettings) AllEntries(ctx context.Context) ([]models.SystemConfig, error) {
	return nil, nil
}
func (s stubSettings) Update(ctx context.Context, key, value string) error          { return nil }
func (s stubSettings) UpdateAll(ctx context.Context, configs map[string]string) error { return nil }

// newContext builds an echo request context for calling a handler directly.
func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

// asAuthenticated stores the identity JWTAuth would have set.
func asAuthenticated(c echo.Context, userID uint, role models.Role) {
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextUsername, "user-1")
	c.Set(middleware.ContextRole, role)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
