package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/repository"
	"github.com/sportvenue/booking-service/pkg/clock"
	"github.com/sportvenue/booking-service/pkg/rabbitmq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotOwned      = errors.New("order does not belong to this user")
	ErrOrderNotPending    = errors.New("order is not pending")
	ErrNoSessionsSelected = errors.New("no sessions selected")
	ErrSessionBooked      = errors.New("session is already booked")
	ErrSessionNotBookable = errors.New("session is not open for booking")
	ErrTooManySessions    = errors.New("order exceeds the session limit")
	ErrPendingOrderExists = errors.New("user has an unverified order awaiting verification")
	ErrSessionStarted     = errors.New("session has already started, the order cannot be cancelled")
	ErrCancelTooLate      = errors.New("too close to the session start time to cancel")
)

// EventPublisher emits order lifecycle events to the message broker. A nil
// publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// OrderDetail is an order joined with its owner and session snapshots, used
// by the verification screen and the user's order history.
type OrderDetail struct {
	Order    models.Order
	Username string
	Phone    string
	Sessions []models.OrderSession
}

type Stats struct {
	TotalOrders         int64 `json:"total_orders"`
	TodayOrders         int64 `json:"today_orders"`
	PendingVerification int64 `json:"pending_verification"`
	TotalUsers          int64 `json:"total_users"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, userID uint, sessionIDs []uint) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, userID uint) error
	VerifyOrder(ctx context.Context, orderID uint) (*models.Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*OrderDetail, error)
	GetUserOrders(ctx context.Context, userID uint) ([]OrderDetail, error)
	GetStats(ctx context.Context) (*Stats, error)
}

type orderService struct {
	orders    repository.OrderRepository
	sessions  repository.SessionRepository
	users     repository.UserRepository
	settings  SettingsService
	clock     clock.Clock
	publisher EventPublisher
	log       *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	sessions repository.SessionRepository,
	users repository.UserRepository,
	settings SettingsService,
	clk clock.Clock,
	publisher EventPublisher,
	log *zap.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		sessions:  sessions,
		users:     users,
		settings:  settings,
		clock:     clk,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder reserves the given sessions for the user as one atomic unit:
// every validation plus the reservation writes happen inside a single
// transaction, with each session row locked FOR UPDATE. Two orders racing
// on the same session resolve to one winner; the loser sees
// ErrSessionBooked and nothing it wrote survives.
func (s *orderService) CreateOrder(ctx context.Context, userID uint, sessionIDs []uint) (*models.Order, error) {
	if len(sessionIDs) == 0 {
		return nil, ErrNoSessionsSelected
	}

	// Lock sessions in id order so two overlapping orders cannot deadlock.
	ids := make([]uint, len(sessionIDs))
	copy(ids, sessionIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var order *models.Order

	err := s.orders.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var totalPrice float64
		sessions := make([]*models.Session, 0, len(ids))
		for _, id := range ids {
			session, err := s.sessions.FindByIDForUpdate(ctx, tx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
				}
				return err
			}
			if session.IsBooked {
				return fmt.Errorf("%w: %s %s", ErrSessionBooked,
					session.CourtName, session.StartTime.Format("2006-01-02 15:04"))
			}
			if !session.IsActive {
				return fmt.Errorf("%w: %s %s", ErrSessionNotBookable,
					session.CourtName, session.StartTime.Format("2006-01-02 15:04"))
			}
			sessions = append(sessions, session)
			totalPrice += session.Price
		}

		maxSessions := s.settings.MaxOrderSessions(ctx)
		if len(ids) > maxSessions {
			return fmt.Errorf("%w: at most %d sessions per order", ErrTooManySessions, maxSessions)
		}

		// Global per-user throttle: one unverified order at a time.
		pending, err := s.orders.HasPendingOrder(ctx, tx, userID)
		if err != nil {
			return err
		}
		if pending {
			return ErrPendingOrderExists
		}

		order = &models.Order{
			UserID:     userID,
			TotalPrice: totalPrice,
			CreateTime: s.clock.Now(),
			VerifyCode: uuid.NewString(),
			Status:     models.StatusPending,
		}
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}

		snapshots := make([]models.OrderSession, 0, len(sessions))
		for _, session := range sessions {
			snapshots = append(snapshots, models.OrderSession{
				OrderID:   order.ID,
				CourtName: session.CourtName,
				StartTime: session.StartTime,
				Price:     session.Price,
			})

			booked, err := s.sessions.MarkBooked(ctx, tx, session.ID)
			if err != nil {
				return err
			}
			if !booked {
				return fmt.Errorf("%w: %s %s", ErrSessionBooked,
					session.CourtName, session.StartTime.Format("2006-01-02 15:04"))
			}
		}

		return s.orders.CreateSessions(ctx, tx, snapshots)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Int("sessions", len(ids)),
		zap.Float64("total_price", order.TotalPrice))

	if s.publisher != nil {
		if err := s.publisher.Publish(rabbitmq.KeyOrderCreated, order); err != nil {
			s.log.Warn("publish order.created failed", zap.Error(err))
		}
	}

	return order, nil
}

// CancelOrder moves a pending order to cancelled and releases its sessions.
// The cutoff is checked per snapshot; a single session inside the window
// blocks cancellation of the whole order. Releasing a session whose live
// row no longer exists is skipped: the snapshot remains the source of
// truth for billing history.
func (s *orderService) CancelOrder(ctx context.Context, orderID, userID uint) error {
	err := s.orders.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.UserID != userID {
			return ErrOrderNotOwned
		}
		if order.Status != models.StatusPending {
			return ErrOrderNotPending
		}

		snapshots, err := s.orders.FindSessionsByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return ErrOrderNotFound
		}

		limit := s.settings.CancelTimeLimit(ctx)
		now := s.clock.Now()
		for _, snap := range snapshots {
			// Whole hours, truncated toward zero: a session 30 minutes in
			// the past still reads as 0 and is rejected as "too close".
			hoursUntilStart := int(snap.StartTime.Sub(now).Hours())
			if hoursUntilStart < limit {
				if hoursUntilStart < 0 {
					return ErrSessionStarted
				}
				return fmt.Errorf("%w: requires at least %d hours before start", ErrCancelTooLate, limit)
			}
		}

		if err := s.orders.MarkCancelled(ctx, tx, orderID); err != nil {
			return err
		}

		for _, snap := range snapshots {
			session, err := s.sessions.FindByCourtAndStartForUpdate(ctx, tx, snap.CourtName, snap.StartTime)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := s.sessions.MarkAvailable(ctx, tx, session.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order cancelled",
		zap.Uint("order_id", orderID),
		zap.Uint("user_id", userID))

	if s.publisher != nil {
		if err := s.publisher.Publish(rabbitmq.KeyOrderCancelled, map[string]uint{"order_id": orderID}); err != nil {
			s.log.Warn("publish order.cancelled failed", zap.Error(err))
		}
	}

	return nil
}

// VerifyOrder confirms a pending order on arrival: pending → completed with
// the verification time stamped. Session state is untouched.
func (s *orderService) VerifyOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order *models.Order

	err := s.orders.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != models.StatusPending {
			return ErrOrderNotPending
		}

		now := s.clock.Now()
		if err := s.orders.MarkCompleted(ctx, tx, orderID, now); err != nil {
			return err
		}
		order.Status = models.StatusCompleted
		order.VerifyTime = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order verified", zap.Uint("order_id", orderID))

	if s.publisher != nil {
		if err := s.publisher.Publish(rabbitmq.KeyOrderVerified, order); err != nil {
			s.log.Warn("publish order.verified failed", zap.Error(err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, orderID uint) (*OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.buildDetail(ctx, order)
}

func (s *orderService) GetUserOrders(ctx context.Context, userID uint) ([]OrderDetail, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail, err := s.buildDetail(ctx, &order)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *orderService) buildDetail(ctx context.Context, order *models.Order) (*OrderDetail, error) {
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	snapshots, err := s.orders.FindSessionsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{
		Order:    *order,
		Username: user.Username,
		Phone:    user.Phone,
		Sessions: snapshots,
	}, nil
}

func (s *orderService) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.orders.CountCreatedBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	pending, err := s.orders.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalOrders:         total,
		TodayOrders:         today,
		PendingVerification: pending,
		TotalUsers:          users,
	}, nil
}
