package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/repository"
	"github.com/sportvenue/booking-service/pkg/clock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("a session already exists for this court and start time")
	ErrNoTemplates     = errors.New("no session templates configured")
)

type SessionService interface {
	GetSession(ctx context.Context, id uint) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListSessionsByCourt(ctx context.Context, courtName string) ([]models.Session, error)
	ListSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error)
	ListAvailableSessions(ctx context.Context) ([]models.Session, error)
	ListAvailableSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error
	UpdateSession(ctx context.Context, id uint, session *models.Session) (*models.Session, error)
	DeleteSession(ctx context.Context, id uint) error
	GenerateDay(ctx context.Context, date time.Time) (int, error)
	GenerateNextDay(ctx context.Context) (int, error)
	ClearExpired(ctx context.Context) (int64, error)
	Initialize(ctx context.Context) error
}

type sessionService struct {
	sessions  repository.SessionRepository
	templates repository.TemplateRepository
	clock     clock.Clock
	log       *zap.Logger
}

func NewSessionService(sessions repository.SessionRepository, templates repository.TemplateRepository, clk clock.Clock, log *zap.Logger) SessionService {
	return &sessionService{
		sessions:  sessions,
		templates: templates,
		clock:     clk,
		log:       log,
	}
}

func (s *sessionService) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	return s.sessions.FindAll(ctx)
}

func (s *sessionService) ListSessionsByCourt(ctx context.Context, courtName string) ([]models.Session, error) {
	return s.sessions.FindByCourtName(ctx, courtName)
}

func (s *sessionService) ListSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	return s.sessions.FindBetween(ctx, start, end)
}

func (s *sessionService) ListAvailableSessions(ctx context.Context) ([]models.Session, error) {
	return s.sessions.FindAvailable(ctx)
}

func (s *sessionService) ListAvailableSessionsBetween(ctx context.Context, start, end time.Time) ([]models.Session, error) {
	return s.sessions.FindAvailableBetween(ctx, start, end)
}

func (s *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	exists, err := s.sessions.ExistsByCourtAndStart(ctx, session.CourtName, session.StartTime)
	if err != nil {
		return err
	}
	if exists {
		return ErrSessionExists
	}
	return s.sessions.Create(ctx, session)
}

func (s *sessionService) UpdateSession(ctx context.Context, id uint, session *models.Session) (*models.Session, error) {
	existing, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// Moving a session to a new (court, start) slot must not collide with
	// another session.
	if existing.CourtName != session.CourtName || !existing.StartTime.Equal(session.StartTime) {
		exists, err := s.sessions.ExistsByCourtAndStart(ctx, session.CourtName, session.StartTime)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSessionExists
		}
	}

	existing.CourtName = session.CourtName
	existing.StartTime = session.StartTime
	existing.Price = session.Price
	existing.IsActive = session.IsActive
	existing.IsBooked = session.IsBooked
	existing.Note = session.Note

	if err := s.sessions.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uint) error {
	if _, err := s.sessions.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.sessions.Delete(ctx, id)
}

// GenerateDay expands every template into a concrete session for the given
// date. Inactive templates still generate sessions so closure notes carry
// forward. Slots that already exist are skipped, which makes re-runs
// idempotent. Returns the number of sessions created.
func (s *sessionService) GenerateDay(ctx context.Context, date time.Time) (int, error) {
	templates, err := s.templates.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load templates: %w", err)
	}
	if len(templates) == 0 {
		return 0, ErrNoTemplates
	}

	var newSessions []models.Session
	for _, t := range templates {
		startAt, err := combineDateAndTime(date, t.StartTime)
		if err != nil {
			return 0, fmt.Errorf("template %d has invalid start time %q: %w", t.ID, t.StartTime, err)
		}

		exists, err := s.sessions.ExistsByCourtAndStart(ctx, t.CourtName, startAt)
		if err != nil {
			return 0, fmt.Errorf("check existing session: %w", err)
		}
		if exists {
			continue
		}

		newSessions = append(newSessions, models.Session{
			CourtName: t.CourtName,
			StartTime: startAt,
			Price:     t.Price,
			IsActive:  t.IsActive,
			IsBooked:  false,
			Note:      t.Note,
		})
	}

	if len(newSessions) == 0 {
		s.log.Info("sessions already exist, nothing to generate",
			zap.Time("date", date))
		return 0, nil
	}

	if err := s.sessions.CreateBatch(ctx, newSessions); err != nil {
		return 0, fmt.Errorf("persist generated sessions: %w", err)
	}

	s.log.Info("generated sessions",
		zap.Time("date", date),
		zap.Int("count", len(newSessions)))
	return len(newSessions), nil
}

func (s *sessionService) GenerateNextDay(ctx context.Context) (int, error) {
	tomorrow := s.clock.Now().AddDate(0, 0, 1)
	return s.GenerateDay(ctx, tomorrow)
}

func (s *sessionService) ClearExpired(ctx context.Context) (int64, error) {
	deleted, err := s.sessions.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if deleted > 0 {
		s.log.Info("cleared expired sessions", zap.Int64("count", deleted))
	}
	return deleted, nil
}

// Initialize self-heals the inventory at process start: clear what already
// expired, then generate tomorrow's sessions.
func (s *sessionService) Initialize(ctx context.Context) error {
	if _, err := s.ClearExpired(ctx); err != nil {
		return err
	}
	if _, err := s.GenerateNextDay(ctx); err != nil {
		return err
	}
	return nil
}

func combineDateAndTime(date time.Time, hhmm string) (time.Time, error) {
	tod, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}
