package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/service"
)

// SessionHandler serves the public session inventory.
type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	sessions := e.Group("/api/sessions")
	sessions.GET("", h.ListSessions)
	sessions.GET("/range", h.ListSessionsBetween)
	sessions.GET("/available", h.ListAvailable)
	sessions.GET("/available/range", h.ListAvailableBetween)
	sessions.GET("/date/:date", h.ListByDate)
	sessions.GET("/court/:courtName", h.ListByCourt)
	sessions.GET("/:id", h.GetSession)
}

func (h *SessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.svc.ListSessions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	session, err := h.svc.GetSession(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) ListByCourt(c echo.Context) error {
	sessions, err := h.svc.ListSessionsByCourt(c.Request().Context(), c.Param("courtName"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ListSessionsBetween(c echo.Context) error {
	start, end, err := parseRange(c)
	if err != nil {
		return err
	}

	sessions, err := h.svc.ListSessionsBetween(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ListAvailable(c echo.Context) error {
	sessions, err := h.svc.ListAvailableSessions(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

func (h *SessionHandler) ListAvailableBetween(c echo.Context) error {
	start, end, err := parseRange(c)
	if err != nil {
		return err
	}

	sessions, err := h.svc.ListAvailableSessionsBetween(c.Request().Context(), start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sessions)
}

// ListByDate returns every session of one day, booked and inactive ones
// included, so the day grid can render closures.
func (h *SessionHandler) ListByDate(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	startOfDay := date
	endOfDay := date.AddDate(0, 0, 1)

	sessions, err := h.svc.ListSessionsBetween(c.Request().Context(), startOfDay, endOfDay)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}

func parseRange(c echo.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid start, expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid end, expected RFC3339")
	}
	return start, end, nil
}
