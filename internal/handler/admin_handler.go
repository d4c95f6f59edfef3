package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sportvenue/booking-service/internal/dto"
	"github.com/sportvenue/booking-service/internal/middleware"
	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/service"
	"github.com/sportvenue/booking-service/pkg/token"
)

// AdminHandler serves the operator surface: stats, order verification,
// template and session management, and the manual counterparts of the
// scheduled job. Manual generation runs once, without the scheduler's
// retry policy.
type AdminHandler struct {
	orders    service.OrderService
	sessions  service.SessionService
	templates service.TemplateService
}

func NewAdminHandler(orders service.OrderService, sessions service.SessionService, templates service.TemplateService) *AdminHandler {
	return &AdminHandler{orders: orders, sessions: sessions, templates: templates}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, tokens *token.Manager) {
	admin := e.Group("/api/admin", middleware.JWTAuth(tokens), middleware.AdminOnly)
	admin.GET("/stats", h.GetStats)
	admin.GET("/order/:id", h.GetOrderForVerification)
	admin.POST("/order/:id/verify", h.VerifyOrder)
	admin.GET("/templates", h.ListTemplates)
	admin.POST("/templates", h.CreateTemplate)
	admin.PUT("/templates/:id", h.UpdateTemplate)
	admin.DELETE("/templates/:id", h.DeleteTemplate)
	admin.POST("/sessions", h.CreateSession)
	admin.PUT("/sessions/:id", h.UpdateSession)
	admin.DELETE("/sessions/:id", h.DeleteSession)
	admin.POST("/sessions/generate", h.GenerateNextDay)
	admin.POST("/sessions/clear-expired", h.ClearExpired)
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.orders.GetStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) GetOrderForVerification(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	detail, err := h.orders.GetOrderDetail(c.Request().Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) || errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToOrderDetailResponse(detail))
}

func (h *AdminHandler) VerifyOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orders.VerifyOrder(c.Request().Context(), uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOrderNotPending):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *AdminHandler) ListTemplates(c echo.Context) error {
	templates, err := h.templates.ListTemplates(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *AdminHandler) CreateTemplate(c echo.Context) error {
	var req dto.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CourtName == "" || req.StartTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "court_name and start_time are required")
	}

	template := &models.SessionTemplate{
		CourtName: req.CourtName,
		StartTime: req.StartTime,
		Price:     req.Price,
		IsActive:  req.IsActive,
		Note:      req.Note,
	}
	if err := h.templates.CreateTemplate(c.Request().Context(), template); err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidStartTime):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, template)
}

func (h *AdminHandler) UpdateTemplate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid template id")
	}

	var req dto.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	template, err := h.templates.UpdateTemplate(c.Request().Context(), uint(id), &models.SessionTemplate{
		CourtName: req.CourtName,
		StartTime: req.StartTime,
		Price:     req.Price,
		IsActive:  req.IsActive,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidStartTime):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, template)
}

func (h *AdminHandler) DeleteTemplate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid template id")
	}

	if err := h.templates.DeleteTemplate(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) CreateSession(c echo.Context) error {
	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CourtName == "" || req.StartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "court_name and start_time are required")
	}

	session := &models.Session{
		CourtName: req.CourtName,
		StartTime: req.StartTime,
		Price:     req.Price,
		IsActive:  req.IsActive,
		IsBooked:  req.IsBooked,
		Note:      req.Note,
	}
	if err := h.sessions.CreateSession(c.Request().Context(), session); err != nil {
		if errors.Is(err, service.ErrSessionExists) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, session)
}

func (h *AdminHandler) UpdateSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	var req dto.SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.sessions.UpdateSession(c.Request().Context(), uint(id), &models.Session{
		CourtName: req.CourtName,
		StartTime: req.StartTime,
		Price:     req.Price,
		IsActive:  req.IsActive,
		IsBooked:  req.IsBooked,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, session)
}

func (h *AdminHandler) DeleteSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	if err := h.sessions.DeleteSession(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) GenerateNextDay(c echo.Context) error {
	created, err := h.sessions.GenerateNextDay(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoTemplates) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.GenerateResponse{Created: created})
}

func (h *AdminHandler) ClearExpired(c echo.Context) error {
	deleted, err := h.sessions.ClearExpired(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ClearExpiredResponse{Deleted: deleted})
}
