package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sportvenue/booking-service/internal/dto"
	"github.com/sportvenue/booking-service/internal/middleware"
	"github.com/sportvenue/booking-service/internal/service"
	"github.com/sportvenue/booking-service/pkg/token"
)

// UserHandler serves the authenticated user's own profile and orders.
type UserHandler struct {
	users    service.UserService
	orders   service.OrderService
	settings service.SettingsService
}

func NewUserHandler(users service.UserService, orders service.OrderService, settings service.SettingsService) *UserHandler {
	return &UserHandler{users: users, orders: orders, settings: settings}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, tokens *token.Manager) {
	user := e.Group("/api/user", middleware.JWTAuth(tokens))
	user.GET("/info", h.GetInfo)
	user.PUT("/update", h.UpdateInfo)
	user.GET("/business-hours", h.GetBusinessHours)
	user.GET("/orders", h.ListOrders)
	user.POST("/orders", h.CreateOrder)
	user.POST("/orders/:id/cancel", h.CancelOrder)
}

func (h *UserHandler) GetInfo(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) UpdateInfo(c echo.Context) error {
	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err := h.users.UpdateUser(c.Request().Context(), middleware.UserID(c), req.Phone, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidOldPassword):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) GetBusinessHours(c echo.Context) error {
	hours := h.settings.BusinessHours(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"business_hours": hours})
}

func (h *UserHandler) ListOrders(c echo.Context) error {
	details, err := h.orders.GetUserOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.OrderDetailResponse, len(details))
	for i := range details {
		resp[i] = dto.ToOrderDetailResponse(&details[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.SessionIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "session_ids is required")
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), middleware.UserID(c), req.SessionIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrSessionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionBooked),
			errors.Is(err, service.ErrSessionNotBookable),
			errors.Is(err, service.ErrPendingOrderExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrTooManySessions), errors.Is(err, service.ErrNoSessionsSelected):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

func (h *UserHandler) CancelOrder(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	err = h.orders.CancelOrder(c.Request().Context(), uint(orderID), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrOrderNotOwned):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrOrderNotPending),
			errors.Is(err, service.ErrSessionStarted),
			errors.Is(err, service.ErrCancelTooLate):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.NoContent(http.StatusNoContent)
}
