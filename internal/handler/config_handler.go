package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sportvenue/booking-service/internal/middleware"
	"github.com/sportvenue/booking-service/internal/service"
	"github.com/sportvenue/booking-service/pkg/token"
)

type ConfigHandler struct {
	settings service.SettingsService
}

func NewConfigHandler(settings service.SettingsService) *ConfigHandler {
	return &ConfigHandler{settings: settings}
}

func (h *ConfigHandler) RegisterRoutes(e *echo.Echo, tokens *token.Manager) {
	config := e.Group("/api/config", middleware.JWTAuth(tokens), middleware.AdminOnly)
	config.GET("", h.GetConfigs)
	config.PUT("", h.UpdateConfigs)
}

func (h *ConfigHandler) GetConfigs(c echo.Context) error {
	configs, err := h.settings.All(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, configs)
}

func (h *ConfigHandler) UpdateConfigs(c echo.Context) error {
	var configs map[string]string
	if err := c.Bind(&configs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.settings.UpdateAll(c.Request().Context(), configs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
