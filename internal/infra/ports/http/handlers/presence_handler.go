package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stuchat/backend/internal/usecase"
)

type PresenceHandler struct {
	presenceUsecase usecase.PresenceUsecase
}

func NewPresenceHandler(presenceUsecase usecase.PresenceUsecase) *PresenceHandler {
	return &PresenceHandler{presenceUsecase: presenceUsecase}
}

// GetOnlineUsers возвращает идентичности, зарегистрированные в presence-реестре
func (h *PresenceHandler) GetOnlineUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.presenceUsecase.OnlineUsers(c.Request().Context()))
}
