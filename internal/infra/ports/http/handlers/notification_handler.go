package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/infra/appctx"
	"github.com/stuchat/backend/internal/infra/ports/http/dto"
	"github.com/stuchat/backend/internal/usecase"
)

const defaultNotificationsLimit = 50

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUsecase: notificationUsecase}
}

func (h *NotificationHandler) List(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	limit := defaultNotificationsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	items, err := h.notificationUsecase.ListRecent(c.Request().Context(), userID, limit)
	if err != nil {
		slog.Error("list notifications failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not get notifications"})
	}

	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	count, err := h.notificationUsecase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		slog.Error("unread count failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not get unread count"})
	}

	return c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid notification id"})
	}

	if err := h.notificationUsecase.MarkRead(c.Request().Context(), notificationID); err != nil {
		slog.Error("mark notification read failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not mark notification"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	if err := h.notificationUsecase.MarkAllRead(c.Request().Context(), userID); err != nil {
		slog.Error("mark all notifications read failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not mark notifications"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
