package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/domain/models"
	"github.com/stuchat/backend/internal/infra/adapters/postgres/repository"
	"github.com/stuchat/backend/internal/infra/appctx"
	"github.com/stuchat/backend/internal/infra/ports/http/dto"
)

const defaultCallLogsLimit = 50

// CallLogHandler ведет журнал звонков. Сама сигнализация живет в
// realtime-слое и с журналом не синхронизирована.
type CallLogHandler struct {
	callLogRepo repository.CallLogRepository
}

func NewCallLogHandler(callLogRepo repository.CallLogRepository) *CallLogHandler {
	return &CallLogHandler{callLogRepo: callLogRepo}
}

func (h *CallLogHandler) Initiate(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	var req dto.InitiateCallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.ReceiverID == uuid.Nil || req.CallType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing required fields"})
	}

	log := &models.CallLog{
		ID:         uuid.New(),
		CallerID:   userID,
		ReceiverID: req.ReceiverID,
		CallType:   req.CallType,
		Status:     models.CallStatusPending,
	}

	if err := h.callLogRepo.Create(c.Request().Context(), log); err != nil {
		slog.Error("create call log failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to initiate call"})
	}

	return c.JSON(http.StatusCreated, dto.InitiateCallResponse{CallID: log.ID})
}

func (h *CallLogHandler) Answer(c echo.Context) error {
	return h.updateStatus(c, models.CallStatusActive)
}

func (h *CallLogHandler) Reject(c echo.Context) error {
	return h.updateStatus(c, models.CallStatusRejected)
}

func (h *CallLogHandler) End(c echo.Context) error {
	return h.updateStatus(c, models.CallStatusEnded)
}

func (h *CallLogHandler) History(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user ID in context"})
	}

	logs, err := h.callLogRepo.GetByUserID(c.Request().Context(), userID, defaultCallLogsLimit)
	if err != nil {
		slog.Error("get call history failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not get call history"})
	}

	return c.JSON(http.StatusOK, logs)
}

func (h *CallLogHandler) updateStatus(c echo.Context, status string) error {
	callID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid call id"})
	}

	if err := h.callLogRepo.UpdateStatus(c.Request().Context(), callID, status); err != nil {
		slog.Error("update call status failed", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update call"})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
