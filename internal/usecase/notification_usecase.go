package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stuchat/backend/internal/application/constant"
	"github.com/stuchat/backend/internal/application/metric"
	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/domain/models"
	"github.com/stuchat/backend/internal/domain/runtime"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
	"github.com/stuchat/backend/internal/infra/adapters/postgres/repository"
)

const notificationsFeedLimit = 20

// NotificationUsecase доставляет уведомления живым соединениям.
// Долговременная запись - забота persistent-слоя; здесь только fan-out
// и выдача пропущенного из БД по запросу.
type NotificationUsecase interface {
	// DeliverIfOnline пишет уведомление, если пользователь подключен.
	// Иначе ничего: клиент заберет его через get_notifications.
	DeliverIfOnline(ctx context.Context, userID string, payload json.RawMessage)

	HandleGetNotifications(ctx context.Context, c runtime.Conn, event events.GetNotificationsEvent)

	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.NotificationFeedItem, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationUsecase struct {
	registry         memory.ConnectionRegistry
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	registry memory.ConnectionRegistry,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		registry:         registry,
		notificationRepo: notificationRepo,
	}
}

func (n *notificationUsecase) DeliverIfOnline(ctx context.Context, userID string, payload json.RawMessage) {
	msg := events.Message{Type: events.TypeNotification, Data: payload}

	if delivered := n.registry.Write(userID, msg); !delivered {
		metric.RecordRelayDropped()
	}
}

// HandleGetNotifications поднимает последние уведомления из БД.
// Ошибка БД логируется и глотается: клиент получает пустой список.
func (n *notificationUsecase) HandleGetNotifications(ctx context.Context, c runtime.Conn, event events.GetNotificationsEvent) {
	items := make([]models.NotificationFeedItem, 0, notificationsFeedLimit)

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		slog.Error("parse user id in get notifications", slog.Any(constant.Error, err))
	} else {
		items, err = n.notificationRepo.ListRecent(ctx, userID, notificationsFeedLimit)
		if err != nil {
			slog.Error("load notifications", slog.Any(constant.Error, err), slog.String(constant.UserID, event.UserID))
			items = make([]models.NotificationFeedItem, 0)
		}
	}

	msg, err := events.NewMessage(events.TypeNotificationsList, items)
	if err != nil {
		slog.Error("marshal notifications list", slog.Any(constant.Error, err))
		return
	}

	if err := c.WriteJSON(msg); err != nil {
		slog.Error("write notifications list", slog.Any(constant.Error, err))
	}
}

func (n *notificationUsecase) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.NotificationFeedItem, error) {
	return n.notificationRepo.ListRecent(ctx, userID, limit)
}

func (n *notificationUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return n.notificationRepo.UnreadCount(ctx, userID)
}

func (n *notificationUsecase) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return n.notificationRepo.MarkRead(ctx, notificationID)
}

func (n *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return n.notificationRepo.MarkAllRead(ctx, userID)
}
