package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuchat/backend/internal/domain/events"
	"github.com/stuchat/backend/internal/domain/models"
	"github.com/stuchat/backend/internal/infra/adapters/memory"
)

type stubNotificationRepo struct {
	items []models.NotificationFeedItem
	err   error

	marked    []uuid.UUID
	markedAll []uuid.UUID
}

func (s *stubNotificationRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.NotificationFeedItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *stubNotificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(s.items), s.err
}

func (s *stubNotificationRepo) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	s.marked = append(s.marked, notificationID)
	return s.err
}

func (s *stubNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	s.markedAll = append(s.markedAll, userID)
	return s.err
}

func TestNotificationUsecase_DeliverIfOnline(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewConnectionRegistry()
	notifications := NewNotificationUsecase(registry, &stubNotificationRepo{})

	conn := &mockConn{}
	registry.Announce(conn, "42")

	notifications.DeliverIfOnline(ctx, "42", json.RawMessage(`{"kind":"like"}`))

	delivered := conn.ofType(events.TypeNotification)
	require.Len(t, delivered, 1)
	assert.JSONEq(t, `{"kind":"like"}`, string(delivered[0].Data))
}

func TestNotificationUsecase_DeliverToOfflineUser(t *testing.T) {
	ctx := context.Background()
	registry := memory.NewConnectionRegistry()
	notifications := NewNotificationUsecase(registry, &stubNotificationRepo{})

	bystander := &mockConn{}
	registry.Announce(bystander, "7")

	// Получатель оффлайн: уведомление никому не уходит
	notifications.DeliverIfOnline(ctx, "42", json.RawMessage(`{"kind":"like"}`))

	assert.Empty(t, bystander.ofType(events.TypeNotification))
}

func TestNotificationUsecase_GetNotifications(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := &stubNotificationRepo{
		items: []models.NotificationFeedItem{
			{Notification: models.Notification{ID: uuid.New(), UserID: userID, Type: "like", CreatedAt: time.Now()}},
		},
	}

	registry := memory.NewConnectionRegistry()
	notifications := NewNotificationUsecase(registry, repo)

	conn := &mockConn{}
	notifications.HandleGetNotifications(ctx, conn, events.GetNotificationsEvent{UserID: userID.String()})

	list := conn.ofType(events.TypeNotificationsList)
	require.Len(t, list, 1)

	var items []models.NotificationFeedItem
	require.NoError(t, json.Unmarshal(list[0].Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "like", items[0].Type)
}

func TestNotificationUsecase_GetNotificationsSwallowsDBError(t *testing.T) {
	ctx := context.Background()

	repo := &stubNotificationRepo{err: errors.New("connection refused")}
	registry := memory.NewConnectionRegistry()
	notifications := NewNotificationUsecase(registry, repo)

	conn := &mockConn{}
	notifications.HandleGetNotifications(ctx, conn, events.GetNotificationsEvent{UserID: uuid.NewString()})

	// Ошибка БД не рвет соединение: клиент получает пустой список
	list := conn.ofType(events.TypeNotificationsList)
	require.Len(t, list, 1)

	var items []models.NotificationFeedItem
	require.NoError(t, json.Unmarshal(list[0].Data, &items))
	assert.Empty(t, items)
}

func TestNotificationUsecase_GetNotificationsBadUserID(t *testing.T) {
	ctx := context.Background()

	registry := memory.NewConnectionRegistry()
	notifications := NewNotificationUsecase(registry, &stubNotificationRepo{})

	conn := &mockConn{}
	notifications.HandleGetNotifications(ctx, conn, events.GetNotificationsEvent{UserID: "not-a-uuid"})

	list := conn.ofType(events.TypeNotificationsList)
	require.Len(t, list, 1)

	var items []models.NotificationFeedItem
	require.NoError(t, json.Unmarshal(list[0].Data, &items))
	assert.Empty(t, items)
}
