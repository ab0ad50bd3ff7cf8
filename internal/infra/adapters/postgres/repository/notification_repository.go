package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stuchat/backend/internal/domain/models"
)

type NotificationRepository interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.NotificationFeedItem, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationRepo struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.NotificationFeedItem, error) {
	items := make([]models.NotificationFeedItem, 0, limit)

	query := `
		SELECT n.id, n.user_id, n.from_user_id, n.type, n.content, n.is_read, n.created_at,
		       u.name AS from_user_name, u.profile_image_url AS from_user_image
		FROM notifications n
		LEFT JOIN users u ON n.from_user_id = u.id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &items, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int

	query := "SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false"

	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE notifications SET is_read = true WHERE id = $1", notificationID)
	return err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE notifications SET is_read = true WHERE user_id = $1", userID)
	return err
}
