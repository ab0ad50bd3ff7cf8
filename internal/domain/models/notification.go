package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	FromUserID *uuid.UUID `json:"from_user_id" db:"from_user_id"`
	Type       string     `json:"type" db:"type"`
	Content    string     `json:"content" db:"content"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// NotificationFeedItem - строка выдачи уведомлений с данными отправителя
type NotificationFeedItem struct {
	Notification

	FromUserName  *string `json:"from_user_name" db:"from_user_name"`
	FromUserImage *string `json:"from_user_image" db:"from_user_image"`
}
