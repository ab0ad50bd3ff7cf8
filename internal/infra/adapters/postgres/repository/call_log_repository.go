package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stuchat/backend/internal/domain/models"
)

type CallLogRepository interface {
	Create(ctx context.Context, log *models.CallLog) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.CallLog, error)
}

type callLogRepo struct {
	db *sqlx.DB
}

func NewCallLogRepo(db *sqlx.DB) CallLogRepository {
	return &callLogRepo{db: db}
}

func (r *callLogRepo) Create(ctx context.Context, log *models.CallLog) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO call_logs (id, caller_id, receiver_id, call_type, status) VALUES ($1, $2, $3, $4, $5)",
		log.ID,
		log.CallerID,
		log.ReceiverID,
		log.CallType,
		log.Status,
	)

	return err
}

func (r *callLogRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE call_logs SET status = $1, updated_at = $2 WHERE id = $3",
		status,
		time.Now(),
		id,
	)

	return err
}

func (r *callLogRepo) GetByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.CallLog, error) {
	logs := make([]models.CallLog, 0, limit)

	query := `
		SELECT id, caller_id, receiver_id, call_type, status, created_at, updated_at
		FROM call_logs
		WHERE caller_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &logs, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return logs, nil
}
