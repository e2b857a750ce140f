package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, content, image_url, is_read)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.MatchID, message.SenderID, message.Content,
		message.ImageURL, message.IsRead,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT id, match_id, sender_id, content, image_url, is_read, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID)
	return messages, err
}

func (r *messageRepository) GetLastByMatch(ctx context.Context, matchID int) (*domain.Message, error) {
	var message domain.Message
	query := `
		SELECT id, match_id, sender_id, content, image_url, is_read, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &message, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, matchID, readerID int) error {
	query := `
		UPDATE messages SET is_read = true
		WHERE match_id = $1 AND sender_id <> $2 AND is_read = false
	`
	_, err := r.db.ExecContext(ctx, query, matchID, readerID)
	return err
}
