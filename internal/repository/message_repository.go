package repository

import (
	"context"

	"github.com/emberlink/emberlink-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByMatch(ctx context.Context, matchID int) ([]*domain.Message, error)
	GetLastByMatch(ctx context.Context, matchID int) (*domain.Message, error)
	// MarkRead flags every message in the match not sent by the reader.
	MarkRead(ctx context.Context, matchID, readerID int) error
}
