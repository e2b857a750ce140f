package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
)

// Relay fans a frame out to every live connection joined to a match.
// Implementations must not block; delivery is best effort and a send
// failure only costs the realtime notification, never the stored row.
type Relay interface {
	BroadcastToMatch(matchID int, frameType string, data interface{})
}

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	relay       Relay
	log         *slog.Logger
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	matchRepo repository.MatchRepository,
	relay Relay,
	log *slog.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		messageRepo: messageRepo,
		matchRepo:   matchRepo,
		relay:       relay,
		log:         log,
	}
}

// SendMessageRequest is the REST payload; the ws handler builds the same
// request from send_message frames. MatchID comes from the URL path on
// the REST route, so it carries no binding tag.
type SendMessageRequest struct {
	MatchID  int     `json:"match_id"`
	Content  string  `json:"content" binding:"required"`
	ImageURL *string `json:"image_url"`
}

// SendMessage persists the message, then broadcasts it. Persistence always
// comes first: a relay failure never rolls the row back.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID int, req *SendMessageRequest) (*domain.Message, error) {
	match, err := uc.matchRepo.GetByID(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(senderID) {
		return nil, domain.ErrNotMatchParticipant
	}
	if !match.IsActive {
		return nil, domain.ErrMatchNotFound
	}

	message := &domain.Message{
		MatchID:  req.MatchID,
		SenderID: senderID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	if uc.relay != nil {
		uc.relay.BroadcastToMatch(message.MatchID, "new_message", message)
	}
	return message, nil
}

// GetHistory returns the full ordered message log for a match and marks
// the counterpart's messages read. Clients that missed broadcasts while
// disconnected recover through this call.
func (uc *ChatUseCase) GetHistory(ctx context.Context, userID, matchID int) ([]*domain.Message, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotMatchParticipant
	}

	messages, err := uc.messageRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if err := uc.messageRepo.MarkRead(ctx, matchID, userID); err != nil {
		uc.log.Warn("failed to mark messages read", "match_id", matchID, "err", err)
	}
	return messages, nil
}
