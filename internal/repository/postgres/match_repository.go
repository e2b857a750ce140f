package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	user1ID, user2ID := domain.NormalizePair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id, is_active, icebreakers)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, user1ID, user2ID, match.IsActive, pq.Array(match.Icebreakers)).
		Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrMatchExists
		}
		return err
	}

	match.User1ID = user1ID
	match.User2ID = user2ID
	return nil
}

func (r *matchRepository) scanMatch(row *sql.Row) (*domain.Match, error) {
	var match domain.Match
	err := row.Scan(
		&match.ID, &match.User1ID, &match.User2ID, &match.IsActive,
		pq.Array(&match.Icebreakers), &match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, is_active, icebreakers, created_at
		FROM matches WHERE id = $1
	`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	user1ID, user2ID = domain.NormalizePair(user1ID, user2ID)
	query := `
		SELECT id, user1_id, user2_id, is_active, icebreakers, created_at
		FROM matches WHERE user1_id = $1 AND user2_id = $2
	`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, user1ID, user2ID))
}

func (r *matchRepository) GetActiveMatches(ctx context.Context, userID int) ([]*domain.Match, error) {
	query := `
		SELECT id, user1_id, user2_id, is_active, icebreakers, created_at
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = true
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		var match domain.Match
		if err := rows.Scan(
			&match.ID, &match.User1ID, &match.User2ID, &match.IsActive,
			pq.Array(&match.Icebreakers), &match.CreatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &match)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id int, isActive bool) error {
	query := `UPDATE matches SET is_active = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, isActive, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) UpdateIcebreakers(ctx context.Context, matchID int, icebreakers []string) error {
	query := `UPDATE matches SET icebreakers = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, pq.Array(icebreakers), matchID)
	return err
}
