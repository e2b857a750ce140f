package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (swiper_id, swiped_id, is_like, is_super_like)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		swipe.SwiperID, swipe.SwipedID, swipe.IsLike, swipe.IsSuperLike,
	).Scan(&swipe.ID, &swipe.CreatedAt)
}

func (r *swipeRepository) GetLatestBetween(ctx context.Context, swiperID, swipedID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, is_like, is_super_like, created_at
		FROM swipes
		WHERE swiper_id = $1 AND swiped_id = $2
		ORDER BY id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &swipe, query, swiperID, swipedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) GetLatestBySwiper(ctx context.Context, swiperID int) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT id, swiper_id, swiped_id, is_like, is_super_like, created_at
		FROM swipes
		WHERE swiper_id = $1
		ORDER BY id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &swipe, query, swiperID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM swipes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSwipeNotFound
	}
	return nil
}

func (r *swipeRepository) ListSwipedIDs(ctx context.Context, swiperID int) ([]int, error) {
	var ids []int
	query := `SELECT DISTINCT swiped_id FROM swipes WHERE swiper_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, swiperID)
	return ids, err
}

func (r *swipeRepository) ListLikesReceived(ctx context.Context, swipedID int, limit, offset int) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	// Latest decision per swiper only; a later dislike hides the old like.
	query := `
		SELECT id, swiper_id, swiped_id, is_like, is_super_like, created_at
		FROM (
			SELECT DISTINCT ON (swiper_id)
			       id, swiper_id, swiped_id, is_like, is_super_like, created_at
			FROM swipes
			WHERE swiped_id = $1
			ORDER BY swiper_id, id DESC
		) latest
		WHERE is_like = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &swipes, query, swipedID, limit, offset)
	return swipes, err
}
