package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type checkInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) repository.CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) ListEstablishments(ctx context.Context, category string) ([]*domain.Establishment, error) {
	var establishments []*domain.Establishment
	query := `
		SELECT id, name, category, address, lat, lon, created_at
		FROM establishments
	`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &establishments, query, args...)
	return establishments, err
}

func (r *checkInRepository) GetEstablishment(ctx context.Context, id int) (*domain.Establishment, error) {
	var establishment domain.Establishment
	query := `
		SELECT id, name, category, address, lat, lon, created_at
		FROM establishments WHERE id = $1
	`
	err := r.db.GetContext(ctx, &establishment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEstablishmentNotFound
		}
		return nil, err
	}
	return &establishment, nil
}

func (r *checkInRepository) CreateCheckIn(ctx context.Context, checkIn *domain.CheckIn) error {
	query := `
		INSERT INTO check_ins (user_id, establishment_id, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		checkIn.UserID, checkIn.EstablishmentID, checkIn.IsActive,
	).Scan(&checkIn.ID, &checkIn.CreatedAt)
}

func (r *checkInRepository) DeactivateForUser(ctx context.Context, userID int) error {
	query := `UPDATE check_ins SET is_active = false WHERE user_id = $1 AND is_active = true`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *checkInRepository) GetActiveByUser(ctx context.Context, userID int) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	query := `
		SELECT id, user_id, establishment_id, is_active, created_at
		FROM check_ins
		WHERE user_id = $1 AND is_active = true
		ORDER BY id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &checkIn, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) ListActiveByEstablishment(ctx context.Context, establishmentID int) ([]*domain.CheckIn, error) {
	var checkIns []*domain.CheckIn
	query := `
		SELECT id, user_id, establishment_id, is_active, created_at
		FROM check_ins
		WHERE establishment_id = $1 AND is_active = true
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &checkIns, query, establishmentID)
	return checkIns, err
}
