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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, bio, city, interests, photos,
			location_lat, location_lon
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Bio, profile.City,
		pq.Array(profile.Interests), pq.Array(profile.Photos),
		profile.LocationLat, profile.LocationLon,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, display_name, bio, city, interests, photos,
		       location_lat, location_lon, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.DisplayName, &profile.Bio,
		&profile.City, pq.Array(&profile.Interests), pq.Array(&profile.Photos),
		&profile.LocationLat, &profile.LocationLon,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $1, bio = $2, city = $3, interests = $4,
		    photos = $5, location_lat = $6, location_lon = $7,
		    updated_at = NOW()
		WHERE user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.DisplayName, profile.Bio, profile.City,
		pq.Array(profile.Interests), pq.Array(profile.Photos),
		profile.LocationLat, profile.LocationLon, profile.UserID,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrProfileNotFound
	}
	return err
}

func (r *profileRepository) UpdatePhotos(ctx context.Context, userID int, photos []string) error {
	query := `UPDATE profiles SET photos = $1, updated_at = NOW() WHERE user_id = $2`
	_, err := r.db.ExecContext(ctx, query, pq.Array(photos), userID)
	return err
}
