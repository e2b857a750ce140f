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

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, email, password_hash, oauth_provider, name, birth_date, gender,
	orientation, bio, interests, photos, tier, is_onboarding_complete,
	last_online_at, created_at, updated_at
`

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.OAuthProvider,
		&user.Name, &user.BirthDate, &user.Gender, &user.Orientation,
		&user.Bio, pq.Array(&user.Interests), pq.Array(&user.Photos),
		&user.Tier, &user.IsOnboardingComplete, &user.LastOnlineAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			email, password_hash, oauth_provider, name, birth_date, gender,
			orientation, bio, interests, photos, tier, is_onboarding_complete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Email, user.PasswordHash, user.OAuthProvider, user.Name,
		user.BirthDate, user.Gender, user.Orientation, user.Bio,
		pq.Array(user.Interests), pq.Array(user.Photos), user.Tier,
		user.IsOnboardingComplete,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, birth_date = $2, gender = $3, orientation = $4,
		    bio = $5, interests = $6, photos = $7,
		    is_onboarding_complete = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Name, user.BirthDate, user.Gender, user.Orientation, user.Bio,
		pq.Array(user.Interests), pq.Array(user.Photos),
		user.IsOnboardingComplete, user.ID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) UpdateTier(ctx context.Context, userID int, tier string) error {
	query := `UPDATE users SET tier = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, tier, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListCandidates(ctx context.Context, userID int, excludeIDs []int, limit int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> $1
		  AND id <> ALL($2)
		  AND is_onboarding_complete = true
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(excludeIDs), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.OAuthProvider,
			&user.Name, &user.BirthDate, &user.Gender, &user.Orientation,
			&user.Bio, pq.Array(&user.Interests), pq.Array(&user.Photos),
			&user.Tier, &user.IsOnboardingComplete, &user.LastOnlineAt,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
