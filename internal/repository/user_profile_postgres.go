package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// UserProfileRepository defines the interface for user profile persistence.
// Profiles reference the identity-provider account and never carry
// credential material.
type UserProfileRepository interface {
	Create(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*entity.UserProfile, error)
}

var _ UserProfileRepository = &UserProfilePostgres{}

// UserProfilePostgres implements UserProfileRepository using PostgreSQL
type UserProfilePostgres struct {
	db *pgxpool.Pool
}

func NewUserProfilePostgres(db *pgxpool.Pool) *UserProfilePostgres {
	return &UserProfilePostgres{
		db: db,
	}
}

func (r *UserProfilePostgres) Create(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error) {
	created := profile

	err := r.db.QueryRow(ctx, `
		INSERT INTO user_profiles (account_id, name, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		profile.AccountID,
		profile.Name,
		profile.Email,
		profile.Role,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: create user profile: %v", entity.ErrPersistenceWrite, err)
	}

	return &created, nil
}

func (r *UserProfilePostgres) GetByAccountID(ctx context.Context, accountID string) (*entity.UserProfile, error) {
	var profile entity.UserProfile

	err := r.db.QueryRow(ctx, `
		SELECT id, account_id, name, email, role, created_at
		FROM user_profiles
		WHERE account_id = $1`,
		accountID,
	).Scan(
		&profile.ID,
		&profile.AccountID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}

	return &profile, nil
}
