package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ykuzmenko/smartsend/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// GetByAnonID retrieves a profile by its anonymous id.
func (r *profileRepository) GetByAnonID(ctx context.Context, anonID string) (*models.Profile, error) {
	query := `
		SELECT anon_id, phone_number, phone_hash, masked_phone, opt_in, channel, created_at
		FROM profiles
		WHERE anon_id = $1
	`

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, anonID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// Create inserts a new profile.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (anon_id, phone_number, phone_hash, masked_phone, opt_in, channel, created_at)
		VALUES (:anon_id, :phone_number, :phone_hash, :masked_phone, :opt_in, :channel, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Update applies a partial update; only the non-nil fields change.
func (r *profileRepository) Update(ctx context.Context, anonID string, update models.ProfileUpdate) error {
	var (
		sets []string
		args []interface{}
	)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PhoneNumber != nil {
		add("phone_number", *update.PhoneNumber)
	}
	if update.PhoneHash != nil {
		add("phone_hash", *update.PhoneHash)
	}
	if update.MaskedPhone != nil {
		add("masked_phone", *update.MaskedPhone)
	}
	if update.OptIn != nil {
		add("opt_in", *update.OptIn)
	}
	if update.Channel != nil {
		add("channel", *update.Channel)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, anonID)
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE anon_id = $%d",
		strings.Join(sets, ", "), len(args))

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// Delete removes a profile. Deleting a missing profile is not an error.
func (r *profileRepository) Delete(ctx context.Context, anonID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM profiles WHERE anon_id = $1", anonID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}

// CountOptedOut returns the number of profiles without messaging consent.
func (r *profileRepository) CountOptedOut(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM profiles WHERE opt_in = FALSE")
	if err != nil {
		return 0, fmt.Errorf("failed to count opted-out profiles: %w", err)
	}

	return count, nil
}
