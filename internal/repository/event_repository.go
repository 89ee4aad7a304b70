package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ykuzmenko/smartsend/internal/models"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

// Create appends an event to the log. Events are never updated.
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, anon_id, type, payload, timestamp)
		VALUES (:id, :anon_id, :type, :payload, :timestamp)
	`

	_, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// ListByAnonID returns a user's events, newest first.
func (r *eventRepository) ListByAnonID(ctx context.Context, anonID string, limit int) ([]models.Event, error) {
	query := `
		SELECT id, anon_id, type, payload, timestamp
		FROM events
		WHERE anon_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, anonID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// ListRecent returns the most recent events across all users.
func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	query := `
		SELECT id, anon_id, type, payload, timestamp
		FROM events
		ORDER BY timestamp DESC
		LIMIT $1
	`

	var events []models.Event
	err := r.db.SelectContext(ctx, &events, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}

	return events, nil
}

// LastByType returns a user's most recent event of the given type.
func (r *eventRepository) LastByType(ctx context.Context, anonID, eventType string) (*models.Event, error) {
	query := `
		SELECT id, anon_id, type, payload, timestamp
		FROM events
		WHERE anon_id = $1 AND type = $2
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var event models.Event
	err := r.db.GetContext(ctx, &event, query, anonID, eventType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last event by type: %w", err)
	}

	return &event, nil
}

// DeleteByAnonID removes all of a user's events (profile cascade).
func (r *eventRepository) DeleteByAnonID(ctx context.Context, anonID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE anon_id = $1", anonID)
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	return nil
}
