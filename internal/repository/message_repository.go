package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ykuzmenko/smartsend/internal/models"
)

const messageColumns = `id, anon_id, template, channel, status, product_info,
	created_at, delivered_at, read_at, clicked_at, converted, converted_at`

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

// Create inserts a new message record in its initial state.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, anon_id, template, channel, status, product_info, created_at)
		VALUES (:id, :anon_id, :template, :channel, :status, :product_info, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, message)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by its id.
func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM messages WHERE id = $1", messageColumns)

	var message models.Message
	err := r.db.GetContext(ctx, &message, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &message, nil
}

// ListByAnonID returns a user's messages, newest first.
func (r *messageRepository) ListByAnonID(ctx context.Context, anonID string, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		WHERE anon_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, messageColumns)

	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, query, anonID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListAll returns up to limit messages for full-collection scans.
func (r *messageRepository) ListAll(ctx context.Context, limit int) ([]models.Message, error) {
	query := fmt.Sprintf("SELECT %s FROM messages LIMIT $1", messageColumns)

	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list all messages: %w", err)
	}

	return messages, nil
}

// ListRecent returns the most recent messages across all users.
func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM messages
		ORDER BY created_at DESC
		LIMIT $1
	`, messageColumns)

	var messages []models.Message
	err := r.db.SelectContext(ctx, &messages, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	return messages, nil
}

// UpdateStatus advances a message to the given lifecycle status and stamps
// the matching transition timestamp.
func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status models.MessageStatus, at time.Time) error {
	var column string
	switch status {
	case models.MessageStatusDelivered:
		column = "delivered_at"
	case models.MessageStatusRead:
		column = "read_at"
	case models.MessageStatusClicked:
		column = "clicked_at"
	}

	var err error
	if column == "" {
		_, err = r.db.ExecContext(ctx, "UPDATE messages SET status = $2 WHERE id = $1", id, status)
	} else {
		query := fmt.Sprintf("UPDATE messages SET status = $2, %s = $3 WHERE id = $1", column)
		_, err = r.db.ExecContext(ctx, query, id, status, at)
	}
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	return nil
}

// MarkConverted sets the conversion flag regardless of lifecycle status.
func (r *messageRepository) MarkConverted(ctx context.Context, id string, at time.Time) error {
	query := "UPDATE messages SET converted = TRUE, converted_at = $2 WHERE id = $1"

	_, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark message converted: %w", err)
	}

	return nil
}

// DeleteByAnonID removes all of a user's messages (profile cascade).
func (r *messageRepository) DeleteByAnonID(ctx context.Context, anonID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE anon_id = $1", anonID)
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	return nil
}
