package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

func insertTestProfile(t *testing.T, repo repository.ProfileRepository, anonID string, optIn bool, channel string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		AnonID:    anonID,
		OptIn:     optIn,
		Channel:   sql.NullString{String: channel, Valid: channel != ""},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), profile))

	return profile
}

func insertTestEvent(t *testing.T, repo repository.EventRepository, anonID, eventType string, at time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:        uuid.New().String(),
		AnonID:    anonID,
		Type:      eventType,
		Payload:   models.JSONMap{"source": "test"},
		Timestamp: at,
	}
	require.NoError(t, repo.Create(context.Background(), event))

	return event
}

func insertTestMessage(t *testing.T, repo repository.MessageRepository, anonID, channel string, at time.Time) *models.Message {
	t.Helper()

	message := &models.Message{
		ID:        uuid.New().String(),
		AnonID:    anonID,
		Template:  "promo",
		Channel:   channel,
		Status:    models.MessageStatusSent,
		CreatedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), message))

	return message
}

func messageStatus(t *testing.T, db *sqlx.DB, id string) models.MessageStatus {
	t.Helper()

	var status models.MessageStatus
	require.NoError(t, db.Get(&status, "SELECT status FROM messages WHERE id = $1", id))

	return status
}
