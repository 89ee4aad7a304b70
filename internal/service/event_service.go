package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

const eventListLimit = 100

type eventService struct {
	repo repository.Repository
}

func NewEventService(repo repository.Repository) EventService {
	return &eventService{
		repo: repo,
	}
}

// Append records a behavioral event. The payload is stored opaque and
// never interpreted.
func (s *eventService) Append(ctx context.Context, anonID, eventType string, payload models.JSONMap) (string, error) {
	event := &models.Event{
		ID:        uuid.New().String(),
		AnonID:    anonID,
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Event().Create(ctx, event); err != nil {
		return "", err
	}

	return event.ID, nil
}

// List returns a user's events, newest first.
func (s *eventService) List(ctx context.Context, anonID string) ([]models.Event, error) {
	return s.repo.Event().ListByAnonID(ctx, anonID, eventListLimit)
}
