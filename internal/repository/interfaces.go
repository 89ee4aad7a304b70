package repository

import (
	"context"
	"time"

	"github.com/ykuzmenko/smartsend/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Profile() ProfileRepository
	Event() EventRepository
	Message() MessageRepository
	Product() ProductRepository
}

// ProfileRepository stores per-anonymous-user consent and preferences.
type ProfileRepository interface {
	GetByAnonID(ctx context.Context, anonID string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, anonID string, update models.ProfileUpdate) error
	Delete(ctx context.Context, anonID string) error
	CountOptedOut(ctx context.Context) (int, error)
}

// EventRepository is the append-only behavioral event log.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListByAnonID(ctx context.Context, anonID string, limit int) ([]models.Event, error)
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
	LastByType(ctx context.Context, anonID, eventType string) (*models.Event, error)
	DeleteByAnonID(ctx context.Context, anonID string) error
}

// MessageRepository stores outbound message records.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	ListByAnonID(ctx context.Context, anonID string, limit int) ([]models.Message, error)
	ListAll(ctx context.Context, limit int) ([]models.Message, error)
	ListRecent(ctx context.Context, limit int) ([]models.Message, error)
	UpdateStatus(ctx context.Context, id string, status models.MessageStatus, at time.Time) error
	MarkConverted(ctx context.Context, id string, at time.Time) error
	DeleteByAnonID(ctx context.Context, anonID string) error
}

// ProductRepository stores the demo product catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	CreateBatch(ctx context.Context, products []models.Product) error
}
