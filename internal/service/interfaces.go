package service

import (
	"context"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

type ProfileService interface {
	Upsert(ctx context.Context, req ProfileUpsert) (*models.Profile, error)
	GetOrCreate(ctx context.Context, anonID string) (*models.Profile, error)
	DeleteCascade(ctx context.Context, anonID string) error
}

type EventService interface {
	Append(ctx context.Context, anonID, eventType string, payload models.JSONMap) (string, error)
	List(ctx context.Context, anonID string) ([]models.Event, error)
}

type MessageService interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	List(ctx context.Context, anonID string) ([]models.Message, error)
	TrackConversion(ctx context.Context, messageID string) (bool, error)
	TriggerAbandonedCart(ctx context.Context, anonID string) (*SendResult, error)
}

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
}

type AnalyticsService interface {
	Summary(ctx context.Context) (*models.Analytics, error)
	RecentActivity(ctx context.Context) ([]models.LogEntry, error)
}

type AdminService interface {
	Settings() settings.Flags
	UpdateSettings(update settings.Update) settings.Flags
}

type HealthService interface {
	GetHealth() *HealthStatus
}
