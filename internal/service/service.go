// Package service implements the application's business logic on top of
// the repository layer.
package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/config"
	"github.com/ykuzmenko/smartsend/internal/lifecycle"
	"github.com/ykuzmenko/smartsend/internal/repository"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

type Service struct {
	Profile   ProfileService
	Event     EventService
	Message   MessageService
	Product   ProductService
	Analytics AnalyticsService
	Admin     AdminService
	Health    HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	adminStore := settings.NewStore()
	simulator := lifecycle.NewSimulator(cfg.Simulator, repo.Message(), logger)

	return &Service{
		Profile:   NewProfileService(repo, logger),
		Event:     NewEventService(repo),
		Message:   NewMessageService(repo, adminStore, simulator, redisClient, logger),
		Product:   NewProductService(repo, logger),
		Analytics: NewAnalyticsService(repo),
		Admin:     NewAdminService(adminStore),
		Health:    NewHealthService(repo, redisClient),
	}
}
