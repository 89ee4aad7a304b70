package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ykuzmenko/smartsend/internal/repository"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusUnhealthy = "unhealthy"

	dependencyConnected    = "connected"
	dependencyDisconnected = "disconnected"
)

type healthService struct {
	repo        repository.Repository
	redisClient *redis.Client
}

func NewHealthService(repo repository.Repository, redisClient *redis.Client) HealthService {
	return &healthService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// GetHealth reports dependency connectivity. The service is unhealthy
// when either the database or Redis is unreachable.
func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status:         healthStatusHealthy,
		DatabaseStatus: dependencyConnected,
		RedisStatus:    dependencyConnected,
	}

	if err := s.repo.Ping(); err != nil {
		status.DatabaseStatus = dependencyDisconnected
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		status.RedisStatus = dependencyDisconnected
	}

	if status.DatabaseStatus != dependencyConnected || status.RedisStatus != dependencyConnected {
		status.Status = healthStatusUnhealthy
	}

	return status
}
