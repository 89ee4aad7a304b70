package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/lifecycle"
	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
	"github.com/ykuzmenko/smartsend/internal/routing"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

const (
	messageListLimit = 100

	abandonedCartTemplate = "abandoned_cart"
	addToCartEventType    = "add_to_cart"

	channelCacheTTL = 24 * time.Hour
)

type messageService struct {
	repo        repository.Repository
	settings    *settings.Store
	simulator   *lifecycle.Simulator
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewMessageService(
	repo repository.Repository,
	settingsStore *settings.Store,
	simulator *lifecycle.Simulator,
	redisClient *redis.Client,
	logger *zap.Logger,
) MessageService {
	return &messageService{
		repo:        repo,
		settings:    settingsStore,
		simulator:   simulator,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Send evaluates the routing policy against the user's profile and the
// current admin settings, creates the message in its initial sent state
// and spawns the delivery simulation. Policy rejections create nothing.
func (s *messageService) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	profile, err := s.repo.Profile().GetByAnonID(ctx, req.AnonID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	channel, err := routing.Resolve(profile, req.ForceChannel, s.settings.Snapshot())
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ID:          uuid.New().String(),
		AnonID:      req.AnonID,
		Template:    req.Template,
		Channel:     channel,
		Status:      models.MessageStatusSent,
		ProductInfo: req.ProductInfo,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Message().Create(ctx, message); err != nil {
		return nil, err
	}

	s.simulator.Spawn(message.ID)
	s.cacheChannel(ctx, message.ID, channel)

	s.logger.Info("Message created",
		zap.String("message_id", message.ID),
		zap.String("anon_id", req.AnonID),
		zap.String("template", req.Template),
		zap.String("channel", channel))

	return &SendResult{MessageID: message.ID, Channel: channel}, nil
}

// List returns a user's messages, newest first.
func (s *messageService) List(ctx context.Context, anonID string) ([]models.Message, error) {
	return s.repo.Message().ListByAnonID(ctx, anonID, messageListLimit)
}

// TrackConversion flags a message as converted. The flag is independent
// of lifecycle status: a message can convert before it is delivered. An
// unknown id is a soft failure, not an error.
func (s *messageService) TrackConversion(ctx context.Context, messageID string) (bool, error) {
	_, err := s.repo.Message().GetByID(ctx, messageID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.repo.Message().MarkConverted(ctx, messageID, time.Now().UTC()); err != nil {
		return false, err
	}

	return true, nil
}

// TriggerAbandonedCart synthesizes an abandoned-cart send from the user's
// most recent add_to_cart event.
func (s *messageService) TriggerAbandonedCart(ctx context.Context, anonID string) (*SendResult, error) {
	event, err := s.repo.Event().LastByType(ctx, anonID, addToCartEventType)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoCartEvents
	}
	if err != nil {
		return nil, err
	}

	return s.Send(ctx, SendRequest{
		AnonID:      anonID,
		Template:    abandonedCartTemplate,
		ProductInfo: event.Payload,
	})
}

// cacheChannel stores the resolved channel in Redis, best effort.
func (s *messageService) cacheChannel(ctx context.Context, messageID, channel string) {
	key := fmt.Sprintf("message:%s", messageID)
	if err := s.redisClient.Set(ctx, key, channel, channelCacheTTL).Err(); err != nil {
		s.logger.Warn("Failed to cache message channel",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
