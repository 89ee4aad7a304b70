package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/config"
	"github.com/ykuzmenko/smartsend/internal/lifecycle"
	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
	"github.com/ykuzmenko/smartsend/internal/repository/mocks"
	"github.com/ykuzmenko/smartsend/internal/routing"
	"github.com/ykuzmenko/smartsend/internal/service"
	"github.com/ykuzmenko/smartsend/internal/settings"
)

// newTestMessageService wires a message service against mocked storage.
// Simulator delays are set to an hour so no lifecycle transition fires
// while a test is running, and Redis points at a non-existent server so
// the channel cache degrades to a logged warning.
func newTestMessageService(store *settings.Store, repo repository.Repository, msgRepo repository.MessageRepository) service.MessageService {
	logger := zap.NewNop()

	simulator := lifecycle.NewSimulator(config.SimulatorConfig{
		DeliveredDelayMs: 3600000,
		ReadDelayMs:      3600000,
		ClickDelayMs:     3600000,
		ClickProbability: 0.7,
	}, msgRepo, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:9999", // Non-existent server for testing
	})

	return service.NewMessageService(repo, store, simulator, redisClient, logger)
}

func optedInProfile(channel string) *models.Profile {
	return &models.Profile{
		AnonID:    "anon-1",
		OptIn:     true,
		Channel:   sql.NullString{String: channel, Valid: channel != ""},
		CreatedAt: time.Now().UTC(),
	}
}

func TestMessageService_Send_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

	mockRepo.EXPECT().Profile().Return(mockProfileRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	mockProfileRepo.EXPECT().
		GetByAnonID(gomock.Any(), "anon-1").
		Return(optedInProfile(models.ChannelWhatsapp), nil)

	var created *models.Message
	mockMessageRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *models.Message) error {
			created = msg
			return nil
		})

	svc := newTestMessageService(settings.NewStore(), mockRepo, mockMessageRepo)

	result, err := svc.Send(context.Background(), service.SendRequest{
		AnonID:      "anon-1",
		Template:    "promo",
		ProductInfo: models.JSONMap{"name": "Smart Watch"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelWhatsapp, result.Channel)
	assert.NotEmpty(t, result.MessageID)

	require.NotNil(t, created)
	assert.Equal(t, result.MessageID, created.ID)
	assert.Equal(t, "promo", created.Template)
	assert.Equal(t, models.MessageStatusSent, created.Status)
	assert.Equal(t, models.JSONMap{"name": "Smart Watch"}, created.ProductInfo)
}

func TestMessageService_Send_WhatsappFallsBackToSMS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

	mockRepo.EXPECT().Profile().Return(mockProfileRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	mockProfileRepo.EXPECT().
		GetByAnonID(gomock.Any(), "anon-1").
		Return(optedInProfile(models.ChannelWhatsapp), nil)

	mockMessageRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil)

	store := settings.NewStore()
	off := false
	store.Apply(settings.Update{WhatsappActive: &off})

	svc := newTestMessageService(store, mockRepo, mockMessageRepo)

	result, err := svc.Send(context.Background(), service.SendRequest{
		AnonID:   "anon-1",
		Template: "promo",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelSMS, result.Channel)
}

func TestMessageService_Send_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		profile     *models.Profile
		profileErr  error
		setup       func(store *settings.Store)
		expectedErr error
	}{
		{
			name:        "profile not found",
			profileErr:  repository.ErrNotFound,
			expectedErr: routing.ErrNotOptedIn,
		},
		{
			name: "not opted in",
			profile: &models.Profile{
				AnonID: "anon-1",
				OptIn:  false,
			},
			expectedErr: routing.ErrNotOptedIn,
		},
		{
			name:    "sms preferred but inactive",
			profile: optedInProfile(models.ChannelSMS),
			setup: func(store *settings.Store) {
				off := false
				store.Apply(settings.Update{SMSActive: &off})
			},
			expectedErr: routing.ErrNoActiveChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
			mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

			mockRepo.EXPECT().Profile().Return(mockProfileRepo).AnyTimes()
			mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

			mockProfileRepo.EXPECT().
				GetByAnonID(gomock.Any(), "anon-1").
				Return(tt.profile, tt.profileErr)

			// A rejected send must create no message record.
			mockMessageRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			store := settings.NewStore()
			if tt.setup != nil {
				tt.setup(store)
			}

			svc := newTestMessageService(store, mockRepo, mockMessageRepo)

			result, err := svc.Send(context.Background(), service.SendRequest{
				AnonID:   "anon-1",
				Template: "promo",
			})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestMessageService_Send_ForceChannelIgnoresInstagramFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

	mockRepo.EXPECT().Profile().Return(mockProfileRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	mockProfileRepo.EXPECT().
		GetByAnonID(gomock.Any(), "anon-1").
		Return(optedInProfile(models.ChannelWhatsapp), nil)

	mockMessageRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil)

	store := settings.NewStore()
	off := false
	store.Apply(settings.Update{InstagramActive: &off})

	svc := newTestMessageService(store, mockRepo, mockMessageRepo)

	result, err := svc.Send(context.Background(), service.SendRequest{
		AnonID:       "anon-1",
		Template:     "promo",
		ForceChannel: models.ChannelInstagram,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelInstagram, result.Channel)
}

func TestMessageService_TrackConversion(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(mockMessageRepo *mocks.MockMessageRepository)
		expectedOK    bool
		expectedError string
	}{
		{
			name: "known message converts",
			setupMocks: func(mockMessageRepo *mocks.MockMessageRepository) {
				mockMessageRepo.EXPECT().
					GetByID(gomock.Any(), "msg-1").
					Return(&models.Message{ID: "msg-1", Status: models.MessageStatusSent}, nil)
				mockMessageRepo.EXPECT().
					MarkConverted(gomock.Any(), "msg-1", gomock.Any()).
					Return(nil)
			},
			expectedOK: true,
		},
		{
			name: "unknown message is a soft failure",
			setupMocks: func(mockMessageRepo *mocks.MockMessageRepository) {
				mockMessageRepo.EXPECT().
					GetByID(gomock.Any(), "msg-1").
					Return(nil, repository.ErrNotFound)
				mockMessageRepo.EXPECT().
					MarkConverted(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			expectedOK: false,
		},
		{
			name: "storage failure",
			setupMocks: func(mockMessageRepo *mocks.MockMessageRepository) {
				mockMessageRepo.EXPECT().
					GetByID(gomock.Any(), "msg-1").
					Return(nil, errors.New("connection refused"))
			},
			expectedOK:    false,
			expectedError: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockRepository(ctrl)
			mockMessageRepo := mocks.NewMockMessageRepository(ctrl)
			mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

			tt.setupMocks(mockMessageRepo)

			svc := newTestMessageService(settings.NewStore(), mockRepo, mockMessageRepo)

			ok, err := svc.TrackConversion(context.Background(), "msg-1")
			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMessageService_TriggerAbandonedCart_NoCartEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockEventRepo := mocks.NewMockEventRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

	mockRepo.EXPECT().Event().Return(mockEventRepo).AnyTimes()

	mockEventRepo.EXPECT().
		LastByType(gomock.Any(), "anon-1", "add_to_cart").
		Return(nil, repository.ErrNotFound)

	svc := newTestMessageService(settings.NewStore(), mockRepo, mockMessageRepo)

	result, err := svc.TriggerAbandonedCart(context.Background(), "anon-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, service.ErrNoCartEvents)
}

func TestMessageService_TriggerAbandonedCart_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)
	mockProfileRepo := mocks.NewMockProfileRepository(ctrl)
	mockEventRepo := mocks.NewMockEventRepository(ctrl)
	mockMessageRepo := mocks.NewMockMessageRepository(ctrl)

	mockRepo.EXPECT().Profile().Return(mockProfileRepo).AnyTimes()
	mockRepo.EXPECT().Event().Return(mockEventRepo).AnyTimes()
	mockRepo.EXPECT().Message().Return(mockMessageRepo).AnyTimes()

	cartPayload := models.JSONMap{"name": "Yoga Mat", "price": 39.99}
	mockEventRepo.EXPECT().
		LastByType(gomock.Any(), "anon-1", "add_to_cart").
		Return(&models.Event{
			ID:      "evt-1",
			AnonID:  "anon-1",
			Type:    "add_to_cart",
			Payload: cartPayload,
		}, nil)

	mockProfileRepo.EXPECT().
		GetByAnonID(gomock.Any(), "anon-1").
		Return(optedInProfile(models.ChannelWhatsapp), nil)

	var created *models.Message
	mockMessageRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *models.Message) error {
			created = msg
			return nil
		})

	svc := newTestMessageService(settings.NewStore(), mockRepo, mockMessageRepo)

	result, err := svc.TriggerAbandonedCart(context.Background(), "anon-1")
	require.NoError(t, err)

	assert.Equal(t, models.ChannelWhatsapp, result.Channel)
	require.NotNil(t, created)
	assert.Equal(t, "abandoned_cart", created.Template)
	assert.Equal(t, cartPayload, created.ProductInfo)
}
