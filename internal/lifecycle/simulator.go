// Package lifecycle advances outbound messages through the simulated
// delivery sequence (sent -> delivered -> read -> clicked), standing in
// for a real messaging provider's webhooks.
package lifecycle

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/config"
	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

// Simulator drives message status transitions on wall-clock delays.
// Each simulation is a detached goroutine: no handle is retained, so
// in-flight runs cannot be awaited or cancelled and process shutdown
// abandons them mid-sequence. Downstream analytics count a message at
// whatever status it last reached.
type Simulator struct {
	repo   repository.MessageRepository
	logger *zap.Logger

	deliveredDelay time.Duration
	readDelay      time.Duration
	clickDelay     time.Duration
	clickProb      float64

	// rand returns a sample in [0, 1); injectable so tests can force
	// either side of the click branch.
	rand func() float64
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithRand replaces the pseudo-random source used for the click branch.
func WithRand(f func() float64) Option {
	return func(s *Simulator) {
		s.rand = f
	}
}

// NewSimulator creates a simulator with delays taken from configuration.
func NewSimulator(cfg config.SimulatorConfig, repo repository.MessageRepository, logger *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		repo:           repo,
		logger:         logger,
		deliveredDelay: time.Duration(cfg.DeliveredDelayMs) * time.Millisecond,
		readDelay:      time.Duration(cfg.ReadDelayMs) * time.Millisecond,
		clickDelay:     time.Duration(cfg.ClickDelayMs) * time.Millisecond,
		clickProb:      cfg.ClickProbability,
		rand:           rand.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Spawn starts the delivery simulation for a message and returns
// immediately; the caller observes only the initial sent state.
func (s *Simulator) Spawn(messageID string) {
	go s.run(messageID)
}

// run executes one full simulation. Multiple runs for different messages
// proceed independently with no ordering guarantee between them.
func (s *Simulator) run(messageID string) {
	// The run outlives the originating request, so it cannot use the
	// request context.
	ctx := context.Background()

	time.Sleep(s.deliveredDelay)
	if !s.advance(ctx, messageID, models.MessageStatusDelivered) {
		return
	}

	time.Sleep(s.readDelay)
	if !s.advance(ctx, messageID, models.MessageStatusRead) {
		return
	}

	if s.rand() < s.clickProb {
		time.Sleep(s.clickDelay)
		s.advance(ctx, messageID, models.MessageStatusClicked)
	}
}

// advance records a single transition. A storage failure aborts this one
// simulation; nothing else observes the task, so the error is logged.
func (s *Simulator) advance(ctx context.Context, messageID string, status models.MessageStatus) bool {
	if err := s.repo.UpdateStatus(ctx, messageID, status, time.Now().UTC()); err != nil {
		s.logger.Error("Failed to advance message lifecycle",
			zap.String("message_id", messageID),
			zap.String("status", string(status)),
			zap.Error(err))
		return false
	}

	return true
}
