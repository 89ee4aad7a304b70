package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

const (
	// analyticsScanLimit bounds the full-collection scan. There is no
	// caching and no incremental counters; every call recomputes.
	analyticsScanLimit = 10000

	activityLogLimit = 50
)

type analyticsService struct {
	repo repository.Repository
}

func NewAnalyticsService(repo repository.Repository) AnalyticsService {
	return &analyticsService{
		repo: repo,
	}
}

// Summary recomputes the funnel counts from the message collection and
// the opted-out count from the profile store. Later lifecycle states are
// nested in earlier ones, so delivered >= read >= clicks always holds.
func (s *analyticsService) Summary(ctx context.Context) (*models.Analytics, error) {
	messages, err := s.repo.Message().ListAll(ctx, analyticsScanLimit)
	if err != nil {
		return nil, err
	}

	analytics := &models.Analytics{
		Sent: len(messages),
	}

	for _, msg := range messages {
		switch msg.Status {
		case models.MessageStatusDelivered:
			analytics.Delivered++
		case models.MessageStatusRead:
			analytics.Delivered++
			analytics.Read++
		case models.MessageStatusClicked:
			analytics.Delivered++
			analytics.Read++
			analytics.Clicks++
		}
		if msg.Converted {
			analytics.Conversions++
		}
	}

	optOuts, err := s.repo.Profile().CountOptedOut(ctx)
	if err != nil {
		return nil, err
	}
	analytics.OptOuts = optOuts

	return analytics, nil
}

// RecentActivity merges the most recent events and messages into one
// feed, newest first, truncated to activityLogLimit entries.
func (s *analyticsService) RecentActivity(ctx context.Context) ([]models.LogEntry, error) {
	events, err := s.repo.Event().ListRecent(ctx, activityLogLimit)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.Message().ListRecent(ctx, activityLogLimit)
	if err != nil {
		return nil, err
	}

	logs := make([]models.LogEntry, 0, len(events)+len(messages))
	for _, event := range events {
		logs = append(logs, models.LogEntry{
			Type:        "event",
			Timestamp:   event.Timestamp,
			Description: fmt.Sprintf("Event: %s", event.Type),
			Data:        event,
		})
	}
	for _, msg := range messages {
		logs = append(logs, models.LogEntry{
			Type:        "message",
			Timestamp:   msg.CreatedAt,
			Description: fmt.Sprintf("Message %s: %s via %s", msg.Status, msg.Template, msg.Channel),
			Data:        msg,
		})
	}

	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})

	if len(logs) > activityLogLimit {
		logs = logs[:activityLogLimit]
	}

	return logs, nil
}
