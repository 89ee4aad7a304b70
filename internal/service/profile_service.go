package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ykuzmenko/smartsend/internal/models"
	"github.com/ykuzmenko/smartsend/internal/phone"
	"github.com/ykuzmenko/smartsend/internal/repository"
)

type profileService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewProfileService(repo repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{
		repo:   repo,
		logger: logger,
	}
}

// Upsert merges the provided fields into the profile, creating it when
// absent. A phone number also derives the one-way hash and the masked
// display form. The creation timestamp is set once and never changed.
func (s *profileService) Upsert(ctx context.Context, req ProfileUpsert) (*models.Profile, error) {
	existing, err := s.repo.Profile().GetByAnonID(ctx, req.AnonID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if existing == nil {
		profile := &models.Profile{
			AnonID:    req.AnonID,
			OptIn:     false,
			CreatedAt: time.Now().UTC(),
		}
		applyUpsert(profile, req)

		if err := s.repo.Profile().Create(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		update := models.ProfileUpdate{
			OptIn:   req.OptIn,
			Channel: req.Channel,
		}
		if req.PhoneNumber != nil {
			hash := phone.Hash(*req.PhoneNumber)
			masked := phone.Mask(*req.PhoneNumber)
			update.PhoneNumber = req.PhoneNumber
			update.PhoneHash = &hash
			update.MaskedPhone = &masked
		}

		if err := s.repo.Profile().Update(ctx, req.AnonID, update); err != nil {
			return nil, err
		}
	}

	return s.repo.Profile().GetByAnonID(ctx, req.AnonID)
}

// GetOrCreate fetches a profile, lazily creating an empty opted-out one
// on first access.
func (s *profileService) GetOrCreate(ctx context.Context, anonID string) (*models.Profile, error) {
	profile, err := s.repo.Profile().GetByAnonID(ctx, anonID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	profile = &models.Profile{
		AnonID:    anonID,
		OptIn:     false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Profile().Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteCascade removes the profile together with all of the user's
// events and messages.
func (s *profileService) DeleteCascade(ctx context.Context, anonID string) error {
	if err := s.repo.Profile().Delete(ctx, anonID); err != nil {
		return err
	}
	if err := s.repo.Event().DeleteByAnonID(ctx, anonID); err != nil {
		return err
	}
	if err := s.repo.Message().DeleteByAnonID(ctx, anonID); err != nil {
		return err
	}

	s.logger.Info("Deleted all data for user", zap.String("anon_id", anonID))
	return nil
}

func applyUpsert(profile *models.Profile, req ProfileUpsert) {
	if req.PhoneNumber != nil {
		profile.PhoneNumber = sql.NullString{String: *req.PhoneNumber, Valid: true}
		profile.PhoneHash = sql.NullString{String: phone.Hash(*req.PhoneNumber), Valid: true}
		profile.MaskedPhone = sql.NullString{String: phone.Mask(*req.PhoneNumber), Valid: true}
	}
	if req.OptIn != nil {
		profile.OptIn = *req.OptIn
	}
	if req.Channel != nil {
		profile.Channel = sql.NullString{String: *req.Channel, Valid: true}
	}
}
