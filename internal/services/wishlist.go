package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type wishlistService struct {
	profileRepo    domain.ProfileRepository
	sessionRepo    domain.SessionRepository
	profiles       domain.ProfileService
	contextTimeout time.Duration
}

// NewWishlistService creates a WishlistService. Profiles are resolved
// through the ProfileService so first-time users are provisioned on access.
func NewWishlistService(
	profileRepo domain.ProfileRepository,
	sessionRepo domain.SessionRepository,
	profiles domain.ProfileService,
	timeout time.Duration,
) domain.WishlistService {
	return &wishlistService{
		profileRepo:    profileRepo,
		sessionRepo:    sessionRepo,
		profiles:       profiles,
		contextTimeout: timeout,
	}
}

func (s *wishlistService) AddSessionToWishlist(ctx context.Context, userID, sessionID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The session must exist at add time; from then on the reference is
	// weak and may dangle.
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	// Adding a present key reports inserted=false, which is fine: the add
	// is idempotent.
	if _, err := s.profileRepo.AddWishlistEntry(ctx, userID, sessionID); err != nil {
		return nil, fmt.Errorf("add wishlist entry: %w", err)
	}
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *wishlistService) RemoveSessionFromWishlist(ctx context.Context, userID, sessionID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	// Removing an absent key is a no-op, not an error.
	if _, err := s.profileRepo.RemoveWishlistEntry(ctx, userID, sessionID); err != nil {
		return nil, fmt.Errorf("remove wishlist entry: %w", err)
	}
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *wishlistService) GetSessionsInWishlist(ctx context.Context, userID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.profileRepo.ListWishlistSessionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	// ListByIDs only returns sessions that still exist, so dangling keys
	// are skipped without surfacing an error.
	sessions, err := s.sessionRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve wishlist sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}
