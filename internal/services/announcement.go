package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

// nearlySoldOutThreshold is the seat count at or below which a conference is
// considered nearly sold out.
const nearlySoldOutThreshold = 5

type announcementService struct {
	conferenceRepo domain.ConferenceRepository
	cache          domain.CacheStore
	contextTimeout time.Duration
}

// NewAnnouncementService creates the nearly-sold-out announcement refresher.
func NewAnnouncementService(conferenceRepo domain.ConferenceRepository, cache domain.CacheStore, timeout time.Duration) domain.AnnouncementService {
	return &announcementService{
		conferenceRepo: conferenceRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func (s *announcementService) RefreshAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.ListNearlySoldOut(ctx, nearlySoldOutThreshold)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}

	if len(conferences) == 0 {
		// Nothing to announce; drop the slot rather than caching "".
		if err := s.cache.Delete(ctx, domain.CacheKeyAnnouncements); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, 0, len(conferences))
	for _, conf := range conferences {
		names = append(names, conf.Name)
	}
	announcement := "Last chance to attend! The following conferences are nearly sold out: " + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.CacheKeyAnnouncements, announcement); err != nil {
		return "", fmt.Errorf("publish announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	value, found, err := s.cache.Get(ctx, domain.CacheKeyAnnouncements)
	if err != nil {
		return "", fmt.Errorf("read announcement: %w", err)
	}
	if !found {
		return "", nil
	}
	return value, nil
}
