package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// NoFeaturedSpeakerMarker is published when a conference has no session with
// a speaker assigned, so a stale previous announcement never lingers.
const NoFeaturedSpeakerMarker = "no featured speaker"

type featuredSpeakerService struct {
	planner        *query.Planner
	speakerRepo    domain.SpeakerRepository
	cache          domain.CacheStore
	logger         *slog.Logger
	contextTimeout time.Duration

	// reportAllTied controls the tie policy: true announces every speaker
	// at the maximum count, false only the one whose ID sorts first.
	reportAllTied bool
}

// NewFeaturedSpeakerService creates the cache-refresh pipeline for the
// per-conference featured-speaker announcement.
func NewFeaturedSpeakerService(
	planner *query.Planner,
	speakerRepo domain.SpeakerRepository,
	cache domain.CacheStore,
	logger *slog.Logger,
	timeout time.Duration,
	reportAllTied bool,
) domain.FeaturedSpeakerService {
	return &featuredSpeakerService{
		planner:        planner,
		speakerRepo:    speakerRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		reportAllTied:  reportAllTied,
	}
}

// Recompute scans all of the conference's sessions, finds the speaker(s)
// with the most sessions, and overwrites the cache slot with a formatted
// announcement. It performs exactly one cache write per successful run and
// is safe to rerun: redelivery after a transient failure converges on the
// same value.
func (s *featuredSpeakerService) Recompute(ctx context.Context, conferenceID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.planner.QuerySessions(ctx, conferenceID, nil)
	if err != nil {
		return fmt.Errorf("load conference sessions: %w", err)
	}

	bySpeaker := make(map[string][]*domain.Session)
	for _, sess := range sessions {
		if sess.SpeakerID == "" {
			continue
		}
		bySpeaker[sess.SpeakerID] = append(bySpeaker[sess.SpeakerID], sess)
	}

	announcement := NoFeaturedSpeakerMarker
	if len(bySpeaker) > 0 {
		announcement, err = s.formatAnnouncement(ctx, bySpeaker)
		if err != nil {
			return err
		}
	}

	if err := s.cache.Set(ctx, domain.FeaturedSpeakerCacheKey(conferenceID), announcement); err != nil {
		return fmt.Errorf("publish featured speaker: %w", err)
	}
	s.logger.Info("featured speaker published", "conference_id", conferenceID, "announcement", announcement)
	return nil
}

func (s *featuredSpeakerService) formatAnnouncement(ctx context.Context, bySpeaker map[string][]*domain.Session) (string, error) {
	maxCount := 0
	for _, sessions := range bySpeaker {
		if len(sessions) > maxCount {
			maxCount = len(sessions)
		}
	}

	var tied []string
	for speakerID, sessions := range bySpeaker {
		if len(sessions) == maxCount {
			tied = append(tied, speakerID)
		}
	}
	sort.Strings(tied)
	if !s.reportAllTied {
		tied = tied[:1]
	}

	var names []string
	var sessionNames []string
	for _, speakerID := range tied {
		speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Dangling reference; the sessions stay counted but there
				// is no name to announce.
				continue
			}
			return "", fmt.Errorf("get speaker: %w", err)
		}
		names = append(names, speaker.Name)
		for _, sess := range bySpeaker[speakerID] {
			sessionNames = append(sessionNames, sess.Name)
		}
	}
	if len(names) == 0 {
		return NoFeaturedSpeakerMarker, nil
	}
	sort.Strings(sessionNames)

	return fmt.Sprintf("The featured speaker for this conference is: %s (sessions: %s)",
		strings.Join(names, ", "), strings.Join(sessionNames, ", ")), nil
}

// GetFeaturedSpeaker is a cache read only; it never recomputes
// synchronously. Absence yields "".
func (s *featuredSpeakerService) GetFeaturedSpeaker(ctx context.Context, conferenceID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	value, found, err := s.cache.Get(ctx, domain.FeaturedSpeakerCacheKey(conferenceID))
	if err != nil {
		return "", fmt.Errorf("read featured speaker: %w", err)
	}
	if !found {
		return "", nil
	}
	return value, nil
}
