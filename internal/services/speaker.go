package services

import (
	"context"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type speakerService struct {
	speakerRepo    domain.SpeakerRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewSpeakerService creates a SpeakerService with the given repositories.
func NewSpeakerService(speakerRepo domain.SpeakerRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		speakerRepo:    speakerRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *speakerService) AddSpeaker(ctx context.Context, speaker *domain.Speaker) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if speaker.Name == "" {
		return nil, fmt.Errorf("%w: speaker name is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	speaker.CreatedAt = now
	speaker.UpdatedAt = now
	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) GetSpeakers(ctx context.Context, params domain.PaginationParams) ([]*domain.Speaker, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	speakers, err := s.speakerRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	total, err := s.speakerRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count speakers: %w", err)
	}
	return speakers, total, nil
}

func (s *speakerService) GetSpeakersByConference(ctx context.Context, conferenceID string) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.sessionRepo.DistinctSpeakerIDsByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list speaker references: %w", err)
	}
	// ListByIDs resolves only speakers that still exist; dangling session
	// references fall away here.
	speakers, err := s.speakerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}
