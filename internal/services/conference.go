package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

// Defaults applied to a new conference when the organizer leaves the fields
// empty.
var (
	defaultCity   = "Default City"
	defaultTopics = []string{"Default", "Topic"}
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	profiles       domain.ProfileService
	taskQueue      domain.TaskQueue
	contextTimeout time.Duration
}

// NewConferenceService creates a ConferenceService. Conference creation
// enqueues a confirmation-email task for the organizer.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	profiles domain.ProfileService,
	taskQueue domain.TaskQueue,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		profiles:       profiles,
		taskQueue:      taskQueue,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) CreateConference(ctx context.Context, organizerID string, conf *domain.Conference) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if conf.Name == "" {
		return nil, fmt.Errorf("%w: conference name is required", domain.ErrInvalidInput)
	}

	organizer, err := s.profiles.GetProfile(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	if conf.City == "" {
		conf.City = defaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = defaultTopics
	}
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}
	if !conf.StartDate.IsZero() {
		conf.Month = int(conf.StartDate.Month())
	}

	now := time.Now()
	conf.OrganizerID = organizerID
	conf.CreatedAt = now
	conf.UpdatedAt = now
	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	if organizer.Email != "" {
		s.taskQueue.Enqueue(domain.Task{
			Kind: domain.TaskConferenceConfirmation,
			Params: map[string]string{
				domain.TaskParamEmail:          organizer.Email,
				domain.TaskParamConferenceName: conf.Name,
			},
		})
	}
	return conf, nil
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return conf, nil
}

func (s *conferenceService) GetConferencesCreated(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conferences, err := s.conferenceRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	if conferences == nil {
		conferences = []*domain.Conference{}
	}
	return conferences, nil
}

func (s *conferenceService) RegisterForConference(ctx context.Context, conferenceID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get conference: %w", err)
	}
	if _, err := s.profiles.GetProfile(ctx, userID); err != nil {
		return false, err
	}

	inserted, err := s.profileRepo.AddRegistration(ctx, userID, conferenceID)
	if err != nil {
		return false, fmt.Errorf("register: %w", err)
	}
	return inserted, nil
}

func (s *conferenceService) UnregisterFromConference(ctx context.Context, conferenceID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	removed, err := s.profileRepo.RemoveRegistration(ctx, userID, conferenceID)
	if err != nil {
		return false, fmt.Errorf("unregister: %w", err)
	}
	return removed, nil
}

func (s *conferenceService) GetConferenceAttendees(ctx context.Context, conferenceID, callerID string) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	attendees, err := s.profileRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Profile{}
	}
	return attendees, nil
}
