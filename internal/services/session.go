package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	speakerRepo    domain.SpeakerRepository
	planner        *query.Planner
	taskQueue      domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSessionService creates a SessionService. Session creation enqueues a
// featured-speaker recomputation task for the conference.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	speakerRepo domain.SpeakerRepository,
	planner *query.Planner,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		speakerRepo:    speakerRepo,
		planner:        planner,
		taskQueue:      taskQueue,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, conferenceID, callerID string, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if session.Name == "" {
		return nil, fmt.Errorf("%w: session name is required", domain.ErrInvalidInput)
	}
	if session.SessionType == "" {
		return nil, fmt.Errorf("%w: session type is required", domain.ErrInvalidInput)
	}
	if session.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of minutes", domain.ErrInvalidInput)
	}

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

	// The speaker reference is soft: if it no longer resolves we keep it
	// anyway, lookups simply yield no speaker later.
	if session.SpeakerID != "" {
		if _, err := s.speakerRepo.GetByID(ctx, session.SpeakerID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get speaker: %w", err)
		}
	}

	now := time.Now()
	session.ConferenceID = conferenceID
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Fire and forget: the response never waits on the pipeline.
	s.taskQueue.Enqueue(domain.Task{
		Kind:   domain.TaskFeaturedSpeaker,
		Params: map[string]string{domain.TaskParamConferenceID: conferenceID},
	})

	return session, nil
}

func (s *sessionService) QuerySessions(ctx context.Context, conferenceID string, predicates []domain.Predicate) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if conferenceID != "" {
		if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get conference: %w", err)
		}
	}

	sessions, err := s.planner.QuerySessions(ctx, conferenceID, predicates)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

func (s *sessionService) GetConferenceSessions(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	return s.QuerySessions(ctx, conferenceID, nil)
}

func (s *sessionService) GetSessionsByType(ctx context.Context, conferenceID, sessionType string) ([]*domain.Session, error) {
	return s.QuerySessions(ctx, conferenceID, []domain.Predicate{
		{Field: domain.FieldSessionType, Op: domain.OpEQ, Value: sessionType},
	})
}

func (s *sessionService) GetSessionsBySpeaker(ctx context.Context, speakerID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if speakerID == "" {
		return nil, fmt.Errorf("%w: speaker id is required", domain.ErrInvalidInput)
	}
	sessions, err := s.planner.QuerySessions(ctx, "", []domain.Predicate{
		{Field: domain.FieldSpeakerID, Op: domain.OpEQ, Value: speakerID},
	})
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}
