package domain

import (
	"context"
	"time"
)

// Session represents a conference session or talk. SpeakerID is a soft
// reference: it may point at a deleted speaker, in which case lookups simply
// yield no speaker.
// swagger:model Session
type Session struct {
	ID           string    `json:"id"`
	ConferenceID string    `json:"conference_id"`
	Name         string    `json:"name"`
	Highlights   string    `json:"highlights,omitempty"`
	SessionType  string    `json:"session_type"`
	Duration     int       `json:"duration"`
	StartDate    time.Time `json:"start_date"`
	StartTime    string    `json:"start_time"`
	SpeakerID    string    `json:"speaker_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewSession returns a new Session. ID is set by the repository on create.
func NewSession(conferenceID, name, highlights, sessionType, speakerID string, duration int, startDate time.Time, startTime string, createdAt, updatedAt time.Time) *Session {
	return &Session{
		ConferenceID: conferenceID,
		Name:         name,
		Highlights:   highlights,
		SessionType:  sessionType,
		Duration:     duration,
		StartDate:    startDate,
		StartTime:    startTime,
		SpeakerID:    speakerID,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// SessionRepository defines the interface for session storage. It includes
// SessionStore, the constrained native query contract used by the query
// planner.
type SessionRepository interface {
	SessionStore
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
	// DistinctSpeakerIDsByConferenceID returns the distinct non-empty
	// speaker references among the conference's sessions.
	DistinctSpeakerIDsByConferenceID(ctx context.Context, conferenceID string) ([]string, error)
}

// SessionService defines the business logic for sessions.
type SessionService interface {
	// CreateSession validates and stores a session, then triggers an
	// asynchronous featured-speaker recomputation for the conference. The
	// trigger never blocks or fails the create.
	CreateSession(ctx context.Context, conferenceID, callerID string, session *Session) (*Session, error)
	// QuerySessions answers a compound predicate query over the
	// conference's sessions via the query planner.
	QuerySessions(ctx context.Context, conferenceID string, predicates []Predicate) ([]*Session, error)
	GetConferenceSessions(ctx context.Context, conferenceID string) ([]*Session, error)
	GetSessionsByType(ctx context.Context, conferenceID, sessionType string) ([]*Session, error)
	// GetSessionsBySpeaker returns the speaker's sessions across all
	// conferences.
	GetSessionsBySpeaker(ctx context.Context, speakerID string) ([]*Session, error)
}
