package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker. Speakers are created independently of any
// session and referenced from sessions by key; no back-reference collection
// is maintained.
// swagger:model Speaker
type Speaker struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker. ID is set by the repository on create.
func NewSpeaker(name, email, bio string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		Name:      name,
		Email:     email,
		Bio:       bio,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	List(ctx context.Context, params PaginationParams) ([]*Speaker, error)
	Count(ctx context.Context) (int, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Speaker, error)
}

// SpeakerService defines the business logic for speakers.
type SpeakerService interface {
	AddSpeaker(ctx context.Context, speaker *Speaker) (*Speaker, error)
	GetSpeakers(ctx context.Context, params PaginationParams) ([]*Speaker, int, error)
	// GetSpeakersByConference lists the distinct speakers presenting at the
	// conference. Dangling speaker references are skipped.
	GetSpeakersByConference(ctx context.Context, conferenceID string) ([]*Speaker, error)
}
