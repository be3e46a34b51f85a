package domain

import (
	"context"
	"time"
)

// Conference represents a conference owned by its organizer.
// swagger:model Conference
type Conference struct {
	ID             string    `json:"id"`
	OrganizerID    string    `json:"organizer_id"`
	Name           string    `json:"name"`
	City           string    `json:"city"`
	Topics         []string  `json:"topics"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Month          int       `json:"month"`
	MaxAttendees   int       `json:"max_attendees"`
	SeatsAvailable int       `json:"seats_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewConference returns a new Conference. ID is set by the repository on create.
func NewConference(organizerID, name, city string, topics []string, startDate, endDate time.Time, maxAttendees int, createdAt, updatedAt time.Time) *Conference {
	return &Conference{
		OrganizerID:    organizerID,
		Name:           name,
		City:           city,
		Topics:         topics,
		StartDate:      startDate,
		EndDate:        endDate,
		Month:          int(startDate.Month()),
		MaxAttendees:   maxAttendees,
		SeatsAvailable: maxAttendees,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= maxSeats.
	ListNearlySoldOut(ctx context.Context, maxSeats int) ([]*Conference, error)
}

// ConferenceService defines the business logic for conferences and
// conference registration.
type ConferenceService interface {
	CreateConference(ctx context.Context, organizerID string, conf *Conference) (*Conference, error)
	GetConference(ctx context.Context, conferenceID string) (*Conference, error)
	GetConferencesCreated(ctx context.Context, organizerID string) ([]*Conference, error)
	// RegisterForConference registers the user. Returns true if a new
	// registration was created, false if the user was already registered.
	RegisterForConference(ctx context.Context, conferenceID, userID string) (bool, error)
	// UnregisterFromConference removes the registration. Returns true if a
	// registration was removed, false if the user was not registered.
	UnregisterFromConference(ctx context.Context, conferenceID, userID string) (bool, error)
	// GetConferenceAttendees lists profiles registered for the conference.
	// Only the organizer may call it.
	GetConferenceAttendees(ctx context.Context, conferenceID, callerID string) ([]*Profile, error)
}

// AnnouncementService maintains the nearly-sold-out conference announcement
// in the cache store.
type AnnouncementService interface {
	// RefreshAnnouncement recomputes the announcement and returns it. An
	// empty string means no conference is nearly sold out; the cache slot is
	// deleted in that case.
	RefreshAnnouncement(ctx context.Context) (string, error)
	// GetAnnouncement reads the cached announcement; "" if absent.
	GetAnnouncement(ctx context.Context) (string, error)
}
