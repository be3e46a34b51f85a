package domain

import (
	"context"
	"time"
)

// Profile represents an authenticated user's profile. The ID is the identity
// provider's user ID. ConferenceIDs holds registered conferences and
// WishlistSessionIDs the wishlisted sessions; both are sets with no
// duplicates. Wishlist entries may dangle (point at deleted sessions) and
// are skipped when resolved.
// swagger:model Profile
type Profile struct {
	ID                 string    `json:"id"`
	DisplayName        string    `json:"display_name"`
	Email              string    `json:"email"`
	TeeShirtSize       string    `json:"tee_shirt_size"`
	ConferenceIDs      []string  `json:"conference_ids"`
	WishlistSessionIDs []string  `json:"wishlist_session_ids"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the given user identity.
func NewProfile(id, displayName, email string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		ID:           id,
		DisplayName:  displayName,
		Email:        email,
		TeeShirtSize: "NOT_SPECIFIED",
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ProfileRepository defines the interface for profile storage, including the
// registered-conference and wishlist key sets.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	// AddRegistration is idempotent: registering an already-registered user
	// reports inserted=false.
	AddRegistration(ctx context.Context, profileID, conferenceID string) (inserted bool, err error)
	RemoveRegistration(ctx context.Context, profileID, conferenceID string) (removed bool, err error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Profile, error)
	// AddWishlistEntry is idempotent: adding a present key reports
	// inserted=false and is not an error.
	AddWishlistEntry(ctx context.Context, profileID, sessionID string) (inserted bool, err error)
	RemoveWishlistEntry(ctx context.Context, profileID, sessionID string) (removed bool, err error)
	ListWishlistSessionIDs(ctx context.Context, profileID string) ([]string, error)
}

// ProfileService defines the business logic for user profiles.
type ProfileService interface {
	// GetProfile returns the user's profile, creating an empty one on first
	// access.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, userID, displayName, teeShirtSize string) (*Profile, error)
}

// WishlistService mutates the authenticated user's wishlist session-key set.
type WishlistService interface {
	// AddSessionToWishlist fails with ErrNotFound if the session does not
	// exist; otherwise it idempotently inserts and returns the updated
	// profile.
	AddSessionToWishlist(ctx context.Context, userID, sessionID string) (*Profile, error)
	// RemoveSessionFromWishlist idempotently removes the key; removing an
	// absent key is a no-op, not an error.
	RemoveSessionFromWishlist(ctx context.Context, userID, sessionID string) (*Profile, error)
	// GetSessionsInWishlist resolves the stored keys to sessions, silently
	// skipping keys whose sessions have been deleted.
	GetSessionsInWishlist(ctx context.Context, userID string) ([]*Session, error)
}
