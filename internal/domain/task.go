package domain

// Task kinds dispatched through the task queue.
const (
	TaskFeaturedSpeaker        = "featured_speaker"
	TaskConferenceConfirmation = "conference_confirmation"
	TaskRefreshAnnouncement    = "refresh_announcement"
)

// Task payload parameter keys.
const (
	TaskParamConferenceID   = "conference_id"
	TaskParamEmail          = "email"
	TaskParamConferenceName = "conference_name"
)

// Task is a unit of background work. Params carry string parameters, mirroring
// a wire-level task payload.
type Task struct {
	Kind   string
	Params map[string]string
}

// TaskQueue accepts fire-and-forget background tasks with at-least-once
// delivery. Enqueue must never block the caller; handlers must be idempotent
// since a failed run may be redelivered.
type TaskQueue interface {
	Enqueue(task Task)
}
