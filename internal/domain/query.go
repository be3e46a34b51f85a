package domain

import "context"

// Operator is a predicate comparison operator.
type Operator string

// Supported operators. Everything except EQ is inequality-shaped; NEQ cannot
// be expressed as a native filter at all and is always applied in memory.
const (
	OpEQ  Operator = "EQ"
	OpLT  Operator = "LT"
	OpLTE Operator = "LTE"
	OpGT  Operator = "GT"
	OpGTE Operator = "GTE"
	OpNEQ Operator = "NEQ"
)

// Queryable session fields.
const (
	FieldName        = "name"
	FieldSessionType = "session_type"
	FieldDuration    = "duration"
	FieldStartDate   = "start_date"
	FieldStartTime   = "start_time"
	FieldSpeakerID   = "speaker_id"
)

// Predicate is a single field/operator/value filter condition.
// swagger:model Predicate
type Predicate struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value string   `json:"value"`
}

// NativeQuery is a query the session store can execute natively: an optional
// conference scope, any number of equality predicates, and at most one
// genuine inequality predicate.
type NativeQuery struct {
	ConferenceID string
	Equalities   []Predicate
	Inequality   *Predicate
}

// SessionStore is the constrained query contract of the underlying store.
// Implementations must reject a NativeQuery whose Inequality predicate is
// not one of LT/LTE/GT/GTE, or whose Equalities contain a non-EQ operator,
// with ErrInvalidInput. The query planner is the only caller expected to
// work around this limitation.
type SessionStore interface {
	QueryNative(ctx context.Context, q NativeQuery) ([]*Session, error)
}
