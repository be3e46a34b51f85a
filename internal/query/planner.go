// Package query decomposes compound session queries into what the session
// store can execute natively plus an in-memory residual filter. The store
// accepts at most one inequality predicate per query; this package is the
// only place that knows and works around that limitation.
package query

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"conferencecentral/internal/domain"
)

// dateLayout and timeLayout are the wire formats for start_date and
// start_time predicate values.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// nativeFieldRank orders the fields eligible for the single native
// inequality slot, most selective first. Lower rank wins.
var nativeFieldRank = map[string]int{
	domain.FieldStartTime:   0,
	domain.FieldStartDate:   1,
	domain.FieldDuration:    2,
	domain.FieldSessionType: 3,
	domain.FieldName:        4,
	domain.FieldSpeakerID:   5,
}

// Planner executes compound predicate queries against a SessionStore.
type Planner struct {
	store domain.SessionStore
}

// NewPlanner returns a Planner backed by the given store.
func NewPlanner(store domain.SessionStore) *Planner {
	return &Planner{store: store}
}

// QuerySessions evaluates the conjunction of predicates over the
// conference's sessions. It issues one native query carrying all equality
// predicates and at most one genuine inequality predicate, then applies the
// remaining predicates in a single in-memory pass over the native results.
//
// An empty conferenceID is allowed only when the predicates contain an
// equality filter on speaker_id; anything else would be a full unscoped scan
// and fails with ErrUnscopedQuery.
func (p *Planner) QuerySessions(ctx context.Context, conferenceID string, predicates []domain.Predicate) ([]*domain.Session, error) {
	for _, pred := range predicates {
		if err := validatePredicate(pred); err != nil {
			return nil, err
		}
	}
	if conferenceID == "" && !hasSpeakerEquality(predicates) {
		return nil, domain.ErrUnscopedQuery
	}

	var (
		equalities []domain.Predicate
		ranges     []domain.Predicate
		residual   []domain.Predicate
	)
	for _, pred := range predicates {
		switch pred.Op {
		case domain.OpEQ:
			equalities = append(equalities, pred)
		case domain.OpNEQ:
			// Not expressible as a single native filter; always residual.
			residual = append(residual, pred)
		default:
			ranges = append(ranges, pred)
		}
	}

	nativeIdx := pickNativeInequality(ranges)
	var native *domain.Predicate
	for i := range ranges {
		if i == nativeIdx {
			native = &ranges[i]
			continue
		}
		residual = append(residual, ranges[i])
	}

	sessions, err := p.store.QueryNative(ctx, domain.NativeQuery{
		ConferenceID: conferenceID,
		Equalities:   equalities,
		Inequality:   native,
	})
	if err != nil {
		return nil, fmt.Errorf("native session query: %w", err)
	}

	if len(residual) == 0 {
		return sessions, nil
	}
	// Single pass over the native result set, filtering inline.
	filtered := sessions[:0:0]
	for _, s := range sessions {
		if matchesAll(s, residual) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// pickNativeInequality chooses the single range predicate to hand to the
// store, by field rank, returning its index or -1. The scan is stable, so a
// query with two range predicates always decomposes the same way.
func pickNativeInequality(ranges []domain.Predicate) int {
	best := -1
	for i := range ranges {
		if best == -1 || nativeFieldRank[ranges[i].Field] < nativeFieldRank[ranges[best].Field] {
			best = i
		}
	}
	return best
}

func hasSpeakerEquality(predicates []domain.Predicate) bool {
	for _, pred := range predicates {
		if pred.Field == domain.FieldSpeakerID && pred.Op == domain.OpEQ {
			return true
		}
	}
	return false
}

func validatePredicate(p domain.Predicate) error {
	switch p.Op {
	case domain.OpEQ, domain.OpLT, domain.OpLTE, domain.OpGT, domain.OpGTE, domain.OpNEQ:
	default:
		return fmt.Errorf("%w: unknown operator %q", domain.ErrInvalidInput, p.Op)
	}
	switch p.Field {
	case domain.FieldName, domain.FieldSessionType, domain.FieldSpeakerID:
	case domain.FieldDuration:
		if _, err := strconv.Atoi(p.Value); err != nil {
			return fmt.Errorf("%w: duration value %q is not an integer", domain.ErrInvalidInput, p.Value)
		}
	case domain.FieldStartDate:
		if _, err := time.Parse(dateLayout, p.Value); err != nil {
			return fmt.Errorf("%w: start_date value %q is not a date (YYYY-MM-DD)", domain.ErrInvalidInput, p.Value)
		}
	case domain.FieldStartTime:
		// Ordering on start_time is lexicographic, so the value must be the
		// canonical zero-padded form ("09:30", never "9:30").
		t, err := time.Parse(timeLayout, p.Value)
		if err != nil || t.Format(timeLayout) != p.Value {
			return fmt.Errorf("%w: start_time value %q is not a zero-padded time (HH:MM)", domain.ErrInvalidInput, p.Value)
		}
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, p.Field)
	}
	return nil
}

func matchesAll(s *domain.Session, predicates []domain.Predicate) bool {
	for _, pred := range predicates {
		if !Matches(s, pred) {
			return false
		}
	}
	return true
}

// Matches reports whether the session satisfies a single predicate. The
// predicate must have passed validatePredicate.
func Matches(s *domain.Session, p domain.Predicate) bool {
	switch p.Field {
	case domain.FieldDuration:
		v, _ := strconv.Atoi(p.Value)
		return compareOrdered(s.Duration, p.Op, v)
	case domain.FieldStartDate:
		v, _ := time.Parse(dateLayout, p.Value)
		return compareDate(s.StartDate, p.Op, v)
	case domain.FieldStartTime:
		// "HH:MM" strings order the same way the times do.
		return compareOrdered(s.StartTime, p.Op, p.Value)
	case domain.FieldSessionType:
		return compareOrdered(s.SessionType, p.Op, p.Value)
	case domain.FieldName:
		return compareOrdered(s.Name, p.Op, p.Value)
	case domain.FieldSpeakerID:
		return compareOrdered(s.SpeakerID, p.Op, p.Value)
	}
	return false
}

func compareOrdered[T int | string](have T, op domain.Operator, want T) bool {
	switch op {
	case domain.OpEQ:
		return have == want
	case domain.OpNEQ:
		return have != want
	case domain.OpLT:
		return have < want
	case domain.OpLTE:
		return have <= want
	case domain.OpGT:
		return have > want
	case domain.OpGTE:
		return have >= want
	}
	return false
}

func compareDate(have time.Time, op domain.Operator, want time.Time) bool {
	switch op {
	case domain.OpEQ:
		return have.Equal(want)
	case domain.OpNEQ:
		return !have.Equal(want)
	case domain.OpLT:
		return have.Before(want)
	case domain.OpLTE:
		return !have.After(want)
	case domain.OpGT:
		return have.After(want)
	case domain.OpGTE:
		return !have.Before(want)
	}
	return false
}
