package services

import (
	"context"
	"sort"
	"sync"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// In-memory repository fakes shared by the service tests.

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
	err      error
}

func newFakeSessionRepo(sessions ...*domain.Session) *fakeSessionRepo {
	m := make(map[string]*domain.Session)
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &fakeSessionRepo{sessions: m}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) error {
	if f.err != nil {
		return f.err
	}
	if s.ID == "" {
		s.ID = "session-" + s.Name
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Session
	for _, id := range ids {
		if s, ok := f.sessions[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) DistinctSpeakerIDsByConferenceID(_ context.Context, conferenceID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := make(map[string]struct{})
	for _, s := range f.sessions {
		if s.ConferenceID == conferenceID && s.SpeakerID != "" {
			seen[s.SpeakerID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeSessionRepo) QueryNative(_ context.Context, q domain.NativeQuery) ([]*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.sessions))
	for id := range f.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*domain.Session
	for _, id := range ids {
		s := f.sessions[id]
		if q.ConferenceID != "" && s.ConferenceID != q.ConferenceID {
			continue
		}
		ok := true
		for _, eq := range q.Equalities {
			if !query.Matches(s, eq) {
				ok = false
				break
			}
		}
		if ok && q.Inequality != nil && !query.Matches(s, *q.Inequality) {
			ok = false
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSpeakerRepo struct {
	speakers map[string]*domain.Speaker
	err      error
}

func newFakeSpeakerRepo(speakers ...*domain.Speaker) *fakeSpeakerRepo {
	m := make(map[string]*domain.Speaker)
	for _, s := range speakers {
		m[s.ID] = s
	}
	return &fakeSpeakerRepo{speakers: m}
}

func (f *fakeSpeakerRepo) Create(_ context.Context, s *domain.Speaker) error {
	if f.err != nil {
		return f.err
	}
	if s.ID == "" {
		s.ID = "speaker-" + s.Name
	}
	f.speakers[s.ID] = s
	return nil
}

func (f *fakeSpeakerRepo) GetByID(_ context.Context, id string) (*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.speakers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSpeakerRepo) List(_ context.Context, params domain.PaginationParams) ([]*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Speaker
	for _, s := range f.speakers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	offset := params.Offset()
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if params.PageSize > 0 && len(out) > params.PageSize {
		out = out[:params.PageSize]
	}
	return out, nil
}

func (f *fakeSpeakerRepo) Count(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.speakers), nil
}

func (f *fakeSpeakerRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Speaker
	for _, id := range ids {
		if s, ok := f.speakers[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeConferenceRepo struct {
	conferences map[string]*domain.Conference
	err         error
}

func newFakeConferenceRepo(conferences ...*domain.Conference) *fakeConferenceRepo {
	m := make(map[string]*domain.Conference)
	for _, c := range conferences {
		m[c.ID] = c
	}
	return &fakeConferenceRepo{conferences: m}
}

func (f *fakeConferenceRepo) Create(_ context.Context, c *domain.Conference) error {
	if f.err != nil {
		return f.err
	}
	if c.ID == "" {
		c.ID = "conf-" + c.Name
	}
	f.conferences[c.ID] = c
	return nil
}

func (f *fakeConferenceRepo) GetByID(_ context.Context, id string) (*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.conferences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeConferenceRepo) ListByOrganizerID(_ context.Context, organizerID string) ([]*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Conference
	for _, c := range f.conferences {
		if c.OrganizerID == organizerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeConferenceRepo) ListNearlySoldOut(_ context.Context, maxSeats int) ([]*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Conference
	for _, c := range f.conferences {
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= maxSeats {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeProfileRepo struct {
	profiles      map[string]*domain.Profile
	registrations map[string]map[string]bool
	wishlists     map[string]map[string]bool
	err           error
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	m := make(map[string]*domain.Profile)
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfileRepo{
		profiles:      m,
		registrations: make(map[string]map[string]bool),
		wishlists:     make(map[string]map[string]bool),
	}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.profiles[p.ID]; !ok {
		f.profiles[p.ID] = p
	}
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	copied.ConferenceIDs = sortedKeys(f.registrations[id])
	copied.WishlistSessionIDs = sortedKeys(f.wishlists[id])
	return &copied, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.profiles[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) AddRegistration(_ context.Context, profileID, conferenceID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.registrations[profileID] == nil {
		f.registrations[profileID] = make(map[string]bool)
	}
	if f.registrations[profileID][conferenceID] {
		return false, nil
	}
	f.registrations[profileID][conferenceID] = true
	return true, nil
}

func (f *fakeProfileRepo) RemoveRegistration(_ context.Context, profileID, conferenceID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if !f.registrations[profileID][conferenceID] {
		return false, nil
	}
	delete(f.registrations[profileID], conferenceID)
	return true, nil
}

func (f *fakeProfileRepo) ListByConferenceID(_ context.Context, conferenceID string) ([]*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Profile
	for profileID, regs := range f.registrations {
		if regs[conferenceID] {
			out = append(out, f.profiles[profileID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProfileRepo) AddWishlistEntry(_ context.Context, profileID, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.wishlists[profileID] == nil {
		f.wishlists[profileID] = make(map[string]bool)
	}
	if f.wishlists[profileID][sessionID] {
		return false, nil
	}
	f.wishlists[profileID][sessionID] = true
	return true, nil
}

func (f *fakeProfileRepo) RemoveWishlistEntry(_ context.Context, profileID, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if !f.wishlists[profileID][sessionID] {
		return false, nil
	}
	delete(f.wishlists[profileID], sessionID)
	return true, nil
}

func (f *fakeProfileRepo) ListWishlistSessionIDs(_ context.Context, profileID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return sortedKeys(f.wishlists[profileID]), nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sets++
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.values, key)
	return nil
}

type fakeTaskQueue struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (f *fakeTaskQueue) Enqueue(task domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

func (f *fakeTaskQueue) enqueued() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}
