package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	dbm "nearby/internal/models/db_models"
	"nearby/internal/repositories"
)

var errBoom = errors.New("boom")

// ---- places ----

type fakePlaceRepo struct {
	places  map[uuid.UUID]dbm.Place
	order   []uuid.UUID
	listErr error
}

func newFakePlaceRepo(places ...dbm.Place) *fakePlaceRepo {
	r := &fakePlaceRepo{places: map[uuid.UUID]dbm.Place{}}
	for _, p := range places {
		r.put(p)
	}
	return r
}

func (r *fakePlaceRepo) put(p dbm.Place) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, ok := r.places[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.places[p.ID] = p
}

func (r *fakePlaceRepo) CreatePlace(_ context.Context, place *dbm.Place) (uuid.UUID, error) {
	place.ID = uuid.New()
	r.put(*place)
	return place.ID, nil
}

func (r *fakePlaceRepo) UpdatePlace(_ context.Context, place *dbm.Place) error {
	r.put(*place)
	return nil
}

func (r *fakePlaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.places, id)
	return nil
}

func (r *fakePlaceRepo) SetVisited(_ context.Context, id uuid.UUID, visited bool) (bool, error) {
	p, ok := r.places[id]
	if !ok {
		return false, nil
	}
	p.Visited = visited
	r.places[id] = p
	return true, nil
}

func (r *fakePlaceRepo) GetByID(_ context.Context, id string) (*dbm.Place, error) {
	p, ok := r.places[uuid.MustParse(id)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePlaceRepo) all() []dbm.Place {
	out := make([]dbm.Place, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.places[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *fakePlaceRepo) List(_ context.Context, filter repositories.PlaceFilter, _, _ int) ([]dbm.Place, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []dbm.Place
	for _, p := range r.all() {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Visited != nil && p.Visited != *filter.Visited {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlaceRepo) ListAll(_ context.Context) ([]dbm.Place, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.all(), nil
}

func (r *fakePlaceRepo) ListVisited(_ context.Context) ([]dbm.Place, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []dbm.Place
	for _, p := range r.all() {
		if p.Visited {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlaceRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]dbm.Place, error) {
	var out []dbm.Place
	for _, id := range ids {
		if p, ok := r.places[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- companions ----

type fakeCompanionRepo struct {
	mu         sync.Mutex
	rows       []dbm.CompanionActivity
	replaceErr error
	replaced   int

	// places, when set, stands in for the CompanionPlace preload
	places *fakePlaceRepo
}

func (r *fakeCompanionRepo) ListByPlace(_ context.Context, placeID uuid.UUID) ([]dbm.CompanionActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.CompanionActivity
	for _, row := range r.rows {
		if row.PlaceID != placeID {
			continue
		}
		if r.places != nil {
			row.CompanionPlace = r.places.places[row.CompanionPlaceID]
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeCompanionRepo) ReplaceForPlace(_ context.Context, placeID uuid.UUID, rows []dbm.CompanionActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaced++
	if r.replaceErr != nil {
		return r.replaceErr
	}
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.PlaceID != placeID {
			kept = append(kept, row)
		}
	}
	r.rows = append(kept, rows...)
	return nil
}

// ---- journeys ----

type fakeJourneyRepo struct {
	journeys map[uuid.UUID]dbm.Journey
	order    []uuid.UUID
	saved    map[uuid.UUID][]uuid.UUID
}

func newFakeJourneyRepo(journeys ...dbm.Journey) *fakeJourneyRepo {
	r := &fakeJourneyRepo{journeys: map[uuid.UUID]dbm.Journey{}, saved: map[uuid.UUID][]uuid.UUID{}}
	for _, j := range journeys {
		r.put(j)
	}
	return r
}

func (r *fakeJourneyRepo) put(j dbm.Journey) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if _, ok := r.journeys[j.ID]; !ok {
		r.order = append(r.order, j.ID)
	}
	r.journeys[j.ID] = j
}

func (r *fakeJourneyRepo) CreateJourney(_ context.Context, journey *dbm.Journey) (uuid.UUID, error) {
	journey.ID = uuid.New()
	r.put(*journey)
	return journey.ID, nil
}

func (r *fakeJourneyRepo) ReplaceJourney(_ context.Context, journey *dbm.Journey) error {
	r.put(*journey)
	return nil
}

func (r *fakeJourneyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.journeys, id)
	return nil
}

func (r *fakeJourneyRepo) GetDetailsOfJourneyById(_ context.Context, id string) (*dbm.Journey, error) {
	j, ok := r.journeys[uuid.MustParse(id)]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (r *fakeJourneyRepo) ListPublished(ctx context.Context, _, _ int) ([]dbm.Journey, error) {
	return r.ListAllPublished(ctx)
}

func (r *fakeJourneyRepo) ListAllPublished(_ context.Context) ([]dbm.Journey, error) {
	var out []dbm.Journey
	for _, id := range r.order {
		if j, ok := r.journeys[id]; ok && j.Published {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r *fakeJourneyRepo) SaveForAccount(_ context.Context, accountID, journeyID uuid.UUID) error {
	for _, id := range r.saved[accountID] {
		if id == journeyID {
			return nil
		}
	}
	r.saved[accountID] = append(r.saved[accountID], journeyID)
	return nil
}

func (r *fakeJourneyRepo) UnsaveForAccount(_ context.Context, accountID, journeyID uuid.UUID) error {
	ids := r.saved[accountID]
	for i, id := range ids {
		if id == journeyID {
			r.saved[accountID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeJourneyRepo) ListSavedByAccount(_ context.Context, accountID uuid.UUID) ([]dbm.Journey, error) {
	var out []dbm.Journey
	for _, id := range r.saved[accountID] {
		out = append(out, r.journeys[id])
	}
	return out, nil
}

// ---- events ----

type fakeEventRepo struct {
	discovered []dbm.DiscoveredEvent
	community  []dbm.CommunityEvent
	updates    map[uuid.UUID]repositories.ModerationUpdate
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{updates: map[uuid.UUID]repositories.ModerationUpdate{}}
}

func (r *fakeEventRepo) ListApprovedDiscovered(_ context.Context, filter repositories.EventFilter) ([]dbm.DiscoveredEvent, error) {
	var out []dbm.DiscoveredEvent
	for _, e := range r.discovered {
		if e.ModerationStatus == dbm.ModerationApproved && (filter.Category == "" || e.Category == filter.Category) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListApprovedCommunity(_ context.Context, filter repositories.EventFilter) ([]dbm.CommunityEvent, error) {
	var out []dbm.CommunityEvent
	for _, e := range r.community {
		if e.ModerationStatus == dbm.ModerationApproved && (filter.Category == "" || e.Category == filter.Category) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListDiscoveredByStatus(_ context.Context, status dbm.ModerationStatus, _, _ int) ([]dbm.DiscoveredEvent, error) {
	var out []dbm.DiscoveredEvent
	for _, e := range r.discovered {
		if e.ModerationStatus == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListCommunityByStatus(_ context.Context, status dbm.ModerationStatus, _, _ int) ([]dbm.CommunityEvent, error) {
	var out []dbm.CommunityEvent
	for _, e := range r.community {
		if e.ModerationStatus == status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) GetDiscoveredByID(_ context.Context, id string) (*dbm.DiscoveredEvent, error) {
	for _, e := range r.discovered {
		if e.ID.String() == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) InsertDiscoveredIfNew(_ context.Context, events []dbm.DiscoveredEvent) (int64, error) {
	var n int64
	for _, e := range events {
		dup := false
		for _, existing := range r.discovered {
			if existing.SourceURL == e.SourceURL {
				dup = true
				break
			}
		}
		if !dup {
			e.ID = uuid.New()
			r.discovered = append(r.discovered, e)
			n++
		}
	}
	return n, nil
}

func (r *fakeEventRepo) UpdateDiscoveredModeration(_ context.Context, id uuid.UUID, u repositories.ModerationUpdate) (bool, error) {
	for i := range r.discovered {
		if r.discovered[i].ID == id {
			r.discovered[i].ModerationStatus = u.Status
			r.updates[id] = u
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) CreateCommunityEvent(_ context.Context, event *dbm.CommunityEvent) error {
	event.ID = uuid.New()
	r.community = append(r.community, *event)
	return nil
}

func (r *fakeEventRepo) UpdateCommunityModeration(_ context.Context, id uuid.UUID, u repositories.ModerationUpdate) (bool, error) {
	for i := range r.community {
		if r.community[i].ID == id {
			r.community[i].ModerationStatus = u.Status
			r.updates[id] = u
			return true, nil
		}
	}
	return false, nil
}

// ---- community ----

type fakeCommunityRepo struct {
	comments    []dbm.Comment
	suggestions []dbm.CommunitySuggestion
}

func (r *fakeCommunityRepo) CreateComment(_ context.Context, comment *dbm.Comment) error {
	comment.ID = uuid.New()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommunityRepo) ListVisibleComments(_ context.Context, targetType string, targetID uuid.UUID, _, _ int) ([]dbm.Comment, error) {
	var out []dbm.Comment
	for _, c := range r.comments {
		if c.TargetType == targetType && c.TargetID == targetID && !c.Hidden {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommunityRepo) SetCommentHidden(_ context.Context, id uuid.UUID, hidden bool) (bool, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Hidden = hidden
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommunityRepo) CreateSuggestion(_ context.Context, s *dbm.CommunitySuggestion) error {
	s.ID = uuid.New()
	r.suggestions = append(r.suggestions, *s)
	return nil
}

func (r *fakeCommunityRepo) GetSuggestionByID(_ context.Context, id string) (*dbm.CommunitySuggestion, error) {
	for _, s := range r.suggestions {
		if s.ID.String() == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *fakeCommunityRepo) ListSuggestionsByStatus(_ context.Context, status dbm.ModerationStatus, _, _ int) ([]dbm.CommunitySuggestion, error) {
	var out []dbm.CommunitySuggestion
	for _, s := range r.suggestions {
		if s.ModerationStatus == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeCommunityRepo) UpdateSuggestionModeration(_ context.Context, id uuid.UUID, u repositories.ModerationUpdate) (bool, error) {
	for i := range r.suggestions {
		if r.suggestions[i].ID == id {
			r.suggestions[i].ModerationStatus = u.Status
			r.suggestions[i].ModerationNotes = u.Notes
			return true, nil
		}
	}
	return false, nil
}

// ---- accounts ----

type fakeAccountRepo struct {
	accounts []dbm.Account
}

func (r *fakeAccountRepo) InsertTx(account *dbm.Account, _ context.Context) error {
	account.ID = uuid.New()
	r.accounts = append(r.accounts, *account)
	return nil
}

func (r *fakeAccountRepo) FindById(_ context.Context, id string) (*dbm.Account, error) {
	for _, a := range r.accounts {
		if a.ID.String() == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*dbm.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

// ---- embeddings ----

type fakeEmbeddingClient struct {
	calls int
	err   error
}

func (c *fakeEmbeddingClient) GetEmbedding(_ context.Context, text string) (pgvector.Vector, error) {
	c.calls++
	if c.err != nil {
		return pgvector.Vector{}, c.err
	}
	return pgvector.NewVector([]float32{float32(len(text)), 1, 0}), nil
}

type fakeEmbeddingRepo struct {
	rows    map[uuid.UUID]dbm.PlaceEmbedding
	matches []repositories.PlaceMatch
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{rows: map[uuid.UUID]dbm.PlaceEmbedding{}}
}

func (r *fakeEmbeddingRepo) Upsert(_ context.Context, row *dbm.PlaceEmbedding) error {
	r.rows[row.PlaceID] = *row
	return nil
}

func (r *fakeEmbeddingRepo) Delete(_ context.Context, placeID uuid.UUID) error {
	delete(r.rows, placeID)
	return nil
}

func (r *fakeEmbeddingRepo) NearestPlaces(_ context.Context, _ pgvector.Vector, _ float64, limit int) ([]repositories.PlaceMatch, error) {
	if len(r.matches) > limit {
		return r.matches[:limit], nil
	}
	return r.matches, nil
}

// ---- dashboard ----

type fakeDashboardRepo struct {
	pending map[string]int64
	err     error
}

func (r *fakeDashboardRepo) CountPlaces(context.Context) (int64, error) { return 12, r.err }
func (r *fakeDashboardRepo) CountVisitedPlaces(context.Context) (int64, error) { return 7, r.err }
func (r *fakeDashboardRepo) CountJourneys(context.Context) (int64, error) { return 3, r.err }
func (r *fakeDashboardRepo) CountAccounts(context.Context) (int64, error) { return 40, r.err }

func (r *fakeDashboardRepo) CountByModerationStatus(_ context.Context, model interface{}, _ dbm.ModerationStatus) (int64, error) {
	switch model.(type) {
	case *dbm.DiscoveredEvent:
		return r.pending["discovered"], nil
	case *dbm.CommunityEvent:
		return r.pending["community"], nil
	case *dbm.CommunitySuggestion:
		return r.pending["suggestions"], nil
	}
	return 0, nil
}

// ---- mail ----

type sentMail struct {
	to, placeName, notes string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendSuggestionApproved(to, placeName, notes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, placeName, notes})
	return m.err
}

func runInline(f func()) { f() }
