package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/yndnr/custrack-go/internal/core/domain"
	"github.com/yndnr/custrack-go/internal/gateway"
)

// TrackStore mirrors the follow-up track collection.
type TrackStore struct {
	gw *gateway.Client

	mu      sync.Mutex
	tracks  []domain.Track
	current *domain.Track
	total   int
	loading bool
}

// NewTrackStore creates a track store over the gateway.
func NewTrackStore(gw *gateway.Client) *TrackStore {
	return &TrackStore{gw: gw}
}

// Tracks returns the mirrored track list from the last List call.
func (s *TrackStore) Tracks() []domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracks
}

// Current returns the most recently created or updated track, or nil.
func (s *TrackStore) Current() *domain.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Total returns the server-reported total from the last List call.
func (s *TrackStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Loading reports whether a store request is in flight.
func (s *TrackStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func trackQuery(q domain.TrackListQuery) string {
	params := url.Values{}
	if q.CustomerID > 0 {
		params.Set("customer_id", strconv.Itoa(q.CustomerID))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}
	return params.Encode()
}

// List fetches the filtered track listing and mirrors it.
func (s *TrackStore) List(ctx context.Context, q domain.TrackListQuery) (*domain.TrackListResponse, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	path := "/api/tracks"
	if enc := trackQuery(q); enc != "" {
		path += "?" + enc
	}

	var resp domain.TrackListResponse
	if err := s.gw.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetch track list: %w", err)
	}

	s.mu.Lock()
	s.tracks = resp.Tracks
	s.total = resp.Total
	s.mu.Unlock()

	return &resp, nil
}

// ForCustomer fetches all tracks of one customer together with the
// abbreviated customer record.
func (s *TrackStore) ForCustomer(ctx context.Context, customerID int) (*domain.CustomerTrackListResponse, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.CustomerTrackListResponse
	path := "/api/customers/" + strconv.Itoa(customerID) + "/tracks"
	if err := s.gw.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetch tracks for customer %d: %w", customerID, err)
	}

	s.mu.Lock()
	s.tracks = resp.Tracks
	s.total = len(resp.Tracks)
	s.mu.Unlock()

	return &resp, nil
}

// Create records a new follow-up and prepends it to the mirror.
func (s *TrackStore) Create(ctx context.Context, req domain.TrackCreateRequest) (*domain.Track, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.TrackResponse
	if err := s.gw.Post(ctx, "/api/tracks", req, &resp); err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}

	s.mu.Lock()
	s.tracks = append([]domain.Track{resp.Track}, s.tracks...)
	s.total++
	s.current = &resp.Track
	s.mu.Unlock()

	return &resp.Track, nil
}

// Update updates a follow-up record and patches the mirror in place.
func (s *TrackStore) Update(ctx context.Context, id int, req domain.TrackUpdateRequest) (*domain.Track, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.TrackResponse
	if err := s.gw.Put(ctx, "/api/tracks/"+strconv.Itoa(id), req, &resp); err != nil {
		return nil, fmt.Errorf("update track %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.tracks {
		if s.tracks[i].ID == id {
			s.tracks[i] = resp.Track
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = &resp.Track
	}
	s.mu.Unlock()

	return &resp.Track, nil
}

// Delete removes a follow-up record and drops it from the mirror.
func (s *TrackStore) Delete(ctx context.Context, id int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.Delete(ctx, "/api/tracks/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("delete track %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.tracks {
		if s.tracks[i].ID == id {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			s.total--
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

// NextActions fetches the server-defined follow-up action values.
func (s *TrackStore) NextActions(ctx context.Context) ([]string, error) {
	var resp domain.NextActionsResponse
	if err := s.gw.Get(ctx, "/api/tracks/actions", &resp); err != nil {
		return nil, fmt.Errorf("fetch next actions: %w", err)
	}
	return resp.Actions, nil
}

// ClearAll resets the mirror entirely (used on logout).
func (s *TrackStore) ClearAll() {
	s.mu.Lock()
	s.tracks = nil
	s.current = nil
	s.total = 0
	s.mu.Unlock()
}

func (s *TrackStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
