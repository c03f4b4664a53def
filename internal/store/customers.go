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

// CustomerStore mirrors the customer collection.
type CustomerStore struct {
	gw *gateway.Client

	mu        sync.Mutex
	customers []domain.CustomerWithLatestTrack
	current   *domain.Customer
	total     int
	loading   bool
}

// NewCustomerStore creates a customer store over the gateway.
func NewCustomerStore(gw *gateway.Client) *CustomerStore {
	return &CustomerStore{gw: gw}
}

// Customers returns the mirrored customer list from the last List call.
func (s *CustomerStore) Customers() []domain.CustomerWithLatestTrack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers
}

// Current returns the customer loaded by the last Get call, or nil.
func (s *CustomerStore) Current() *domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Total returns the server-reported total from the last List call.
func (s *CustomerStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Loading reports whether a store request is in flight.
func (s *CustomerStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// List fetches the filtered customer listing and mirrors it.
func (s *CustomerStore) List(ctx context.Context, q domain.CustomerListQuery) (*domain.CustomerListResponse, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}

	path := "/api/customers"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp domain.CustomerListResponse
	if err := s.gw.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetch customer list: %w", err)
	}

	s.mu.Lock()
	s.customers = resp.Customers
	s.total = resp.Total
	s.mu.Unlock()

	return &resp, nil
}

// Get fetches one customer and mirrors it as the current customer.
func (s *CustomerStore) Get(ctx context.Context, id int) (*domain.Customer, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.CustomerResponse
	if err := s.gw.Get(ctx, "/api/customers/"+strconv.Itoa(id), &resp); err != nil {
		return nil, fmt.Errorf("fetch customer %d: %w", id, err)
	}

	s.mu.Lock()
	s.current = &resp.Customer
	s.mu.Unlock()

	return &resp.Customer, nil
}

// Create creates a customer and prepends it to the mirror.
func (s *CustomerStore) Create(ctx context.Context, req domain.CustomerCreateRequest) (*domain.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.CustomerResponse
	if err := s.gw.Post(ctx, "/api/customers", req, &resp); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.mu.Lock()
	s.customers = append([]domain.CustomerWithLatestTrack{asListEntry(resp.Customer)}, s.customers...)
	s.total++
	s.mu.Unlock()

	return &resp.Customer, nil
}

// Update updates a customer and patches the mirror in place.
func (s *CustomerStore) Update(ctx context.Context, id int, req domain.CustomerUpdateRequest) (*domain.Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var resp domain.CustomerResponse
	if err := s.gw.Put(ctx, "/api/customers/"+strconv.Itoa(id), req, &resp); err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers[i] = asListEntry(resp.Customer)
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = &resp.Customer
	}
	s.mu.Unlock()

	return &resp.Customer, nil
}

// Delete removes a customer and drops it from the mirror.
func (s *CustomerStore) Delete(ctx context.Context, id int) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.Delete(ctx, "/api/customers/"+strconv.Itoa(id)); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}

	s.mu.Lock()
	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
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

// ClearCurrent drops the mirrored current customer.
func (s *CustomerStore) ClearCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// ClearAll resets the mirror entirely (used on logout).
func (s *CustomerStore) ClearAll() {
	s.mu.Lock()
	s.customers = nil
	s.current = nil
	s.total = 0
	s.mu.Unlock()
}

func (s *CustomerStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// asListEntry projects a full customer record onto the listing shape.
// Latest-track fields stay empty until the next List refresh.
func asListEntry(c domain.Customer) domain.CustomerWithLatestTrack {
	return domain.CustomerWithLatestTrack{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		Rate:       c.Rate,
		Notes:      c.Notes,
		NextAction: c.NextAction,
		TrackCount: c.TrackCount,
		UserID:     c.UserID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
