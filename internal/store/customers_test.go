package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/custrack-go/internal/core/domain"
	"github.com/yndnr/custrack-go/internal/credstore"
	"github.com/yndnr/custrack-go/internal/gateway"
)

func newCustomerAPI(t *testing.T) (*httptest.Server, *gateway.Client) {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) {
		resp := domain.CustomerListResponse{
			Customers: []domain.CustomerWithLatestTrack{
				{ID: 1, Name: "Acme", Rate: 4, NextAction: domain.ActionContinue},
				{ID: 2, Name: "Globex", Rate: 2, NextAction: domain.ActionClose},
			},
			Total: 2,
			Page:  1,
			Limit: 10,
		}
		if r.URL.Query().Get("search") == "Acme" {
			resp.Customers = resp.Customers[:1]
			resp.Total = 1
		}
		json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("GET /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		if id != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(domain.CustomerResponse{
			Customer: domain.Customer{ID: 1, Name: "Acme", Rate: 4},
		})
	})

	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) {
		var req domain.CustomerCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(domain.CustomerResponse{
			Customer: domain.Customer{ID: 3, Name: req.Name, Rate: req.Rate},
		})
	})

	mux.HandleFunc("PUT /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		var req domain.CustomerUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		c := domain.Customer{ID: id, Name: "Acme", Rate: 4}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Rate != nil {
			c.Rate = *req.Rate
		}
		json.NewEncoder(w).Encode(domain.CustomerResponse{Customer: c})
	})

	mux.HandleFunc("DELETE /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	creds := credstore.NewMemoryStore()
	require.NoError(t, creds.Save("tok"))
	return srv, gateway.New(srv.URL, creds)
}

func TestCustomerStore_List(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	resp, err := s.List(context.Background(), domain.CustomerListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, s.Customers(), 2)
	assert.Equal(t, 2, s.Total())
	assert.False(t, s.Loading())
}

func TestCustomerStore_ListSearch(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	resp, err := s.List(context.Background(), domain.CustomerListQuery{Search: "Acme"})
	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Acme", resp.Customers[0].Name)
}

func TestCustomerStore_Get(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	c, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	require.NotNil(t, s.Current())
	assert.Equal(t, 1, s.Current().ID)
}

func TestCustomerStore_GetNotFound(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.Get(context.Background(), 99)
	require.Error(t, err)
	apiErr, ok := gateway.AsAPIError(err)
	require.True(t, ok, "gateway error should survive wrapping")
	assert.Equal(t, gateway.MsgNotFound, apiErr.Message)
	assert.Nil(t, s.Current())
}

func TestCustomerStore_CreatePrependsMirror(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.List(context.Background(), domain.CustomerListQuery{})
	require.NoError(t, err)

	c, err := s.Create(context.Background(), domain.CustomerCreateRequest{Name: "Initech", Rate: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)

	list := s.Customers()
	require.Len(t, list, 3)
	assert.Equal(t, "Initech", list[0].Name)
	assert.Equal(t, 3, s.Total())
}

func TestCustomerStore_CreateValidation(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.Create(context.Background(), domain.CustomerCreateRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrCustomerName)

	_, err = s.Create(context.Background(), domain.CustomerCreateRequest{Name: "Acme", Rate: 9})
	assert.ErrorIs(t, err, domain.ErrCustomerRate)
}

func TestCustomerStore_UpdatePatchesMirror(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.List(context.Background(), domain.CustomerListQuery{})
	require.NoError(t, err)

	name := "Acme Corp"
	c, err := s.Update(context.Background(), 1, domain.CustomerUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", c.Name)
	assert.Equal(t, "Acme Corp", s.Customers()[0].Name)
}

func TestCustomerStore_DeleteDropsFromMirror(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.List(context.Background(), domain.CustomerListQuery{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), 1))
	list := s.Customers()
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID)
	assert.Equal(t, 1, s.Total())
}

func TestCustomerStore_ClearAll(t *testing.T) {
	_, gw := newCustomerAPI(t)
	s := NewCustomerStore(gw)

	_, err := s.List(context.Background(), domain.CustomerListQuery{})
	require.NoError(t, err)
	_, err = s.Get(context.Background(), 1)
	require.NoError(t, err)

	s.ClearAll()
	assert.Empty(t, s.Customers())
	assert.Nil(t, s.Current())
	assert.Zero(t, s.Total())
}
