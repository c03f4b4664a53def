package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/cli/config"
	"github.com/yndnr/custrack-go/internal/core/domain"
	"github.com/yndnr/custrack-go/internal/credstore"
	"github.com/yndnr/custrack-go/internal/gateway"
	"github.com/yndnr/custrack-go/internal/session"
	"github.com/yndnr/custrack-go/internal/store"
	"github.com/yndnr/custrack-go/internal/telemetry/metric"
)

// testToken returns a signed JWT the refresh path can introspect.
func testToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  float64(1),
		"username": "admin",
		"name":     "Administrator",
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// newFakeCRM serves the API surface the commands touch.
func newFakeCRM(t *testing.T) *httptest.Server {
	t.Helper()

	adminUser := domain.User{ID: 1, Username: "admin", Name: "Administrator"}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		if creds.Username != "admin" || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			Token:     testToken(t, time.Hour),
			ExpiresIn: 3600,
			User:      adminUser,
		})
	})

	requireAuth := func(w http.ResponseWriter, r *http.Request) bool {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(adminUser)
	})

	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.LogoutResponse{Message: "ok"})
	})

	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(domain.RefreshResponse{
			Token:     testToken(t, 2*time.Hour),
			ExpiresIn: 7200,
		})
	})

	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(domain.CustomerListResponse{
			Customers: []domain.CustomerWithLatestTrack{
				{ID: 1, Name: "Acme", Rate: 4, NextAction: domain.ActionContinue},
			},
			Total: 1, Page: 1, Limit: 20,
		})
	})

	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		var req domain.CustomerCreateRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(domain.CustomerResponse{
			Customer: domain.Customer{ID: 2, Name: req.Name, Rate: req.Rate},
		})
	})

	mux.HandleFunc("GET /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		id, _ := strconv.Atoi(r.PathValue("id"))
		if id != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(domain.CustomerResponse{
			Customer: domain.Customer{ID: 1, Name: "Acme", Rate: 4},
		})
	})

	mux.HandleFunc("GET /api/tracks/actions", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(domain.NextActionsResponse{
			Actions: []string{string(domain.ActionContinue), string(domain.ActionClose)},
		})
	})

	mux.HandleFunc("GET /api/tracks", func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(domain.TrackListResponse{
			Tracks: []domain.Track{
				{ID: 1, CustomerID: 1, Content: "intro call", NextAction: domain.ActionContinue, TrackTime: time.Now()},
			},
			Total: 1, Page: 1, Limit: 20,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestApp wires an app against the fake server with an in-memory
// credential store. Output is captured in the returned buffer.
func newTestApp(t *testing.T) (*cli.App, *Env, *bytes.Buffer) {
	t.Helper()

	srv := newFakeCRM(t)
	buf := &bytes.Buffer{}

	cfg := config.Default()
	cfg.Server = srv.URL
	cfg.ClientID = "test-client"

	creds := credstore.NewMemoryStore()
	metrics := metric.NewCollector()
	gw := gateway.New(srv.URL, creds,
		gateway.WithMetrics(metrics),
		gateway.WithClientID(cfg.ClientID),
	)

	env := &Env{
		Cfg:       cfg,
		Creds:     creds,
		Gateway:   gw,
		Session:   session.NewManager(gw, creds),
		Customers: store.NewCustomerStore(gw),
		Tracks:    store.NewTrackStore(gw),
		Metrics:   metrics,
		Out:       buf,
	}

	app := App()
	app.Metadata[envKey] = env
	app.Writer = buf
	app.ErrWriter = buf
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app, env, buf
}

func login(t *testing.T, app *cli.App) {
	t.Helper()
	require.NoError(t, app.Run([]string{"custrack", "login", "-u", "admin", "-p", "secret"}))
}
