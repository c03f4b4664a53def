// Package domain defines the core domain models for custrack.
package domain

import (
	"strings"
	"time"
)

// Customer rating bounds as enforced by the server.
const (
	MinCustomerRate = 1
	MaxCustomerRate = 5

	MaxCustomerNameLength = 100
)

// NextAction is the follow-up decision attached to customers and tracks.
// The wire values are fixed by the server and are not translated.
type NextAction string

const (
	// ActionContinue marks a customer as still being followed up.
	ActionContinue NextAction = "继续跟进"

	// ActionClose marks the follow-up as finished.
	ActionClose NextAction = "结束跟进"
)

// Valid reports whether the value is one of the server-defined actions.
func (a NextAction) Valid() bool {
	return a == ActionContinue || a == ActionClose
}

// Customer is a customer record as returned by the server.
type Customer struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty" table:"wide"`
	Notes       string     `json:"notes,omitempty" table:"wide"`
	Rate        int        `json:"rate"`
	NextAction  NextAction `json:"next_action"`
	UserID      int        `json:"user_id" table:"-"`
	TrackCount  int        `json:"track_count,omitempty"`
	LastTrackAt *time.Time `json:"last_track_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" table:"wide"`
	UpdatedAt   time.Time  `json:"updated_at" table:"wide"`
	IsDeleted   bool       `json:"is_deleted" table:"-"`
}

// CustomerWithLatestTrack is the list projection joining each customer
// with its most recent follow-up record.
type CustomerWithLatestTrack struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	Phone            string      `json:"phone,omitempty"`
	Address          string      `json:"address,omitempty" table:"wide"`
	Rate             int         `json:"rate"`
	Notes            string      `json:"notes,omitempty" table:"wide"`
	NextAction       NextAction  `json:"next_action"`
	LatestTrackTime  *time.Time  `json:"latest_track_time,omitempty"`
	LatestNextAction *NextAction `json:"latest_next_action,omitempty" table:"wide"`
	LatestContent    string      `json:"latest_content,omitempty" table:"wide"`
	TrackCount       int         `json:"track_count"`
	UserID           int         `json:"user_id" table:"-"`
	CreatedAt        time.Time   `json:"created_at" table:"wide"`
	UpdatedAt        time.Time   `json:"updated_at" table:"-"`
	IsDeleted        bool        `json:"is_deleted" table:"-"`
}

// CustomerCreateRequest is the body for POST /api/customers.
type CustomerCreateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Rate    int    `json:"rate,omitempty"`
}

// Validate checks client-side constraints before the request is sent.
func (r CustomerCreateRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return ErrCustomerName
	}
	if len(name) > MaxCustomerNameLength {
		return ErrCustomerName.WithDetails("name too long")
	}
	if r.Rate != 0 && (r.Rate < MinCustomerRate || r.Rate > MaxCustomerRate) {
		return ErrCustomerRate
	}
	return nil
}

// CustomerUpdateRequest is the body for PUT /api/customers/{id}.
// Nil fields are omitted and left unchanged by the server.
type CustomerUpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Rate    *int    `json:"rate,omitempty"`
}

// Validate checks client-side constraints on the provided fields.
func (r CustomerUpdateRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrCustomerName
	}
	if r.Rate != nil && (*r.Rate < MinCustomerRate || *r.Rate > MaxCustomerRate) {
		return ErrCustomerRate
	}
	return nil
}

// CustomerResponse wraps a single customer in server responses.
type CustomerResponse struct {
	Customer Customer `json:"customer"`
}

// CustomerListResponse is the paginated customer listing.
type CustomerListResponse struct {
	Customers []CustomerWithLatestTrack `json:"customers"`
	Total     int                       `json:"total"`
	Page      int                       `json:"page"`
	Limit     int                       `json:"limit"`
}

// CustomerListQuery carries the filter parameters for the customer listing.
// Zero values are omitted from the request.
type CustomerListQuery struct {
	Page   int
	Limit  int
	Search string
	Status NextAction
}
