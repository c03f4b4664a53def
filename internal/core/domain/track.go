// Package domain defines the core domain models for custrack.
package domain

import (
	"strings"
	"time"
)

// Track is a single follow-up interaction record for a customer.
type Track struct {
	ID            int        `json:"id"`
	CustomerID    int        `json:"customer_id"`
	Content       string     `json:"content"`
	NextAction    NextAction `json:"next_action"`
	TrackTime     time.Time  `json:"track_time"`
	NextTrackTime *time.Time `json:"next_track_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at" table:"wide"`
	UpdatedAt     time.Time  `json:"updated_at" table:"wide"`
}

// TrackCreateRequest is the body for POST /api/tracks and
// POST /api/customers/{id}/tracks.
type TrackCreateRequest struct {
	CustomerID int        `json:"customer_id"`
	Content    string     `json:"content"`
	NextAction NextAction `json:"next_action"`
}

// Validate checks client-side constraints before the request is sent.
func (r TrackCreateRequest) Validate() error {
	if r.CustomerID <= 0 {
		return ErrCustomerID
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrTrackContent
	}
	if !r.NextAction.Valid() {
		return ErrTrackNextAction.WithDetails(string(r.NextAction))
	}
	return nil
}

// TrackUpdateRequest is the body for PUT /api/tracks/{id}.
// Nil fields are left unchanged by the server.
type TrackUpdateRequest struct {
	Content    *string     `json:"content,omitempty"`
	NextAction *NextAction `json:"next_action,omitempty"`
}

// Validate checks client-side constraints on the provided fields.
func (r TrackUpdateRequest) Validate() error {
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return ErrTrackContent
	}
	if r.NextAction != nil && !r.NextAction.Valid() {
		return ErrTrackNextAction.WithDetails(string(*r.NextAction))
	}
	return nil
}

// TrackResponse wraps a single track in server responses.
type TrackResponse struct {
	Track Track `json:"track"`
}

// TrackListResponse is the paginated track listing.
type TrackListResponse struct {
	Tracks []Track `json:"tracks"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// CustomerInfo is the abbreviated customer record attached to a
// per-customer track listing.
type CustomerInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Rate  int    `json:"rate"`
}

// CustomerTrackListResponse is the response for GET /api/customers/{id}/tracks.
type CustomerTrackListResponse struct {
	Tracks   []Track      `json:"tracks"`
	Customer CustomerInfo `json:"customer"`
}

// NextActionsResponse is the response for GET /api/tracks/actions.
type NextActionsResponse struct {
	Actions []string `json:"actions"`
}

// TrackListQuery carries the filter parameters for track listings.
// Zero values are omitted from the request.
type TrackListQuery struct {
	CustomerID int
	Page       int
	Limit      int
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}
