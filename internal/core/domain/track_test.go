package domain

import (
	"errors"
	"testing"
)

func TestTrackCreateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     TrackCreateRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  TrackCreateRequest{CustomerID: 1, Content: "called, responded well", NextAction: ActionContinue},
		},
		{
			name:    "missing customer id",
			req:     TrackCreateRequest{Content: "call", NextAction: ActionContinue},
			wantErr: ErrCustomerID,
		},
		{
			name:    "blank content",
			req:     TrackCreateRequest{CustomerID: 1, Content: "  ", NextAction: ActionClose},
			wantErr: ErrTrackContent,
		},
		{
			name:    "bad next action",
			req:     TrackCreateRequest{CustomerID: 1, Content: "call", NextAction: "maybe"},
			wantErr: ErrTrackNextAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTrackUpdateRequest_Validate(t *testing.T) {
	blank := " "
	bad := NextAction("later")
	ok := ActionClose

	if err := (TrackUpdateRequest{}).Validate(); err != nil {
		t.Errorf("empty update should be valid, got %v", err)
	}
	if err := (TrackUpdateRequest{NextAction: &ok}).Validate(); err != nil {
		t.Errorf("action-only update should be valid, got %v", err)
	}
	if err := (TrackUpdateRequest{Content: &blank}).Validate(); !errors.Is(err, ErrTrackContent) {
		t.Errorf("blank content = %v, want ErrTrackContent", err)
	}
	if err := (TrackUpdateRequest{NextAction: &bad}).Validate(); !errors.Is(err, ErrTrackNextAction) {
		t.Errorf("bad action = %v, want ErrTrackNextAction", err)
	}
}
