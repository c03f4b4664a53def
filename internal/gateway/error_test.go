package gateway

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		serverMsg string
		want      string
	}{
		{"401 fixed message", 401, "ignored by design", MsgSessionExpired},
		{"403 fixed message", 403, "ignored", MsgForbidden},
		{"404 fixed message", 404, "ignored", MsgNotFound},
		{"422 uses server message", 422, "name must not be empty", "name must not be empty"},
		{"422 fallback", 422, "", MsgInvalidParams},
		{"500 fixed message", 500, "ignored", MsgServerError},
		{"other uses server message", 409, "duplicate customer", "duplicate customer"},
		{"other fallback", 502, "", "request failed (502)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeStatus(tt.status, tt.serverMsg, "")
			if got.Message != tt.want {
				t.Errorf("Message = %q, want %q", got.Message, tt.want)
			}
			if got.Status != tt.status {
				t.Errorf("Status = %d, want %d", got.Status, tt.status)
			}
			if got.Message == "" {
				t.Error("normalized error must carry a non-empty message")
			}
		})
	}
}

func TestNormalizeStatus_Code(t *testing.T) {
	got := normalizeStatus(422, "bad rate", "CT-CUST-4001")
	if got.Code != "CT-CUST-4001" {
		t.Errorf("Code = %q, want CT-CUST-4001", got.Code)
	}
}

func TestAPIError_Error(t *testing.T) {
	withStatus := &APIError{Message: MsgNotFound, Status: 404}
	if got := withStatus.Error(); got != "requested resource not found (status 404)" {
		t.Errorf("Error() = %q", got)
	}

	withoutStatus := &APIError{Message: MsgNetworkError}
	if got := withoutStatus.Error(); got != MsgNetworkError {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := networkError(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestAsAPIError(t *testing.T) {
	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("plain error should not convert")
	}

	ae, ok := AsAPIError(configError(errors.New("bad url")))
	if !ok {
		t.Fatal("expected conversion")
	}
	if ae.Message != MsgConfigError {
		t.Errorf("Message = %q, want %q", ae.Message, MsgConfigError)
	}
}
