package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("empty context request ID = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "01JABCDEF")
	if got := RequestIDFromContext(ctx); got != "01JABCDEF" {
		t.Errorf("RequestIDFromContext() = %q, want 01JABCDEF", got)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext should fall back to the default logger")
	}
}

func TestL_EnrichesRequestID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "req-123")

	L(ctx).Info("fetching customer")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("expected request_id in output, got %q", buf.String())
	}
}
