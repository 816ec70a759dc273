package services_test

import (
	"context"
	"testing"

	"presentcoach/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "session-42")
	ctx = services.WithStage(ctx, "transcribe")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "session-42" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "transcribe" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithSessionID(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.SessionIDFromContext(ctx); ok {
		t.Fatal("expected no session value")
	}
}
