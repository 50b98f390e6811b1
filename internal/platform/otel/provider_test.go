package otel_test

import (
	"context"
	"testing"

	"github.com/ojasvatstyagi/Collabro/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("COLLABRO_OTEL_ENDPOINT", "")
	t.Setenv("COLLABRO_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("COLLABRO_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("COLLABRO_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	t.Setenv("COLLABRO_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("COLLABRO_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Shutdown with a cancelled context: flushing may fail, but the provider
	// must not hang waiting on the unreachable endpoint.
	_ = shutdown(ctx)
}
