// Package testutil starts throwaway containers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RequireDocker skips the test unless DOCKER_AVAILABLE is set.
func RequireDocker(t *testing.T) {
	t.Helper()
	if v := os.Getenv("DOCKER_AVAILABLE"); v != "true" && v != "1" {
		t.Skip("docker not available")
	}
}

func start(ctx context.Context, t *testing.T, req tc.ContainerRequest) tc.Container {
	t.Helper()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})
	return container
}

func endpoint(ctx context.Context, t *testing.T, c tc.Container, scheme string) string {
	t.Helper()
	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	ports, err := c.Ports(ctx)
	if err != nil {
		t.Fatalf("failed to get mapped ports: %v", err)
	}
	for _, bindings := range ports {
		if len(bindings) > 0 {
			return fmt.Sprintf("%s://%s:%s", scheme, host, bindings[0].HostPort)
		}
	}
	t.Fatal("container exposes no ports")
	return ""
}

// StartPostgres runs a trust-auth PostgreSQL and returns a password-free URL.
func StartPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	RequireDocker(t)
	c := start(ctx, t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":             "agenda",
			"POSTGRES_DB":               "agenda",
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	})
	return strings.Replace(endpoint(ctx, t, c, "postgres"), "://", "://agenda@", 1) + "/agenda?sslmode=disable"
}

// StartMosquitto runs an anonymous Mosquitto broker and returns its tcp:// URL.
func StartMosquitto(ctx context.Context, t *testing.T) string {
	t.Helper()
	RequireDocker(t)
	c := start(ctx, t, tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		Cmd:          []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	})
	// give broker time to fully start
	time.Sleep(500 * time.Millisecond)
	return endpoint(ctx, t, c, "tcp")
}
