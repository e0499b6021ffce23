package mdns

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "_myscribe._tcp", ServiceType)
	assert.Equal(t, "v1", APIVersion)
	assert.NotEmpty(t, ServerVersion)
}

func TestNewService(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	service := NewService(logger)

	require.NotNil(t, service)
	assert.Nil(t, service.server, "server should be nil before Start")
}

func TestServiceStop(t *testing.T) {
	t.Run("stop when not started is safe", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		service := NewService(logger)

		service.Stop()
		assert.Nil(t, service.server)
	})

	t.Run("stop can be called multiple times", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		service := NewService(logger)

		service.Stop()
		service.Stop()
		service.Stop()
	})
}

func TestServiceLifecycle(t *testing.T) {
	// mDNS may fail in environments without multicast support (Docker,
	// CI without network access).
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	service := NewService(logger)
	require.NotNil(t, service)

	err := service.Start(8080)
	if err != nil {
		t.Skipf("mDNS not available: %v", err)
	}
	assert.NotNil(t, service.server)
	assert.Contains(t, buf.String(), "mDNS advertisement started")

	// Restart on a new port replaces the running server.
	require.NoError(t, service.Start(8081))
	assert.NotNil(t, service.server)

	service.Stop()
	assert.Nil(t, service.server)
	assert.Contains(t, buf.String(), "mDNS advertisement stopped")
}

func TestServiceConcurrency(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	service := NewService(logger)

	if err := service.Start(8080); err != nil {
		t.Skipf("mDNS not available: %v", err)
	}

	done := make(chan struct{})
	for range 10 {
		go func() {
			service.Stop()
			done <- struct{}{}
		}()
	}
	for range 10 {
		<-done
	}

	assert.Nil(t, service.server)
}
