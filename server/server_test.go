package server_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-store/cmd/config"
	"product-store/server"
)

func serverConfig(port, attempts int) config.ServerConfig {
	return config.ServerConfig{
		Port:            port,
		MaxPortAttempts: attempts,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

// reserveBase finds a port N where N and N+1 can both be bound, binds them,
// and returns N with the two listeners held open.
func reserveBase(t *testing.T) (int, []net.Listener) {
	t.Helper()
	for attempt := 0; attempt < 20; attempt++ {
		ln, err := net.Listen("tcp", ":0")
		require.NoError(t, err)
		base := ln.Addr().(*net.TCPAddr).Port

		next, err := net.Listen("tcp", fmt.Sprintf(":%d", base+1))
		if err != nil {
			ln.Close()
			continue
		}
		return base, []net.Listener{ln, next}
	}
	t.Fatal("could not reserve two consecutive ports")
	return 0, nil
}

func TestListen_ProbesPastOccupiedPorts(t *testing.T) {
	base, held := reserveBase(t)
	defer func() {
		for _, ln := range held {
			ln.Close()
		}
	}()

	srv := server.New(serverConfig(base, 5), http.NotFoundHandler())
	require.NoError(t, srv.Listen())

	// base and base+1 are occupied, so the probe must land on base+2
	assert.Equal(t, base+2, srv.Port())
}

func TestListen_BoundedAttempts(t *testing.T) {
	base, held := reserveBase(t)
	defer func() {
		for _, ln := range held {
			ln.Close()
		}
	}()

	srv := server.New(serverConfig(base, 2), http.NotFoundHandler())
	err := srv.Listen()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no free port")
}

func TestRun_DrainsOnContextCancel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := server.New(serverConfig(0, 1), handler)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/", srv.Port())
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancellation")
	}
}
