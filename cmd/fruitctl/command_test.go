package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry(&SeedCommand{}, &MigrateCommand{}, &HealthCheckCommand{}, &WaitForDBCommand{})

	var names []string
	for _, cmd := range r.List() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"health-check", "migrate", "seed", "wait-for-db"}, names)

	_, ok := r.Get("deploy")
	assert.False(t, ok)
}

func TestHealthCheck(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok","version":"1.2.3"}`))
		}))
		defer srv.Close()

		cmd := &HealthCheckCommand{client: srv.Client()}
		require.NoError(t, cmd.Run(context.Background(), []string{srv.URL + "/"}))
	})

	t.Run("not ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/readyz" {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		cmd := &HealthCheckCommand{client: srv.Client()}
		err := cmd.Run(context.Background(), []string{srv.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/readyz")
		assert.Contains(t, err.Error(), "503")
	})
}

func TestSeed_ValidatesArgs(t *testing.T) {
	cmd := &SeedCommand{}
	assert.Error(t, cmd.Run(context.Background(), []string{"0xalice"}))
	assert.Error(t, cmd.Run(context.Background(), []string{"0xalice", "zero"}))
	assert.Error(t, cmd.Run(context.Background(), []string{"0xalice", "0"}))
}
