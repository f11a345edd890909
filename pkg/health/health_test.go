package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	t.Run("plain request has empty body", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health_check", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("json request", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health_check?format=json", nil))

		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusHealthy, resp.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"postgres": func(context.Context) error { return nil },
		}
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("one check fails", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"postgres": func(context.Context) error { return errors.New("connection refused") },
			"other":    func(context.Context) error { return nil },
		}
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		health.ReadinessHandler(checks)(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Equal(t, health.StatusUnhealthy, resp.Checks["postgres"].Status)
		assert.Equal(t, "connection refused", resp.Checks["postgres"].Error)
		assert.Equal(t, health.StatusHealthy, resp.Checks["other"].Status)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks is healthy", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, health.StatusHealthy, health.Run(context.Background(), nil).Status)
	})

	t.Run("slow check times out", func(t *testing.T) {
		t.Parallel()

		checks := health.Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}
		resp := health.Run(context.Background(), checks, health.WithTimeout(20*time.Millisecond))

		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Contains(t, resp.Checks["slow"].Error, "health: check timeout")
	})
}
