package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReadinessHandler_JSON(t *testing.T) {
	t.Parallel()

	h := health.ReadinessHandler(health.Checks{
		"ok":  func(context.Context) error { return nil },
		"bad": func(context.Context) error { return errors.New("disk full") },
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil)
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp health.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Equal(t, health.StatusHealthy, resp.Checks["ok"].Status)
	assert.Contains(t, resp.Checks["bad"].Error, "disk full")
}

func TestReadinessHandler_AllHealthy(t *testing.T) {
	t.Parallel()

	h := health.ReadinessHandler(health.Checks{
		"a": func(context.Context) error { return nil },
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRun_Timeout(t *testing.T) {
	t.Parallel()

	resp := health.Run(context.Background(), health.Checks{
		"slow": func(ctx context.Context) error {
			select {
			case <-time.After(5 * time.Second):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}, health.WithTimeout(20*time.Millisecond))

	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Equal(t, health.ErrCheckTimeout.Error(), resp.Checks["slow"].Error)
}

func TestRun_NoChecks(t *testing.T) {
	t.Parallel()

	resp := health.Run(context.Background(), nil)
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestDirWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, health.DirWritable(dir)(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.Error(t, health.DirWritable(filepath.Join(dir, "missing"))(context.Background()))
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "arial.ttf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	require.NoError(t, health.FileExists(path)(context.Background()))
	require.Error(t, health.FileExists(dir)(context.Background()))
	require.Error(t, health.FileExists(filepath.Join(dir, "nope.ttf"))(context.Background()))
}
