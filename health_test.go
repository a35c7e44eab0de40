package apidoc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckerCheck(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()
	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	goneURL := gone.URL
	gone.Close()

	checker := NewHealthChecker()
	log := &captureLogger{}
	checker.SetLogger(log)

	statuses := checker.Check(context.Background(), []string{up.URL, down.URL, goneURL})
	assert.Len(t, statuses, 3)

	assert.True(t, statuses[0].Healthy)
	assert.Equal(t, http.StatusOK, statuses[0].StatusCode)
	assert.NotEmpty(t, statuses[0].ID)
	assert.False(t, statuses[0].CheckedAt.IsZero())

	assert.False(t, statuses[1].Healthy)
	assert.Equal(t, http.StatusInternalServerError, statuses[1].StatusCode)

	assert.False(t, statuses[2].Healthy)
	assert.Zero(t, statuses[2].StatusCode)
	assert.NotEmpty(t, statuses[2].Error)
	assert.NotEqual(t, statuses[0].ID, statuses[1].ID)

	warned := false
	for _, line := range log.lines {
		if strings.Contains(line, "health probe") && strings.Contains(line, "failed") {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestHealthCheckerHeadFallsBackToGet(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewHealthChecker()
	checker.SetLogger(&captureLogger{})
	statuses := checker.Check(context.Background(), []string{srv.URL})

	assert.True(t, statuses[0].Healthy)
	assert.Equal(t, http.StatusOK, statuses[0].StatusCode)
	assert.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
}

func TestHealthCheckerPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checker := NewHealthChecker()
	checker.SetLogger(&captureLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var rounds atomic.Int32
	checker.Poll(ctx, []string{srv.URL}, 10*time.Millisecond, func(statuses []HealthStatus) {
		assert.Len(t, statuses, 1)
		if rounds.Add(1) >= 2 {
			cancel()
		}
	})
	assert.GreaterOrEqual(t, rounds.Load(), int32(2))
}

func TestServerTargets(t *testing.T) {
	doc := mustDoc(t, `{
		"openapi": "3.1.0",
		"info": {"title": "Envs", "version": "1.0.0"},
		"servers": [
			{"url": "https://api.example.com/v1"},
			{
				"url": "https://{region}.example.com:{port}/v1",
				"variables": {
					"region": {"default": "eu"},
					"port": {"default": "8443"}
				}
			},
			{"url": ""}
		],
		"paths": {
			"/ping": {"get": {"responses": {"200": {"description": "OK"}}}}
		}
	}`)
	assert.Equal(t, []string{
		"https://api.example.com/v1",
		"https://eu.example.com:8443/v1",
	}, ServerTargets(doc))
	assert.Nil(t, ServerTargets(nil))
}
