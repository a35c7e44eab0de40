package apidoc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goodluckxu-go/apidoc/openapi"

	"github.com/google/uuid"
)

// HealthStatus is the outcome of probing one server URL.
type HealthStatus struct {
	ID         string        `json:"id"`
	Target     string        `json:"target"`
	Healthy    bool          `json:"healthy"`
	StatusCode int           `json:"status_code,omitempty"`
	Latency    time.Duration `json:"latency"`
	Error      string        `json:"error,omitempty"`
	CheckedAt  time.Time     `json:"checked_at"`
}

// HealthChecker probes documented server URLs with HEAD requests, falling
// back to GET for servers that reject HEAD.
type HealthChecker struct {
	client *http.Client
	log    Logger
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		client: &http.Client{Timeout: 10 * time.Second},
		log:    &levelHandleLogger{log: &defaultLogger{}},
	}
}

// SetLogger It is a function for setting custom logs
func (h *HealthChecker) SetLogger(log Logger) {
	h.log = &levelHandleLogger{log: log}
}

// SetClient replaces the probe client, usually to adjust its timeout.
func (h *HealthChecker) SetClient(client *http.Client) {
	if client != nil {
		h.client = client
	}
}

// Check probes every target once, in order.
func (h *HealthChecker) Check(ctx context.Context, targets []string) []HealthStatus {
	list := make([]HealthStatus, 0, len(targets))
	for _, target := range targets {
		list = append(list, h.probe(ctx, target))
	}
	return list
}

// Poll probes immediately and then on every tick until the context ends.
func (h *HealthChecker) Poll(ctx context.Context, targets []string, interval time.Duration, fn func([]HealthStatus)) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		fn(h.Check(ctx, targets))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *HealthChecker) probe(ctx context.Context, target string) HealthStatus {
	st := HealthStatus{
		ID:        uuid.NewString(),
		Target:    target,
		CheckedAt: time.Now(),
	}
	start := time.Now()
	code, err := h.request(ctx, http.MethodHead, target)
	if err != nil || code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented {
		code, err = h.request(ctx, http.MethodGet, target)
	}
	st.Latency = time.Since(start)
	if err != nil {
		st.Error = err.Error()
		h.log.Warning("health probe %s failed: %v", target, err)
		return st
	}
	st.StatusCode = code
	st.Healthy = code < http.StatusBadRequest
	h.log.Debug("health probe %s: %d in %s", target, code, st.Latency)
	return st
}

func (h *HealthChecker) request(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// ServerTargets expands a document's server URLs, substituting variable
// defaults into {placeholders}.
func ServerTargets(doc *openapi.OpenAPI) []string {
	if doc == nil {
		return nil
	}
	var targets []string
	for _, srv := range doc.Servers {
		if srv == nil || srv.URL == "" {
			continue
		}
		u := srv.URL
		for name, v := range srv.Variables {
			if v != nil {
				u = strings.ReplaceAll(u, "{"+name+"}", v.Default)
			}
		}
		targets = append(targets, u)
	}
	return targets
}
