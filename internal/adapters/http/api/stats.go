package api

import (
	"maps"
	"net/http"
	"time"
)

// StatsProvider reports load and queue state for /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the provider's view stamped with the response time.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats handles GET /stats. When the provider reports a loadedAt
// timestamp the snapshot age in seconds is added.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	now := h.now().UTC()
	out := maps.Clone(h.provider.GetStats())
	if out == nil {
		out = map[string]interface{}{}
	}
	out["generatedAt"] = now.Format(time.RFC3339)
	if raw, ok := out["loadedAt"].(string); ok {
		if at, err := time.Parse(time.RFC3339, raw); err == nil {
			out["snapshotAgeSeconds"] = int(now.Sub(at).Seconds())
		}
	}
	writeJSON(w, http.StatusOK, out)
}
