package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/touchline/pkg/metrics"
)

// route names one endpoint and the service component its failures belong to.
type route struct {
	endpoint  string
	component string
}

// instrument records request counts and latency for r, and counts responses
// of 400 and above against r's component.
func instrument(r route, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(r.endpoint, req.Method, code)
		metrics.RecordHTTPRequestDuration(r.endpoint, req.Method, code, float64(time.Since(start).Milliseconds()))
		if kind := failureKind(rec.status); kind != "" {
			metrics.RecordErrorByComponent(r.component, kind)
		}
	}
}

// failureKind maps a status onto the error vocabulary shared with the
// source loader and reload queue. Success yields "".
func failureKind(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return ""
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusTooManyRequests:
		return "busy"
	case status == http.StatusServiceUnavailable:
		return "unavailable"
	case status >= http.StatusInternalServerError:
		return "internal"
	default:
		return "bad_request"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
