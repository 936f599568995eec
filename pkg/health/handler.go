package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler answers 200 while the process can serve requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks per request. Any failure turns the answer into 503.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, runChecks(r.Context(), checks, cfg))
	}
}

// write renders resp as JSON when asked via ?format=json or Accept, plain text otherwise.
func write(w http.ResponseWriter, r *http.Request, resp *Response) {
	status := http.StatusOK
	if resp.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}

	asJSON := r.URL.Query().Get("format") == "json" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
	if asJSON {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}
