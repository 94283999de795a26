package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInstrumentTransport checks that requests are counted per client and
// status code.
func TestInstrumentTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	m := New()
	hc := &http.Client{Transport: m.InstrumentTransport("api", srv.Client().Transport)}
	for _, p := range []string{"/a", "/b", "/missing"} {
		resp, err := hc.Get(srv.URL + p)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("api", "200", "get")); got != 2 {
		t.Errorf("expected 2 successful requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("api", "404", "get")); got != 1 {
		t.Errorf("expected 1 failed request, got %v", got)
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.CoversShown.Inc()
	path := filepath.Join(t.TempDir(), "artist_explorer.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "artist_explorer_covers_shown_total 1") {
		t.Errorf("counter missing from output:\n%s", b)
	}
}
