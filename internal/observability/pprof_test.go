package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/config"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}
	if err := StopPprofServer(srv, nil, time.Second); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_RejectsSharedAddr(t *testing.T) {
	_, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: ":8080", HTTPAddr: ":8080"}, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error when pprof shares the API address")
	}
}

func TestPprofMux_ServesNamedProfiles(t *testing.T) {
	mux := newPprofMux()
	for _, name := range []string{"goroutine", "heap"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/"+name+"?debug=1", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("profile %s returned status %d", name, rec.Code)
		}
	}
}
