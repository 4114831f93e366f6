package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticReporter bool

func (s staticReporter) Connected() bool { return bool(s) }

func TestHandleReportsStoreState(t *testing.T) {
	for _, connected := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		Handle("development", staticReporter(connected))(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var status Status
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if status.Status != "healthy" {
			t.Fatalf("status = %q, want healthy", status.Status)
		}
		if status.Environment != "development" {
			t.Fatalf("environment = %q, want development", status.Environment)
		}
		if status.StoreConnected != connected {
			t.Fatalf("storeConnected = %v, want %v", status.StoreConnected, connected)
		}
	}
}
