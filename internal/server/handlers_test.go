package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/runsync/internal/convert"
	"github.com/claude/runsync/internal/ics"
)

const testCalendar = "BEGIN:VCALENDAR\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:workout-1@example.com\r\n" +
	"SUMMARY:Interval Workout\r\n" +
	"DESCRIPTION:5x(1km @ tempo\\, 2min recovery)\r\n" +
	"DTSTART:20260128T070000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func testServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	calSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testCalendar))
	}))
	t.Cleanup(calSrv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ics.NewClient(calSrv.URL, log), convert.New(nil, log), nil, nil, apiKey, log)
}

// TestHandleSyncConvertOnly verifies the sync endpoint returns converted
// workouts inline when no upload client is configured.
func TestHandleSyncConvertOnly(t *testing.T) {
	srv := testServer(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp syncResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Count != 1 {
		t.Errorf("resp = %+v, want success with 1 workout", resp)
	}
	if len(resp.Workouts) != 1 || resp.Workouts[0].WorkoutDate != "2026-01-28" {
		t.Errorf("workouts = %+v", resp.Workouts)
	}
}

// TestHandleWorkoutsPreview verifies the read-only preview endpoint.
func TestHandleWorkoutsPreview(t *testing.T) {
	srv := testServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp syncResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 {
		t.Errorf("count = %d, want 1", resp.Count)
	}
}

// TestHandleSyncFetchError verifies an unreachable calendar surfaces as a
// gateway error, not a success with empty output.
func TestHandleSyncFetchError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(ics.NewClient("http://127.0.0.1:1/cal.ics", log), convert.New(nil, log), nil, nil, "", log)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
