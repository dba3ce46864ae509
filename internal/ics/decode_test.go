package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleCalendar = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Runna Training Calendar//example.com//\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:workout-1@example.com\r\n" +
	"SUMMARY:Interval Workout\r\n" +
	"DESCRIPTION:Warm up 10min easy\\, 5x(1km @ tempo\\, 2min recovery)\\, Coo\r\n" +
	" l down 10min easy\r\n" +
	"DTSTART:20260128T070000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:workout-2@example.com\r\n" +
	"SUMMARY:Easy Run\r\n" +
	"DESCRIPTION:Easy run for 30 minutes\r\n" +
	"DTSTART;VALUE=DATE:20260129\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

// TestDecode verifies VEVENT extraction: line unfolding, comma unescaping,
// and both DTSTART shapes.
func TestDecode(t *testing.T) {
	events, err := Decode(strings.NewReader(sampleCalendar))
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	first := events[0]
	if first.UID != "workout-1@example.com" {
		t.Errorf("uid = %q", first.UID)
	}
	if first.Summary != "Interval Workout" {
		t.Errorf("summary = %q", first.Summary)
	}
	want := "Warm up 10min easy, 5x(1km @ tempo, 2min recovery), Cool down 10min easy"
	if first.Description != want {
		t.Errorf("description = %q, want %q", first.Description, want)
	}
	if !first.Start.Equal(time.Date(2026, 1, 28, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", first.Start)
	}

	second := events[1]
	if !second.Start.Equal(time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date-only start = %v", second.Start)
	}
}

// TestDecodeEscapes verifies the remaining RFC 5545 text escapes.
func TestDecodeEscapes(t *testing.T) {
	cal := "BEGIN:VCALENDAR\r\n" +
		"BEGIN:VEVENT\r\n" +
		"SUMMARY:Track Workout\r\n" +
		"DESCRIPTION:Line one\\nLine two\\; with semicolon\\\\backslash\r\n" +
		"DTSTART:20260201T060000\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events, err := Decode(strings.NewReader(cal))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	want := "Line one\nLine two; with semicolon\\backslash"
	if events[0].Description != want {
		t.Errorf("description = %q, want %q", events[0].Description, want)
	}
}

// TestDecodeBadDate verifies malformed container data surfaces as an
// error instead of a half-parsed event.
func TestDecodeBadDate(t *testing.T) {
	cal := "BEGIN:VEVENT\r\nSUMMARY:Run\r\nDTSTART:sometime\r\nEND:VEVENT\r\n"
	if _, err := Decode(strings.NewReader(cal)); err == nil {
		t.Fatal("expected error for malformed DTSTART")
	}
}

// TestClientFetch exercises the HTTP path against a fake calendar server.
func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(sampleCalendar))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	events, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2", len(events))
	}
}

// TestClientFetchError verifies a non-200 response is reported, not
// swallowed.
func TestClientFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, nil).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
