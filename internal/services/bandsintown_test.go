package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/soundcheck/internal/shared"
)

func newBandsintownTestServer(t *testing.T, handler http.HandlerFunc) *BandsintownService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewBandsintownService(ProviderConfig{
		Key:     "soundcheck-test",
		BaseURL: server.URL,
		Logger:  shared.NewLogger(io.Discard),
	})
}

func TestBandsintownService(t *testing.T) {
	ctx := context.Background()

	t.Run("Artist", func(t *testing.T) {
		svc := newBandsintownTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.EscapedPath() != "/artists/Daft%20Punk" {
				t.Errorf("unexpected path %s", r.URL.EscapedPath())
			}
			if r.URL.Query().Get("app_id") != "soundcheck-test" {
				t.Errorf("missing app_id: %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"id": 510, "name": "Daft Punk", "url": "u", "image_url": "https://photos.bandsintown.com/large/1.jpeg", "tracker_count": "12", "upcoming_event_count": 0}`))
		})

		artist := svc.Artist(ctx, "Daft Punk")
		if artist == nil {
			t.Fatal("expected artist")
		}
		if artist.ID != "510" || artist.TrackerCount != 12 {
			t.Errorf("unexpected artist %+v", artist)
		}
		if img := svc.ArtistImage(ctx, "Daft Punk"); img != "https://photos.bandsintown.com/large/1.jpeg" {
			t.Errorf("ArtistImage() = %s", img)
		}
	})

	t.Run("ArtistImage degrades to empty", func(t *testing.T) {
		tc := []struct {
			name    string
			handler http.HandlerFunc
		}{
			{"not found payload", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"error": "Not Found"}`)) }},
			{"empty object", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) }},
			{"status", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
			{"not json", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{warn=Not found}`)) }},
			{"no image", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"id": "1", "name": "Queen"}`)) }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				svc := newBandsintownTestServer(t, tt.handler)
				if img := svc.ArtistImage(ctx, "Queen"); img != "" {
					t.Errorf("expected empty image, got %s", img)
				}
			})
		}
	})

	t.Run("ArtistEvents", func(t *testing.T) {
		svc := newBandsintownTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/artists/Queen/events" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`[
				{"id": "1001", "datetime": "2025-06-01T20:00:00", "title": "", "url": "e1",
				 "venue": {"name": "O2 Arena", "city": "London", "country": "United Kingdom"},
				 "lineup": ["Queen + Adam Lambert"]},
				{"id": 1002, "datetime": "2025-06-05T19:30:00", "title": "Rhapsody Tour", "description": "Final night",
				 "venue": {"name": "Ziggo Dome", "city": "Amsterdam", "country": "Netherlands"}, "lineup": []}
			]`))
		})

		events := svc.ArtistEvents(ctx, "Queen")
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].ArtistName != "Queen + Adam Lambert" || events[0].Title != "Queen + Adam Lambert at O2 Arena" {
			t.Errorf("unexpected first event %+v", events[0])
		}
		if events[1].ID != "1002" || events[1].ArtistName != "Queen" || events[1].Venue.City != "Amsterdam" {
			t.Errorf("unexpected second event %+v", events[1])
		}
	})

	t.Run("ArtistEvents failures", func(t *testing.T) {
		tc := []struct {
			name    string
			handler http.HandlerFunc
		}{
			{"error payload", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"errorMessage": "[NotFound] The artist was not found"}`)) }},
			{"status", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) }},
			{"empty", func(w http.ResponseWriter, r *http.Request) {}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				svc := newBandsintownTestServer(t, tt.handler)
				if events := svc.ArtistEvents(ctx, "Queen"); len(events) != 0 {
					t.Errorf("expected no events, got %v", events)
				}
			})
		}
	})

	t.Run("unconfigured", func(t *testing.T) {
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requests.Add(1) }))
		defer server.Close()

		svc := NewBandsintownService(ProviderConfig{BaseURL: server.URL, Logger: shared.NewLogger(io.Discard)})
		if svc.Configured() {
			t.Error("expected unconfigured service")
		}
		if events := svc.ArtistEvents(ctx, "Queen"); events != nil {
			t.Errorf("expected nil, got %v", events)
		}
		if image := svc.ArtistImage(ctx, "Queen"); image != "" {
			t.Errorf("expected empty image, got %q", image)
		}
		if artist := svc.Artist(ctx, "Queen"); artist != nil {
			t.Errorf("expected nil artist, got %+v", artist)
		}
		if n := requests.Load(); n != 0 {
			t.Errorf("expected no requests, got %d", n)
		}
	})
}
