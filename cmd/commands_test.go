package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/notes"
	"github.com/desertthunder/soundcheck/internal/server"
	"github.com/desertthunder/soundcheck/internal/shared"
	tu "github.com/desertthunder/soundcheck/internal/testing"
	"github.com/desertthunder/soundcheck/internal/views"
)

func TestArtistCommands(t *testing.T) {
	t.Run("list marks liked artists", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "artists", "like", "2"); err != nil {
			t.Fatalf("like failed: %v", err)
		}
		output.Reset()

		if err := run(t, runner, "artists", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 8 {
			t.Fatalf("expected 8 artists, got %d: %q", len(lines), output.String())
		}
		if !strings.HasPrefix(lines[1], "♥") || !strings.Contains(lines[1], "Queen") {
			t.Errorf("expected Queen marked as liked, got %q", lines[1])
		}
		if strings.HasPrefix(lines[0], "♥") {
			t.Errorf("expected The Weeknd not liked, got %q", lines[0])
		}
	})

	t.Run("list filters by search and prints JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "artists", "list", "--search", "rock", "--json"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var got []models.ArtistView
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", output.String(), err)
		}
		names := make([]string, len(got))
		for i, a := range got {
			names[i] = a.Name
		}
		if strings.Join(names, ",") != "Queen,Arctic Monkeys,Radiohead" {
			t.Errorf("unexpected matches: %v", names)
		}
	})

	t.Run("list with images uses provider images", func(t *testing.T) {
		mock := &tu.MockProviders{Images: map[string]string{"Queen": "https://img.example/queen.jpg"}}
		runner, output := newTestRunner(t, RunnerOpts{Providers: &views.Providers{Images: mock}})

		if err := run(t, runner, "artists", "list", "--search", "queen", "--images"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "https://img.example/queen.jpg") {
			t.Errorf("expected provider image, got %q", output.String())
		}
	})

	t.Run("toggle twice restores the liked set", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "artists", "toggle", "5"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !strings.Contains(output.String(), "Liked Billie Eilish") {
			t.Errorf("expected like confirmation, got %q", output.String())
		}
		if err := run(t, runner, "artists", "toggle", "5"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if ids := runner.store.LikedArtistIDs(); len(ids) != 0 {
			t.Errorf("expected no liked artists, got %v", ids)
		}
	})

	t.Run("like unknown artist fails", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "artists", "like", "99")
		if !errors.Is(err, shared.ErrArtistNotFound) {
			t.Errorf("expected ErrArtistNotFound, got %v", err)
		}
	})

	t.Run("missing id argument", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "artists", "show")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("liked exports csv in like order", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})
		run(t, runner, "artists", "like", "8")
		run(t, runner, "artists", "like", "1")
		output.Reset()

		if err := run(t, runner, "artists", "liked", "--format", "csv"); err != nil {
			t.Fatalf("liked failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %q", output.String())
		}
		if !strings.Contains(lines[1], "Radiohead") || !strings.Contains(lines[2], "The Weeknd") {
			t.Errorf("expected like order, got %q", lines[1:])
		}
	})

	t.Run("liked writes to file", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})
		run(t, runner, "artists", "like", "3")
		path := filepath.Join(t.TempDir(), "liked.md")

		if err := run(t, runner, "artists", "liked", "--format", "markdown", "--output", path); err != nil {
			t.Fatalf("liked failed: %v", err)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "Ed Sheeran") {
			t.Errorf("expected exported artist, got %q", content)
		}
		if !strings.Contains(output.String(), "Exported 1 liked artists") {
			t.Errorf("expected export confirmation, got %q", output.String())
		}
	})

	t.Run("liked rejects unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "artists", "liked", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("show prints enriched page", func(t *testing.T) {
		mock := &tu.MockProviders{
			Details: map[string]*models.ArtistDetail{
				"Daft Punk": {Name: "Daft Punk", Biography: "French electronic duo.", Country: "France"},
			},
			Albums: map[string][]models.Album{
				"Daft Punk": {{Title: "Discovery", YearReleased: "2001"}, {Title: "Homework"}},
			},
			Refined: map[string]models.Album{
				"Homework": {Title: "Homework", YearReleased: "1997", Genre: "House"},
			},
		}
		runner, output := newTestRunner(t, RunnerOpts{Providers: &views.Providers{Enricher: mock, Discography: mock}})

		if err := run(t, runner, "artists", "show", "4"); err != nil {
			t.Fatalf("show failed: %v", err)
		}

		out := output.String()
		for _, want := range []string{"Daft Punk", "French electronic duo.", "Country: France", "2001  Discovery", "1997  Homework · House"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output:\n%s", want, out)
			}
		}
	})

	t.Run("show without enrichment falls back to catalog", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "artists", "show", "2", "--json"); err != nil {
			t.Fatalf("show failed: %v", err)
		}

		var page models.ArtistPage
		if err := json.Unmarshal(output.Bytes(), &page); err != nil {
			t.Fatalf("expected JSON page, got %q: %v", output.String(), err)
		}
		if page.Artist.Name != "Queen" || page.Detail != nil || len(page.Albums) != 0 {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("events prints provider events", func(t *testing.T) {
		mock := &tu.MockProviders{Events: map[string][]models.Event{
			"Radiohead": {{ID: "x1", Title: "Radiohead Live", Datetime: "2025-05-01T20:00:00", Venue: models.Venue{Name: "O2", City: "London", Country: "UK"}}},
		}}
		runner, output := newTestRunner(t, RunnerOpts{Providers: &views.Providers{Events: mock}})

		if err := run(t, runner, "artists", "events", "8"); err != nil {
			t.Fatalf("events failed: %v", err)
		}
		if !strings.Contains(output.String(), "Radiohead Live") || !strings.Contains(output.String(), "O2, London, UK") {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("open launches Last.fm page", func(t *testing.T) {
		var opened string
		runner, _ := newTestRunner(t, RunnerOpts{OpenURL: func(u string) error {
			opened = u
			return nil
		}})

		if err := run(t, runner, "artists", "open", "6"); err != nil {
			t.Fatalf("open failed: %v", err)
		}
		if opened != "https://www.last.fm/music/Arctic+Monkeys" {
			t.Errorf("unexpected url %q", opened)
		}
	})
}

func TestNoteCommands(t *testing.T) {
	t.Run("add show edit delete", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "notes", "add", "2", "--content", "  Bring earplugs  "); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		stored := runner.notes.List()
		if len(stored) != 1 || stored[0].Content != "Bring earplugs" || stored[0].EventID != "2" {
			t.Fatalf("unexpected notes: %+v", stored)
		}
		id := stored[0].ID

		output.Reset()
		if err := run(t, runner, "notes", "show", "2"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Rock Night") || !strings.Contains(output.String(), "Bring earplugs") {
			t.Errorf("unexpected show output: %q", output.String())
		}

		if err := run(t, runner, "notes", "edit", id, "--content", "Bring earplugs and a jacket"); err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if got := runner.notes.Get(id); got == nil || got.Content != "Bring earplugs and a jacket" {
			t.Errorf("expected updated content, got %+v", got)
		}

		if err := run(t, runner, "notes", "delete", id); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if len(runner.notes.List()) != 0 {
			t.Error("expected note to be deleted")
		}
	})

	t.Run("add rejects unknown event", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "notes", "add", "42", "--content", "hello")
		if !errors.Is(err, shared.ErrEventNotFound) {
			t.Errorf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("add rejects blank content", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "notes", "add", "1", "--content", "   ")
		if !errors.Is(err, notes.ErrEmptyContent) {
			t.Errorf("expected ErrEmptyContent, got %v", err)
		}
	})

	t.Run("add rejects second note on an event", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})
		run(t, runner, "notes", "add", "1", "--content", "first")

		err := run(t, runner, "notes", "add", "1", "--content", "second")
		if !errors.Is(err, notes.ErrNoteExists) {
			t.Errorf("expected ErrNoteExists, got %v", err)
		}
	})

	t.Run("edit unknown note", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "notes", "edit", "nope", "--content", "x")
		if !errors.Is(err, notes.ErrNoteNotFound) {
			t.Errorf("expected ErrNoteNotFound, got %v", err)
		}
	})

	t.Run("delete unknown note is not an error", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})

		if err := run(t, runner, "notes", "delete", "nope"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No note with id nope") {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("list searches and exports", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})
		run(t, runner, "notes", "add", "1", "--content", "Front row")
		run(t, runner, "notes", "add", "3", "--content", "Meet friends at the gate")
		output.Reset()

		if err := run(t, runner, "notes", "list", "--search", "sheeran", "--format", "json"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		var got []models.NoteView
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("expected JSON, got %q: %v", output.String(), err)
		}
		if len(got) != 1 || got[0].Note.Content != "Meet friends at the gate" {
			t.Errorf("unexpected notes: %+v", got)
		}
	})

	t.Run("events list shows notes", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{})
		run(t, runner, "notes", "add", "2", "--content", "Wembley!")
		output.Reset()

		if err := run(t, runner, "events", "list", "--search", "london"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Rock Night") || !strings.Contains(out, "Wembley!") {
			t.Errorf("unexpected output: %q", out)
		}
		if strings.Contains(out, "Pop Extravaganza") {
			t.Errorf("expected search to exclude other events: %q", out)
		}
	})
}

func TestLookupCommands(t *testing.T) {
	withKeys := func() *shared.Config {
		config := shared.DefaultConfig()
		config.Credentials.LastFM.APIKey = "lastfm-key"
		config.Credentials.Bandsintown.AppID = "bit-app"
		return config
	}

	t.Run("search prints matches", func(t *testing.T) {
		body := `{"results":{"artistmatches":{"artist":[{"name":"Queen","listeners":"4200","image":[{"#text":"","size":"small"}]}]}}}`
		runner, output := newTestRunner(t, RunnerOpts{
			Config:     withKeys(),
			HTTPClient: tu.NewMockClient(tu.TextResponse(http.StatusOK, body), nil),
		})

		if err := run(t, runner, "lookup", "search", "queen"); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		var got []models.ArtistSummary
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("expected JSON, got %q: %v", output.String(), err)
		}
		if len(got) != 1 || got[0].Name != "Queen" || got[0].Listeners != 4200 {
			t.Errorf("unexpected matches: %+v", got)
		}
	})

	t.Run("degraded lookup prints empty list", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{
			Config:     withKeys(),
			HTTPClient: tu.NewMockClient(nil, errors.New("connection refused")),
		})

		if err := run(t, runner, "lookup", "events", "Queen", "--pretty=false"); err != nil {
			t.Fatalf("events failed: %v", err)
		}
		if got := strings.TrimSpace(output.String()); got != "[]" {
			t.Errorf("expected [], got %q", got)
		}
	})

	t.Run("missing key degrades to empty", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{
			HTTPClient: tu.NewMockClient(tu.TextResponse(http.StatusOK, `{}`), nil),
		})
		runner.config.Credentials.LastFM.APIKey = ""
		t.Setenv(shared.EnvLastFMAPIKey, "")

		if err := run(t, runner, "lookup", "top-tracks", "Queen", "--pretty=false"); err != nil {
			t.Fatalf("top-tracks failed: %v", err)
		}
		if got := strings.TrimSpace(output.String()); got != "[]" {
			t.Errorf("expected [], got %q", got)
		}
	})

	t.Run("raw info passes body through", func(t *testing.T) {
		body := `{"artist":{"name":"Radiohead","stats":{"listeners":"10"}}}`
		runner, output := newTestRunner(t, RunnerOpts{
			Config:     withKeys(),
			HTTPClient: tu.NewMockClient(tu.TextResponse(http.StatusOK, body), nil),
		})

		if err := run(t, runner, "lookup", "info", "Radiohead", "--raw"); err != nil {
			t.Fatalf("info failed: %v", err)
		}
		if got := strings.TrimSpace(output.String()); got != body {
			t.Errorf("expected raw body, got %q", got)
		}
	})

	t.Run("album falls back to the requested title", func(t *testing.T) {
		runner, output := newTestRunner(t, RunnerOpts{
			Config:     withKeys(),
			HTTPClient: tu.NewMockClient(tu.TextResponse(http.StatusOK, `{"album":null}`), nil),
		})

		if err := run(t, runner, "lookup", "album", "Queen", "Jazz"); err != nil {
			t.Fatalf("album failed: %v", err)
		}

		var got models.Album
		if err := json.Unmarshal(output.Bytes(), &got); err != nil {
			t.Fatalf("expected JSON, got %q: %v", output.String(), err)
		}
		if got.Title != "Jazz" || got.Refined {
			t.Errorf("unexpected album: %+v", got)
		}
	})
}

func TestServeCommand(t *testing.T) {
	t.Run("rejects invalid port", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})

		err := run(t, runner, "serve", "--port", "70000")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("runServer stops when context is done", func(t *testing.T) {
		runner, _ := newTestRunner(t, RunnerOpts{})
		cfg := shared.ServerConfig{Host: "127.0.0.1", Port: 0}
		srv := server.New(cfg, server.NewRouter(nil, cfg, nil), shared.NewLogger(io.Discard))

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- runner.runServer(ctx, srv) }()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
	})
}

func TestSetupCommand(t *testing.T) {
	t.Run("creates config and database", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		runner, output := newTestRunner(t, RunnerOpts{})
		err := runner.app().Run(context.Background(), []string{
			"soundcheck", "--config", "config.toml", "--env-file", ".env", "setup", "database",
		})
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
		tu.AssertFileExists(t, filepath.Join(dir, "soundcheck.db"))
		if !strings.Contains(output.String(), "Database ready") {
			t.Errorf("unexpected output: %q", output.String())
		}

		output.Reset()
		err = runner.app().Run(context.Background(), []string{
			"soundcheck", "--config", "config.toml", "--env-file", ".env", "setup", "status",
		})
		if err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ 0000") {
			t.Errorf("expected applied migration, got %q", output.String())
		}
	})

	t.Run("rollback needs confirmation", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		setup := func(args ...string) (string, error) {
			runner, output := newTestRunner(t, RunnerOpts{})
			base := []string{"soundcheck", "--config", "config.toml", "--env-file", ".env", "setup"}
			err := runner.app().Run(context.Background(), append(base, args...))
			return output.String(), err
		}

		if _, err := setup("database"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		out, err := setup("rollback")
		if err != nil {
			t.Fatalf("rollback failed: %v", err)
		}
		if !strings.Contains(out, "rerun with --yes") {
			t.Errorf("expected confirmation prompt, got %q", out)
		}
		if out, _ := setup("status"); !strings.Contains(out, "✓ 0000") {
			t.Errorf("expected migration to stay applied, got %q", out)
		}

		out, err = setup("rollback", "--yes")
		if err != nil {
			t.Fatalf("rollback failed: %v", err)
		}
		if !strings.Contains(out, "✓ Rolled back 0000") {
			t.Errorf("unexpected output: %q", out)
		}
		if out, _ := setup("status"); !strings.Contains(out, "No migrations applied") {
			t.Errorf("expected no applied migrations, got %q", out)
		}

		if out, err := setup("rollback", "--yes"); err != nil || !strings.Contains(out, "No migrations to roll back") {
			t.Errorf("expected nothing to roll back, got %q, %v", out, err)
		}
	})

	t.Run("keeps an existing config", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		conf := "[database]\npath = \"custom.db\"\n"
		if err := os.WriteFile("config.toml", []byte(conf), 0644); err != nil {
			t.Fatal(err)
		}

		runner, _ := newTestRunner(t, RunnerOpts{})
		err := runner.app().Run(context.Background(), []string{
			"soundcheck", "--config", "config.toml", "--env-file", ".env", "setup", "database",
		})
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "custom.db"))
		if got := tu.MustReadFile(t, filepath.Join(dir, "config.toml")); got != conf {
			t.Errorf("expected config to be left untouched, got %q", got)
		}
	})
}
