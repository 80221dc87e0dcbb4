// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/soundcheck/internal/models"
)

// MockProviders is a test double for the enrichment providers.
//
// Lookups are keyed by artist name; album details by album title. Missing entries behave like a
// provider that found nothing. Release, when set, blocks every call until it is closed.
type MockProviders struct {
	Details map[string]*models.ArtistDetail
	Albums  map[string][]models.Album
	Refined map[string]models.Album
	Images  map[string]string
	Events  map[string][]models.Event
	Release chan struct{}

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockProviders) record(op string) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[op]++
	m.mu.Unlock()

	if m.Release != nil {
		<-m.Release
	}
}

// Calls returns how many times op was invoked.
func (m *MockProviders) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockProviders) SearchArtist(ctx context.Context, name string) *models.ArtistDetail {
	m.record("SearchArtist")
	return m.Details[name]
}

func (m *MockProviders) Discography(ctx context.Context, name string) []models.Album {
	m.record("Discography")
	return m.Albums[name]
}

func (m *MockProviders) AlbumDetail(ctx context.Context, artist string, coarse models.Album) models.Album {
	m.record("AlbumDetail")
	if ctx.Err() != nil {
		return coarse
	}
	if refined, ok := m.Refined[coarse.Title]; ok {
		refined.Refined = true
		return refined
	}
	return coarse
}

func (m *MockProviders) ArtistImage(ctx context.Context, name string) string {
	m.record("ArtistImage")
	return m.Images[name]
}

func (m *MockProviders) ArtistEvents(ctx context.Context, name string) []models.Event {
	m.record("ArtistEvents")
	return m.Events[name]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// NewMockClient returns an [http.Client] whose transport always yields r and e.
func NewMockClient(r *http.Response, e error) *http.Client {
	return &http.Client{Transport: NewMockRoundTripper(r, e)}
}

// TextResponse builds a response with the given status and body.
func TextResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
