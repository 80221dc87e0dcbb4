package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/services"
	"github.com/desertthunder/soundcheck/internal/shared"
)

// ArtistInfoFetcher returns the raw Last.fm artist.getinfo body for a query.
type ArtistInfoFetcher interface {
	RawArtistInfo(ctx context.Context, query string) ([]byte, error)
}

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ArtistsHandler forwards artist lookups to Last.fm.
type ArtistsHandler struct {
	lookup ArtistInfoFetcher
	logger *log.Logger
}

// NewArtistsHandler creates a handler backed by lookup.
func NewArtistsHandler(lookup ArtistInfoFetcher, logger *log.Logger) *ArtistsHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ArtistsHandler{lookup: lookup, logger: logger}
}

// Routes returns the path patterns this handler serves.
func (h *ArtistsHandler) Routes() []string {
	return []string{"/api/artists"}
}

func (h *ArtistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	body, err := h.lookup.RawArtistInfo(r.Context(), query)
	if err != nil {
		h.logger.Warn("artist lookup failed", "query", query, "category", services.FailureCategory(err), "error", err)

		var statusErr *services.StatusError
		switch {
		case errors.Is(err, shared.ErrMissingCredentials):
			writeError(w, http.StatusInternalServerError, "Last.fm API key not configured")
		case errors.As(err, &statusErr):
			writeError(w, http.StatusInternalServerError, "Failed to fetch from Last.fm")
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server Error", Detail: err.Error()})
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
