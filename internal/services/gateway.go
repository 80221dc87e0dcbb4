package services

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/shared"
)

// Gateway bundles the provider clients used for enrichment.
type Gateway struct {
	LastFM      *LastFMService
	Bandsintown *BandsintownService
	AudioDB     *AudioDBService
}

// NewGateway builds the provider clients from credentials. Missing credentials are not an error.
func NewGateway(creds shared.CredentialsConfig, client *http.Client, logger *log.Logger) *Gateway {
	cfg := func(key string) ProviderConfig {
		return ProviderConfig{Key: key, HTTPClient: client, Logger: logger}
	}

	return &Gateway{
		LastFM:      NewLastFMService(cfg(creds.LastFM.APIKey)),
		Bandsintown: NewBandsintownService(cfg(creds.Bandsintown.AppID)),
		AudioDB:     NewAudioDBService(cfg(creds.AudioDB.APIKey)),
	}
}

// NewServerLastFM builds the Last.fm client used by the HTTP passthrough with the server-side key,
// falling back to the client key when no server key is set.
func NewServerLastFM(creds shared.CredentialsConfig, client *http.Client, logger *log.Logger) *LastFMService {
	key := creds.LastFM.ServerAPIKey
	if key == "" {
		key = creds.LastFM.APIKey
	}
	return NewLastFMService(ProviderConfig{Key: key, HTTPClient: client, Logger: logger})
}
