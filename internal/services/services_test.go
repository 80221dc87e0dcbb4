package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/soundcheck/internal/shared"
)

func TestFailureCategory(t *testing.T) {
	tc := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{shared.ErrMissingCredentials, "configuration"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{&StatusError{Provider: "lastfm", StatusCode: 500}, "status"},
		{&ProviderError{Provider: "lastfm", Code: 6, Message: "not found"}, "provider"},
		{fmt.Errorf("%w from audiodb", shared.ErrEmptyResponse), "empty"},
		{fmt.Errorf("%w: eof", shared.ErrMalformedResponse), "malformed"},
		{fmt.Errorf("%w: dial tcp", shared.ErrServiceUnavailable), "transport"},
	}

	for _, tt := range tc {
		t.Run(tt.want, func(t *testing.T) {
			if got := FailureCategory(tt.err); got != tt.want {
				t.Errorf("FailureCategory(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}

	t.Run("typed errors match ErrAPIRequest", func(t *testing.T) {
		if !errors.Is(&StatusError{}, shared.ErrAPIRequest) || !errors.Is(&ProviderError{}, shared.ErrAPIRequest) {
			t.Error("expected provider errors to wrap ErrAPIRequest")
		}
	})
}

func TestFlexibleJSON(t *testing.T) {
	t.Run("flexInt", func(t *testing.T) {
		var v struct {
			A, B, C, D flexInt
		}
		if err := json.Unmarshal([]byte(`{"A": 12, "B": "34", "C": "", "D": "n/a"}`), &v); err != nil {
			t.Fatal(err)
		}
		if v.A != 12 || v.B != 34 || v.C != 0 || v.D != 0 {
			t.Errorf("unexpected values %+v", v)
		}
	})

	t.Run("oneOrMany", func(t *testing.T) {
		type item struct{ Name string }
		tc := []struct {
			name string
			data string
			want int
		}{
			{"array", `[{"Name": "a"}, {"Name": "b"}]`, 2},
			{"object", `{"Name": "a"}`, 1},
			{"empty string", `""`, 0},
			{"null", `null`, 0},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				var got oneOrMany[item]
				if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
					t.Fatalf("unmarshal error = %v", err)
				}
				if len(got) != tt.want {
					t.Errorf("len = %d, want %d", len(got), tt.want)
				}
			})
		}
	})
}

func TestGateway(t *testing.T) {
	creds := shared.CredentialsConfig{}
	creds.LastFM.APIKey = "client"
	creds.LastFM.ServerAPIKey = "server"

	g := NewGateway(creds, nil, nil)
	if !g.LastFM.Configured() || g.Bandsintown.Configured() {
		t.Error("unexpected configuration state")
	}
	if g.LastFM.apiKey != "client" {
		t.Errorf("gateway should use the client key, got %s", g.LastFM.apiKey)
	}
	if s := NewServerLastFM(creds, nil, nil); s.apiKey != "server" {
		t.Errorf("server client should use the server key, got %s", s.apiKey)
	}

	creds.LastFM.ServerAPIKey = ""
	if s := NewServerLastFM(creds, nil, nil); s.apiKey != "client" {
		t.Errorf("server client should fall back to the client key, got %s", s.apiKey)
	}

	creds.LastFM.APIKey = ""
	if s := NewServerLastFM(creds, nil, nil); s.Configured() {
		t.Error("server client without any key should be unconfigured")
	}
}
