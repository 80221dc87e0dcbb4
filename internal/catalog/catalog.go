// package catalog loads the artist and event seed data
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is an immutable, ordered set of artists and events.
type Catalog struct {
	artists []models.Artist
	events  []models.Event
}

type document struct {
	Artists []models.Artist `yaml:"artists"`
	Events  []models.Event  `yaml:"events"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog from the YAML file at path, or returns [Default] when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
//
// Every entry must have an id and ids must be unique within artists and within events.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	artistIDs := make(map[string]bool, len(doc.Artists))
	for i, a := range doc.Artists {
		if strings.TrimSpace(a.ID) == "" {
			return nil, fmt.Errorf("%w: artist at index %d has no id", shared.ErrInvalidInput, i)
		}
		if artistIDs[a.ID] {
			return nil, fmt.Errorf("%w: artist %s", shared.ErrDuplicateID, a.ID)
		}
		artistIDs[a.ID] = true
	}

	eventIDs := make(map[string]bool, len(doc.Events))
	for i, e := range doc.Events {
		if strings.TrimSpace(e.ID) == "" {
			return nil, fmt.Errorf("%w: event at index %d has no id", shared.ErrInvalidInput, i)
		}
		if eventIDs[e.ID] {
			return nil, fmt.Errorf("%w: event %s", shared.ErrDuplicateID, e.ID)
		}
		eventIDs[e.ID] = true
	}

	return &Catalog{artists: doc.Artists, events: doc.Events}, nil
}

// Artists returns a copy of the artists in catalog order.
func (c *Catalog) Artists() []models.Artist {
	out := make([]models.Artist, len(c.artists))
	copy(out, c.artists)
	return out
}

// Events returns a copy of the events in catalog order.
func (c *Catalog) Events() []models.Event {
	out := make([]models.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Artist looks up an artist by id.
func (c *Catalog) Artist(id string) (models.Artist, bool) {
	for _, a := range c.artists {
		if a.ID == id {
			return a, true
		}
	}
	return models.Artist{}, false
}

// Event looks up an event by id.
func (c *Catalog) Event(id string) (models.Event, bool) {
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
