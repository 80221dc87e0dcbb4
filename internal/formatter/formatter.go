// package formatter exports liked artists and event notes to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/desertthunder/soundcheck/internal/shared"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

// Formats lists the accepted values for the export format flag.
var Formats = []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

const (
	eventDateLayout = "Mon, Jan 2 2006 at 3:04 PM"
	timestampLayout = "2006-01-02 15:04"
)

// Export renders data in the given format. data must be []models.NoteView or []models.Artist.
func Export(format string, data any) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportJSON(data)
	case FormatCSV, FormatMarkdown, FormatText:
	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", shared.ErrInvalidFormat, format, strings.Join(Formats, ", "))
	}

	switch v := data.(type) {
	case []models.NoteView:
		switch format {
		case FormatCSV:
			return ExportNotesCSV(v)
		case FormatMarkdown:
			return ExportNotesMarkdown(v)
		default:
			return ExportNotesText(v)
		}
	case []models.Artist:
		switch format {
		case FormatCSV:
			return ExportArtistsCSV(v)
		case FormatMarkdown:
			return ExportArtistsMarkdown(v)
		default:
			return ExportArtistsText(v)
		}
	default:
		return nil, fmt.Errorf("%w: cannot export %T", shared.ErrInvalidInput, data)
	}
}

// ExportJSON renders v as indented JSON.
func ExportJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// EventDate formats an event's datetime for display, falling back to the raw value.
func EventDate(e models.Event) string {
	if t, ok := e.Time(); ok {
		return t.Format(eventDateLayout)
	}
	return e.Datetime
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportNotesCSV converts notes to CSV with columns: ID, Event, Artist, Date, Venue, City, Content, Created, Updated
func ExportNotesCSV(notes []models.NoteView) ([]byte, error) {
	headers := []string{"ID", "Event", "Artist", "Date", "Venue", "City", "Content", "Created", "Updated"}

	records := make([][]string, 0, len(notes))
	for _, n := range notes {
		records = append(records, []string{
			n.Note.ID,
			n.Event.Title,
			n.Event.ArtistName,
			n.Event.Datetime,
			n.Event.Venue.Name,
			n.Event.Venue.City,
			n.Note.Content,
			n.Note.CreatedAt.Format(time.RFC3339),
			n.Note.UpdatedAt.Format(time.RFC3339),
		})
	}
	return writeCSV(headers, records)
}

// ExportNotesMarkdown converts notes to Markdown, one section per note.
func ExportNotesMarkdown(notes []models.NoteView) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Event Notes\n\n")
	fmt.Fprintf(&buf, "**Notes**: %d\n\n", len(notes))

	for _, n := range notes {
		fmt.Fprintf(&buf, "## %s\n\n", n.Event.Title)
		fmt.Fprintf(&buf, "- **Artist**: %s\n", n.Event.ArtistName)
		fmt.Fprintf(&buf, "- **When**: %s\n", EventDate(n.Event))
		fmt.Fprintf(&buf, "- **Where**: %s, %s\n", n.Event.Venue.Name, n.Event.Venue.City)
		fmt.Fprintf(&buf, "- **Written**: %s\n", n.Note.CreatedAt.Format(timestampLayout))
		if n.Note.Edited() {
			fmt.Fprintf(&buf, "- **Edited**: %s\n", n.Note.UpdatedAt.Format(timestampLayout))
		}

		buf.WriteString("\n")
		for _, line := range strings.Split(n.Note.Content, "\n") {
			fmt.Fprintf(&buf, "> %s\n", line)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportNotesText converts notes to plain text.
func ExportNotesText(notes []models.NoteView) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Notes: %d\n\n", len(notes))
	for i, n := range notes {
		fmt.Fprintf(&buf, "%d. %s - %s (%s)\n", i+1, n.Event.ArtistName, n.Event.Title, EventDate(n.Event))
		for _, line := range strings.Split(n.Note.Content, "\n") {
			fmt.Fprintf(&buf, "   %s\n", line)
		}
	}
	return buf.Bytes(), nil
}

// ExportArtistsCSV converts artists to CSV with columns: ID, Name, Genre, Image
func ExportArtistsCSV(artists []models.Artist) ([]byte, error) {
	records := make([][]string, 0, len(artists))
	for _, a := range artists {
		records = append(records, []string{a.ID, a.Name, a.Genre, a.Image})
	}
	return writeCSV([]string{"ID", "Name", "Genre", "Image"}, records)
}

// ExportArtistsMarkdown converts artists to a Markdown list
func ExportArtistsMarkdown(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Liked Artists\n\n")
	fmt.Fprintf(&buf, "**Artists**: %d\n\n", len(artists))
	for i, a := range artists {
		fmt.Fprintf(&buf, "%d. **%s** (%s)\n", i+1, a.Name, a.Genre)
	}
	return buf.Bytes(), nil
}

// ExportArtistsText converts artists to plain text
func ExportArtistsText(artists []models.Artist) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Artists: %d\n\n", len(artists))
	for i, a := range artists {
		fmt.Fprintf(&buf, "%d. %s - %s\n", i+1, a.Name, a.Genre)
	}
	return buf.Bytes(), nil
}

// WriteExport renders data in format and writes it to path.
func WriteExport(path, format string, data any) error {
	if path == "" {
		return fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}

	out, err := Export(format, data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
