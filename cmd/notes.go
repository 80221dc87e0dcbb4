package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/soundcheck/internal/models"
	"github.com/urfave/cli/v3"
)

// EventsList prints catalog events with their notes, filtered by --search.
func (r *Runner) EventsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	events := r.engine.Events(cmd.String("search"))
	if cmd.Bool("json") {
		return r.writeJSON(events, cmd.Bool("pretty"))
	}

	if len(events) == 0 {
		return r.writePlain("No events found\n")
	}
	for _, ev := range events {
		r.writePlain("[%s] ", ev.ID)
		r.writeEvent(ev.Event)
		if ev.Note != nil {
			r.writePlain("  📝 %s\n", ev.Note.Content)
		}
	}
	return nil
}

// NotesList prints or exports notes whose event still exists.
func (r *Runner) NotesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	found := r.engine.Notes(cmd.String("search"))
	return r.export(cmd, found, len(found), "notes")
}

// NoteAdd attaches a note to a catalog event.
func (r *Runner) NoteAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	eventID, err := requireArg(cmd, "event-id")
	if err != nil {
		return err
	}
	if _, err := r.engine.Event(eventID); err != nil {
		return err
	}

	note, err := r.notes.Create(eventID, cmd.String("content"))
	if err != nil {
		return err
	}

	r.logger.Debug("note created", "id", note.ID, "event", eventID)
	return r.writePlain("✓ Added note %s\n", note.ID)
}

// NoteEdit replaces the content of an existing note.
func (r *Runner) NoteEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "note-id")
	if err != nil {
		return err
	}

	note, err := r.notes.Update(id, cmd.String("content"))
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated note %s\n", note.ID)
}

// NoteDelete removes a note. Unknown ids are reported but are not an error.
func (r *Runner) NoteDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	id, err := requireArg(cmd, "note-id")
	if err != nil {
		return err
	}

	if r.notes.Get(id) == nil {
		return r.writePlain("No note with id %s\n", id)
	}
	if err := r.notes.Delete(id); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted note %s\n", id)
}

// NoteShow prints an event together with its note.
func (r *Runner) NoteShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}
	eventID, err := requireArg(cmd, "event-id")
	if err != nil {
		return err
	}

	ev, err := r.engine.Event(eventID)
	if err != nil {
		return err
	}

	r.writeEvent(ev.Event)
	if ev.Note == nil {
		return r.writePlainln("No note for this event. Add one with `soundcheck notes add %s --content ...`", ev.ID)
	}
	return r.writeNote(*ev.Note)
}

func (r *Runner) writeNote(n models.Note) error {
	r.writePlainln("%s", n.Content)
	edited := ""
	if n.UpdatedAt.After(n.CreatedAt) {
		edited = fmt.Sprintf(", edited %s", n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return r.writePlain("\n(note %s, created %s%s)\n", n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), edited)
}
