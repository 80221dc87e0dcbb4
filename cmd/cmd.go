// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/soundcheck/internal/formatter"
	"github.com/urfave/cli/v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Path to a dotenv file with provider credentials",
			Value: ".env",
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "Keep likes and notes in memory for this run only",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error)",
			Value: "info",
		},
	}
}

func idArg(name string) []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: name}}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (json, csv, markdown, txt)",
			Value:   formatter.FormatText,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write to a file instead of stdout",
		},
	}
}

func contentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "content",
		Aliases:  []string{"m"},
		Usage:    "Note text",
		Required: true,
	}
}

func prettyFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "pretty",
		Usage: "Pretty-print JSON output",
		Value: true,
	}
}

func mbidFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "mbid",
		Usage: "MusicBrainz id, used instead of the name when set",
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local storage",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied migrations",
				Action: r.SetupStatus,
			},
			{
				Name:  "rollback",
				Usage: "Revert the most recent migration",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm dropping stored preferences"},
				},
				Action: r.SetupRollback,
			},
		},
	}
}

// artistsCommand handles the catalog artists and likes
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "artists",
		Usage:  "Browse catalog artists and manage likes",
		Before: r.Open,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog artists",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter by name or genre",
					},
					&cli.BoolFlag{
						Name:  "images",
						Usage: "Resolve artist images from Bandsintown",
					},
				),
				Action: r.ArtistsList,
			},
			{
				Name:      "show",
				Usage:     "Show an artist with biography and discography",
				Arguments: idArg("id"),
				Flags:     jsonFlags(),
				Action:    r.ArtistShow,
			},
			{
				Name:      "like",
				Usage:     "Like an artist",
				Arguments: idArg("id"),
				Action:    r.ArtistLike,
			},
			{
				Name:      "unlike",
				Usage:     "Remove an artist from your likes",
				Arguments: idArg("id"),
				Action:    r.ArtistUnlike,
			},
			{
				Name:      "toggle",
				Usage:     "Toggle the like on an artist",
				Arguments: idArg("id"),
				Action:    r.ArtistToggle,
			},
			{
				Name:   "liked",
				Usage:  "List or export liked artists",
				Flags:  exportFlags(),
				Action: r.ArtistsLiked,
			},
			{
				Name:      "events",
				Usage:     "Show upcoming events for an artist from Bandsintown",
				Arguments: idArg("id"),
				Flags:     jsonFlags(),
				Action:    r.ArtistEvents,
			},
			{
				Name:      "open",
				Usage:     "Open the artist's Last.fm page in a browser",
				Arguments: idArg("id"),
				Action:    r.ArtistOpen,
			},
		},
	}
}

func eventsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "events",
		Usage:  "Browse catalog events",
		Before: r.Open,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List events with their notes",
				Flags: append(jsonFlags(),
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter by title, artist or city",
					},
				),
				Action: r.EventsList,
			},
		},
	}
}

// notesCommand handles event notes
func notesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "notes",
		Usage:  "Manage notes attached to events",
		Before: r.Open,
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List or export notes",
				Flags: append(exportFlags(),
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Filter by content, event title or artist",
					},
				),
				Action: r.NotesList,
			},
			{
				Name:      "add",
				Usage:     "Attach a note to an event",
				Arguments: idArg("event-id"),
				Flags:     []cli.Flag{contentFlag()},
				Action:    r.NoteAdd,
			},
			{
				Name:      "edit",
				Usage:     "Replace the content of a note",
				Arguments: idArg("note-id"),
				Flags:     []cli.Flag{contentFlag()},
				Action:    r.NoteEdit,
			},
			{
				Name:      "delete",
				Usage:     "Delete a note",
				Arguments: idArg("note-id"),
				Action:    r.NoteDelete,
			},
			{
				Name:      "show",
				Usage:     "Show an event with its note",
				Arguments: idArg("event-id"),
				Action:    r.NoteShow,
			},
		},
	}
}

// lookupCommand exposes the external data gateway directly
func lookupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lookup",
		Usage: "Query Last.fm, Bandsintown and TheAudioDB, printing JSON",
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search Last.fm artists",
				Arguments: idArg("query"),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.LookupSearch,
			},
			{
				Name:      "info",
				Usage:     "Last.fm artist info",
				Arguments: idArg("name"),
				Flags: []cli.Flag{
					prettyFlag(),
					&cli.StringSliceFlag{
						Name:  "also",
						Usage: "Additional artist names looked up concurrently",
					},
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Print the Last.fm response exactly as received",
					},
				},
				Action: r.LookupInfo,
			},
			{
				Name:      "image",
				Usage:     "Bandsintown artist image",
				Arguments: idArg("name"),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.LookupImage,
			},
			{
				Name:      "top-albums",
				Usage:     "Last.fm top albums",
				Arguments: idArg("name"),
				Flags:     []cli.Flag{prettyFlag(), mbidFlag()},
				Action:    r.LookupTopAlbums,
			},
			{
				Name:      "top-tracks",
				Usage:     "Last.fm top tracks",
				Arguments: idArg("name"),
				Flags:     []cli.Flag{prettyFlag(), mbidFlag()},
				Action:    r.LookupTopTracks,
			},
			{
				Name:      "discography",
				Usage:     "TheAudioDB discography",
				Arguments: idArg("name"),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.LookupDiscography,
			},
			{
				Name:  "album",
				Usage: "TheAudioDB album detail",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "artist"},
					&cli.StringArg{Name: "album"},
				},
				Flags:  []cli.Flag{prettyFlag()},
				Action: r.LookupAlbum,
			},
			{
				Name:      "events",
				Usage:     "Bandsintown upcoming events",
				Arguments: idArg("name"),
				Flags:     []cli.Flag{prettyFlag()},
				Action:    r.LookupEvents,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the artist lookup HTTP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (defaults to the config value)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (defaults to the config value)",
			},
		},
		Action: r.Serve,
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File receiving logs while the UI owns the terminal",
				Value: "./tmp/soundcheck-tui.log",
			},
		},
		Before: r.PrepareTUI,
		Action: r.TUI,
	}
}
