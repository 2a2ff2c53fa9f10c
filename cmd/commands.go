// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// Flags and arguments keep parsed state, so every command gets its own instances.
func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body to send"}
}

func args(names ...string) []cli.Argument {
	out := make([]cli.Argument, 0, len(names))
	for _, name := range names {
		out = append(out, &cli.StringArg{Name: name})
	}
	return out
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and initialize the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// dbCommand manages schema migrations. Every other command migrates on open,
// so a rollback only sticks until the next one runs.
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Schema migrations",
		Commands: []*cli.Command{
			{Name: "migrate", Usage: "Apply pending migrations", Action: r.DBMigrate},
			{Name: "rollback", Usage: "Revert the newest migration", Action: r.DBRollback},
			{Name: "status", Usage: "List migrations and when they were applied", Action: r.DBStatus},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.host:server.port)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Expose Prometheus metrics on /metrics",
				Value: true,
			},
		},
		Action: r.Serve,
	}
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "seed",
		Usage:  "Wipe the database and load sample users, venues, foods, parties and tasks",
		Action: r.Seed,
	}
}

func partyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "party",
		Usage: "Party operations",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List parties",
				Flags:  []cli.Flag{&cli.StringFlag{Name: "user", Usage: "Only parties this user belongs to"}, jsonFlag()},
				Action: r.PartyList,
			},
			{
				Name:      "show",
				Usage:     "Show a party with its venue, guests, playlist and tasks",
				Arguments: args("party"),
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.PartyShow,
			},
			{
				Name:  "create",
				Usage: "Create a party",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Party name", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Party date"},
					&cli.StringSliceFlag{Name: "user", Usage: "Member user id (repeatable)"},
					&cli.StringFlag{Name: "location", Usage: "Location id"},
				},
				Action: r.PartyCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a party and its tasks",
				Arguments: args("party"),
				Action:    r.PartyDelete,
			},
			{
				Name:      "locations",
				Usage:     "List venues matching the given bounds",
				Arguments: args("party"),
				Flags: []cli.Flag{
					&cli.FloatFlag{Name: "min-rating", Usage: "Minimum rating"},
					&cli.FloatFlag{Name: "max-cost", Usage: "Maximum rental cost"},
					&cli.IntFlag{Name: "min-capacity", Usage: "Minimum capacity"},
					jsonFlag(),
				},
				Action: r.PartyLocations,
			},
			{
				Name:      "assign",
				Usage:     "Assign a location to a party",
				Arguments: args("party", "location"),
				Action:    r.PartyAssign,
			},
			{
				Name:      "unassign",
				Usage:     "Clear a party's location",
				Arguments: args("party"),
				Action:    r.PartyUnassign,
			},
			{
				Name:      "score",
				Usage:     "Recompute and print a party's points",
				Arguments: args("party"),
				Action:    r.PartyScore,
			},
		},
	}
}

func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Party playlist operations",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List the songs of a party",
				Arguments: args("party"),
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.PlaylistList,
			},
			{
				Name:      "add",
				Usage:     "Add a song, resolving its media link",
				Arguments: args("party"),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Song artist"},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:      "remove",
				Usage:     "Remove a song from a party",
				Arguments: args("party", "song"),
				Action:    r.PlaylistRemove,
			},
			{
				Name:      "resolve",
				Usage:     "Look up links for every song stored without one",
				Arguments: args("party"),
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent lookups (1-10)"},
					&cli.FloatFlag{Name: "rate", Usage: "Lookups per second"},
				},
				Action: r.PlaylistResolve,
			},
		},
	}
}

func taskCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Task operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "party", Usage: "Only tasks of this party"},
					&cli.StringFlag{Name: "user", Usage: "Only tasks assigned to this user"},
					jsonFlag(),
				},
				Action: r.TaskList,
			},
			{
				Name:  "create",
				Usage: "Create a task",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "party", Usage: "Owning party id", Required: true},
					&cli.StringFlag{Name: "name", Usage: "Task name", Required: true},
					&cli.StringFlag{Name: "description", Usage: "Task description"},
					&cli.IntFlag{Name: "points", Usage: "Point value"},
					&cli.StringFlag{Name: "user", Usage: "Assigned user id"},
					&cli.BoolFlag{Name: "completed", Usage: "Create as already completed"},
				},
				Action: r.TaskCreate,
			},
			{
				Name:      "complete",
				Usage:     "Mark a task as completed",
				Arguments: args("task"),
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "undo", Usage: "Mark as not completed instead"}},
				Action:    r.TaskComplete,
			},
			{
				Name:      "delete",
				Usage:     "Delete a task",
				Arguments: args("task"),
				Action:    r.TaskDelete,
			},
		},
	}
}

func mediaCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "media",
		Usage: "Media link lookup",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Resolve a song to a media link",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Song artist"},
					&cli.BoolFlag{Name: "open", Usage: "Open the link in the default browser"},
				},
				Action: r.MediaSearch,
			},
		},
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a party plan to csv, markdown, txt or json",
		Arguments: args("party"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, markdown, txt or json", Value: "markdown"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Base output path (defaults to the party id)"},
		},
		Action: r.Export,
	}
}

// apiCommand makes raw calls against a running server
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to a running partyx server",
		Commands: []*cli.Command{
			{Name: "get", Usage: "GET path, prints the response", Arguments: args("path"), Flags: []cli.Flag{jsonFlag()}, Action: r.APIGet},
			{Name: "post", Usage: "POST path with a JSON body", Arguments: args("path"), Flags: []cli.Flag{dataFlag()}, Action: r.APISend},
			{Name: "put", Usage: "PUT path with a JSON body", Arguments: args("path"), Flags: []cli.Flag{dataFlag()}, Action: r.APISend},
			{Name: "delete", Usage: "DELETE path", Arguments: args("path"), Action: r.APISend},
		},
	}
}
