// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the local account and session",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Register the local account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Full name (at least 2 characters)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password (at least 8 characters)",
						Required: true,
					},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "login",
				Usage: "Log in with the registered credentials",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the current session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the current session state",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// browseCommand handles catalog operations
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "dashboard",
				Usage: "Fetch every category row and the featured title",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.BrowseDashboard,
			},
			{
				Name:  "search",
				Usage: "Search the catalog by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.BrowseSearch,
			},
			{
				Name:  "detail",
				Usage: "Show the full record for one title",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "IMDb ID (e.g. tt0372784)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "export",
						Usage: "Write a markdown bundle to this directory (defaults to the IMDb ID)",
					},
				},
				Action: r.BrowseDetail,
			},
			{
				Name:  "play",
				Usage: "Open the trailer search stream for a title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "title",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-open",
						Usage: "Print the URL instead of opening the browser",
					},
				},
				Action: r.BrowsePlay,
			},
			{
				Name:  "export",
				Usage: "Export every category row to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Catalog requests per second",
						Value: 2.0,
					},
				},
				Action: r.BrowseExport,
			},
		},
	}
}

// listCommand handles watchlist operations
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"watchlist"},
		Usage:   "Manage the local watchlist",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a title to the watchlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "IMDb ID to add",
						Required: true,
					},
				},
				Action: r.ListAdd,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Remove a title from the watchlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "IMDb ID to remove",
						Required: true,
					},
				},
				Action: r.ListRemove,
			},
			{
				Name:  "show",
				Usage: "Show the watchlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Filter by media type (movie, series, episode)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ListShow,
			},
		},
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// serveCommand runs the local JSON facade.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the catalog and session over localhost HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing the catalog",
		Action:  r.TUI,
	}
}
