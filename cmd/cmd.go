// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles session and account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and persist the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Account username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "full-name",
						Usage: "Display name",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Invalidate the session and erase the persisted token",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current session",
				Action: r.AuthWhoami,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the current token for a fresh one",
				Action: r.AuthRefresh,
			},
			{
				Name:  "reset-password",
				Usage: "Request a password-reset email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Required: true,
					},
				},
				Action: r.AuthResetPassword,
			},
			{
				Name:  "change-password",
				Usage: "Change the current account's password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "old",
						Usage:    "Current password",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "new",
						Usage:    "New password",
						Required: true,
					},
				},
				Action: r.AuthChangePassword,
			},
		},
	}
}

// itineraryCommand handles generation, inspection, and export of itineraries
func itineraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "itinerary",
		Aliases: []string{"it"},
		Usage:   "Generate and manage itineraries",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Request a new itinerary and optionally track it to completion",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "destination",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.IntFlag{
						Name:     "days",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "Travel style (relaxed, packed, family, ...)",
					},
					&cli.FloatFlag{
						Name:  "budget-min",
						Usage: "Minimum budget",
					},
					&cli.FloatFlag{
						Name:  "budget-max",
						Usage: "Maximum budget",
					},
					&cli.IntFlag{
						Name:  "group-size",
						Value: 1,
					},
					&cli.StringFlag{
						Name:  "start-date",
						Usage: "Trip start date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "AI provider to generate with",
					},
					&cli.StringFlag{
						Name:  "requirements",
						Usage: "Special requirements passed to the generator",
					},
					&cli.BoolFlag{
						Name:  "wait",
						Usage: "Poll progress until the itinerary is done",
						Value: true,
					},
				},
				Action: r.ItineraryGenerate,
			},
			{
				Name:  "list",
				Usage: "List itineraries",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (pending, generating, completed, failed)",
					},
					&cli.StringFlag{
						Name:  "destination",
						Usage: "Filter by destination",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItineraryList,
			},
			{
				Name:      "show",
				Usage:     "Show an itinerary with its daily records",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItineraryShow,
			},
			{
				Name:      "progress",
				Usage:     "Show generation progress for an itinerary",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItineraryProgress,
			},
			{
				Name:      "delete",
				Usage:     "Delete an itinerary",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.ItineraryDelete,
			},
			{
				Name:      "export",
				Usage:     "Export one or all itineraries to disk",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (markdown, html, pdf, json)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every completed itinerary",
					},
				},
				Action: r.ItineraryExport,
			},
			{
				Name:      "validate",
				Usage:     "Check whether a destination can be resolved",
				Arguments: []cli.Argument{&cli.StringArg{Name: "destination"}},
				Action:    r.ItineraryValidate,
			},
			{
				Name:  "templates",
				Usage: "List generation templates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Template type (overview or daily)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItineraryTemplates,
			},
			{
				Name:  "examples",
				Usage: "List example generation requests",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ItineraryExamples,
			},
		},
	}
}

// userCommand handles profile operations
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Profile and account data",
		Commands: []*cli.Command{
			{
				Name:  "profile",
				Usage: "Show the current user's profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UserProfile,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "full-name",
						Usage: "Display name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Contact email",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Default AI provider",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Preferred language",
					},
					&cli.StringFlag{
						Name:  "timezone",
						Usage: "Preferred timezone",
					},
				},
				Action: r.UserUpdate,
			},
			{
				Name:      "avatar",
				Usage:     "Upload a new avatar image",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Action:    r.UserAvatar,
			},
			{
				Name:   "stats",
				Usage:  "Show the current user's generation statistics",
				Action: r.UserStats,
			},
		},
	}
}

// aiCommand handles provider discovery and direct generation
func aiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "ai",
		Usage: "AI provider operations",
		Commands: []*cli.Command{
			{
				Name:  "providers",
				Usage: "List configured AI providers",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AIProviders,
			},
			{
				Name:      "test",
				Usage:     "Test connectivity to a provider",
				Arguments: []cli.Argument{&cli.StringArg{Name: "provider"}},
				Action:    r.AITest,
			},
			{
				Name:  "generate",
				Usage: "Run a raw prompt through a provider",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "prompt",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Provider name (server default when omitted)",
					},
					&cli.FloatFlag{
						Name:  "temperature",
						Value: 0.7,
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Value: 1024,
					},
				},
				Action: r.AIGenerate,
			},
		},
	}
}

// mapsCommand handles the geographic surface
func mapsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "maps",
		Usage: "Geocoding, places, routing, and weather",
		Commands: []*cli.Command{
			{
				Name:      "geocode",
				Usage:     "Resolve an address to coordinates",
				Arguments: []cli.Argument{&cli.StringArg{Name: "address"}},
				Action:    r.MapsGeocode,
			},
			{
				Name:  "reverse",
				Usage: "Resolve coordinates to an address",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:     "lat",
						Required: true,
					},
					&cli.FloatFlag{
						Name:     "lng",
						Required: true,
					},
				},
				Action: r.MapsReverse,
			},
			{
				Name:      "places",
				Usage:     "Search for places",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "region",
						Usage: "Region to search within",
					},
					&cli.IntFlag{
						Name:  "page-size",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MapsPlaces,
			},
			{
				Name:  "directions",
				Usage: "Plan a route between two points",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "origin",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "destination",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Travel mode (driving, riding, walking, transit)",
						Value: "driving",
					},
				},
				Action: r.MapsDirections,
			},
			{
				Name:      "weather",
				Usage:     "Show weather for a location",
				Arguments: []cli.Argument{&cli.StringArg{Name: "location"}},
				Action:    r.MapsWeather,
			},
			{
				Name:   "ip",
				Usage:  "Locate the caller from its IP",
				Action: r.MapsIP,
			},
		},
	}
}

// statusCommand reports backend health and aggregate statistics in one shot
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show backend health, providers, and aggregate statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Status,
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local cache database and run migrations",
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

// cacheCommand handles the local itinerary cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and sync the local itinerary cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List locally cached itineraries",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:      "show",
				Usage:     "Show a locally cached itinerary",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheShow,
			},
			{
				Name:  "sync",
				Usage: "Fetch itineraries from the backend into the local cache",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "How many itineraries to pull",
						Value: 50,
					},
				},
				Action: r.CacheSync,
			},
			{
				Name:      "delete",
				Usage:     "Remove an itinerary from the local cache",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.CacheDelete,
			},
		},
	}
}

// watchCommand returns the top-level TUI command for interactive tracking.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"tui", "interactive"},
		Usage:   "Launch interactive TUI for browsing and tracking itineraries",
		Action:  r.Watch,
	}
}
