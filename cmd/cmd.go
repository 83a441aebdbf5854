// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/tareas/internal/formatter"
	"github.com/urfave/cli/v3"
)

// App builds the root command. Running it with no subcommand launches the TUI.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:    "tareas",
		Usage:   "Manage a remote task list from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Task endpoint URL (overrides api.base_url)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before:   r.Configure,
		Action:   r.TUI,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, listCommand, addCommand, renameCommand, toggleCommand, removeCommand,
		exportCommand, serveCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func formatFlag(value string) *cli.StringFlag {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: " + strings.Join(names, ", "),
		Value:   value,
	}
}

// tuiCommand returns the interactive task list.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive task list",
		Action:  r.TUI,
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print every task in server order",
		Flags:   []cli.Flag{formatFlag("text")},
		Action:  r.List,
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a task",
		ArgsUsage: "<title>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
		},
		Action: r.Add,
	}
}

func renameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Aliases:   []string{"edit"},
		Usage:     "Change a task's title; prompts when the title is omitted",
		ArgsUsage: "<id> [title]",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
			&cli.StringArg{Name: "title"},
		},
		Action: r.Rename,
	}
}

func toggleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Flip a task between pending and completed",
		ArgsUsage: "<id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Toggle,
	}
}

func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a task",
		ArgsUsage: "<id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Remove,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the task list to a file",
		Flags: []cli.Flag{
			formatFlag("markdown"),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: tareas.<ext>)",
			},
		},
		Action: r.Export,
	}
}

// serveCommand runs the reference backend.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local task endpoint backed by sqlite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from server.host and server.port)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database path (default from database.path)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write the example configuration file",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Database path (default from database.path)",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
