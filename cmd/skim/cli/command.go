// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command represents a CLI command or subcommand.
type Command struct {
	// Name is the command name as typed by the user (e.g., "run").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is a detailed multi-line description shown in the
	// command's own help output.
	Description string

	// Usage is the usage string (e.g., "skim run [flags] <tag> <partition>").
	// If empty, it is synthesized from the command path and subcommands.
	Usage string

	// Examples are shown in the help output after the description.
	Examples []Example

	// Params returns a pointer to the command's parameter struct. Its
	// tagged fields are bound as flags before parsing (see [BindFlags]).
	// If nil, the command accepts no flags.
	Params func() any

	// Subcommands are nested commands dispatched by the first positional arg.
	Subcommands []*Command

	// Run executes the command with the remaining args (after flag
	// parsing). If both Run and Subcommands are set, Run is used when
	// no subcommand matches.
	Run func(ctx context.Context, args []string) error

	// Stdout and Stderr are consulted on the root command only;
	// subcommands inherit them. Nil means the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// parent is set during dispatch to build the full command path for help.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// Execute parses args and dispatches to the appropriate subcommand or
// Run function. Dispatch and flag errors are [CategoryValidation]
// errors so that they exit with the usage status.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.ErrOut())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(ctx, args[1:])
			}
		}

		if c.Run == nil {
			if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
				return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
					name, suggestion, c.FullName())
			}
			return Validation("unknown command %q\n\nRun '%s --help' for usage.", name, c.FullName())
		}
	}

	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(c.ErrOut())
		if len(args) == 0 {
			return Validation("subcommand required")
		}
		return Validation("subcommand required (got flag %q)", args[0])
	}

	if c.Params != nil {
		flagSet := c.flagSet()
		flagSet.SetOutput(io.Discard)

		if err := flagSet.Parse(args); err != nil {
			message := err.Error()
			if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
				if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
					return Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
						message, suggestion, c.FullName())
				}
			}
			return Validation("%s\n\nRun '%s --help' for usage.", message, c.FullName())
		}
		args = flagSet.Args()
	}

	if c.Run != nil {
		return c.Run(ctx, args)
	}

	c.PrintHelp(c.ErrOut())
	return Validation("no action defined for %q", c.FullName())
}

// UsageError prints the command's help to its error stream and returns
// a [CategoryValidation] error. Run functions use it for bad positional
// arguments.
func (c *Command) UsageError(format string, args ...any) error {
	c.PrintHelp(c.ErrOut())
	return Validation(format, args...)
}

// flagSet binds a fresh flag set to the command's parameters. Binding
// resets every field to its default.
func (c *Command) flagSet() *pflag.FlagSet {
	return FlagsFromParams(c.Name, c.Params())
}

// Out returns the stream for command output.
func (c *Command) Out() io.Writer {
	root := c.root()
	if root.Stdout != nil {
		return root.Stdout
	}
	return os.Stdout
}

// ErrOut returns the stream for help and diagnostics.
func (c *Command) ErrOut() io.Writer {
	root := c.root()
	if root.Stderr != nil {
		return root.Stderr
	}
	return os.Stderr
}

func (c *Command) root() *Command {
	for c.parent != nil {
		c = c.parent
	}
	return c
}

// PrintHelp writes structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.FullName()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	} else {
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Params != nil {
		if usage := c.flagSet().FlagUsages(); usage != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usage)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
			if example.Description != "" {
				fmt.Fprintln(w)
			}
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// FullName returns the complete command path (e.g., "skim run").
func (c *Command) FullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.FullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
