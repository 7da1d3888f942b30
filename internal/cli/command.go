package cli

import (
	"errors"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// usageColumn is where the short description starts in the command listing.
const usageColumn = 28

// Command is one rework subcommand. Its identity is the first word of
// Usage; the FlagSet's own name is never shown.
type Command struct {
	Flags *flag.FlagSet

	// Usage is the invocation line shown after "rework" in help output,
	// command name included: "apply <action> <id>", "ls [pattern]".
	Usage string

	// Short is the one-line description for the command listing.
	Short string

	// Long is the full description for "rework <cmd> --help". Falls back
	// to Short when empty.
	Long string

	// Exec runs the command with the positional arguments left after flag
	// parsing.
	Exec func(o *IO, args []string) error
}

// Name returns the command name.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine renders the command's row of the global listing.
func (c *Command) HelpLine() string {
	pad := usageColumn - len(c.Usage)
	if pad < 1 {
		pad = 1
	}

	return "  " + c.Usage + strings.Repeat(" ", pad) + c.Short
}

// PrintHelp writes the full per-command help.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: rework", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, printing errors itself so
// every command reports failures the same way. Returns the exit code.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if err := c.Exec(o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
