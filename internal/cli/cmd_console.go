package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"rework/internal/action"
	"rework/internal/store"
)

func (a *app) consoleCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("console", flag.ContinueOnError),
		Usage: "console",
		Short: "Interactive shell with completion over actions and units",
		Exec: func(o *IO, args []string) error {
			return a.runConsole(o)
		},
	}
}

// historyFile returns the path to the console history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".rework_history")
}

func (a *app) runConsole(o *IO) error {
	table, err := a.table()
	if err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	o.Println("rework console - units in", s.Dir())
	o.Println("Type 'help' for available commands.")
	o.Println()

	// Liner owns the terminal; any other reader gets a plain line loop so
	// scripted input works.
	if a.stdin == os.Stdin && liner.TerminalSupported() {
		return a.consoleInteractive(o, table, s)
	}

	return a.consoleScripted(o, table, s)
}

// consoleInteractive runs the readline loop with completion and history.
func (a *app) consoleInteractive(o *IO, table action.Table, s *store.Store) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(consoleCompleter(table, s))

	if f, histErr := os.Open(historyFile()); histErr == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	for {
		input, promptErr := line.Prompt("rework> ")
		if promptErr != nil {
			if promptErr == liner.ErrPromptAborted || promptErr == io.EOF {
				o.Println()

				break
			}

			return fmt.Errorf("reading input: %w", promptErr)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if a.consoleStep(o, table, s, input) {
			break
		}
	}

	saveHistory(line)

	return nil
}

// consoleScripted reads commands line by line from the configured input.
func (a *app) consoleScripted(o *IO, table action.Table, s *store.Store) error {
	scanner := bufio.NewScanner(a.stdin)

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if a.consoleStep(o, table, s, input) {
			break
		}
	}

	return scanner.Err()
}

// consoleStep runs one console line. Reports whether the loop should end.
func (a *app) consoleStep(o *IO, table action.Table, s *store.Store, input string) bool {
	parts := strings.Fields(input)
	cmd, args := parts[0], parts[1:]

	if cmd == "exit" || cmd == "quit" || cmd == "q" {
		return true
	}

	err := a.consoleDispatch(o, table, s, cmd, args)
	if err != nil {
		o.ErrPrintln("error:", err)
	}

	return false
}

func (a *app) consoleDispatch(o *IO, table action.Table, s *store.Store, cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		o.Println("  ls [pattern]            list units")
		o.Println("  show <id>               print a unit sheet")
		o.Println("  apply <action> <id>     run an action")
		o.Println("  actions                 list the action vocabulary")
		o.Println("  exit                    leave the console")

		return nil

	case "ls", "list":
		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}

		rows, err := listRows(s, pattern, "")
		if err != nil {
			return err
		}

		printRows(o, rows)

		return nil

	case "show":
		if len(args) == 0 {
			return fmt.Errorf("%w: show <id>", errConsoleNeedsArgs)
		}

		text, err := s.Read(args[0])
		if err != nil {
			return err
		}

		o.Print(text)

		return nil

	case "apply":
		if len(args) < 2 {
			return fmt.Errorf("%w: apply <action> <id>", errConsoleNeedsArgs)
		}

		spec, ok := table.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", action.ErrUnknownAction, args[0])
		}

		err := applySpec(s, args[1], spec)
		if err != nil {
			return err
		}

		o.Println("Applied", args[0], "to", args[1])

		return nil

	case "actions":
		for _, spec := range table.Specs() {
			o.Printf("  %-22s %s\n", spec.Name, spec.Summary)
		}

		return nil

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}
}

// consoleCompleter completes the first word from the console commands, the
// second word of apply from the action vocabulary, and trailing ids from
// the sheet directory.
func consoleCompleter(table action.Table, s *store.Store) liner.Completer {
	commands := []string{"actions", "apply", "exit", "help", "ls", "quit", "show"}

	return func(input string) []string {
		parts := strings.Split(input, " ")

		switch {
		case len(parts) == 1:
			return complete(commands, parts[0], "")
		case parts[0] == "apply" && len(parts) == 2:
			return complete(table.Names(), parts[1], "apply ")
		case parts[0] == "apply" && len(parts) == 3:
			return completeIDs(s, parts[2], "apply "+parts[1]+" ")
		case parts[0] == "show" && len(parts) == 2:
			return completeIDs(s, parts[1], "show ")
		default:
			return nil
		}
	}
}

func complete(candidates []string, prefix, head string) []string {
	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, head+c)
		}
	}

	return out
}

func completeIDs(s *store.Store, prefix, head string) []string {
	ids, err := s.List("")
	if err != nil {
		return nil
	}

	return complete(ids, prefix, head)
}

func saveHistory(line *liner.State) {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = line.WriteHistory(f)
	_ = f.Close()
}
