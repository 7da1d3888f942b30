// Package cli implements the rework command line: a thin shell around the
// record engine, the action table, and the sheet store.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"rework/internal/action"
	"rework/internal/store"
	"rework/internal/unit"
)

// app carries resolved configuration into the commands.
type app struct {
	cfg     unit.Config
	sources unit.ConfigSources
	workDir string
	stdin   io.Reader
}

// unitsDir returns the absolute sheet directory.
func (a *app) unitsDir() string {
	dir := a.cfg.UnitsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.workDir, dir)
	}

	return dir
}

// openStore opens the sheet store.
func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.unitsDir())
}

// table returns the action vocabulary: the operator's table file when
// configured, the builtin vocabulary otherwise.
func (a *app) table() (action.Table, error) {
	if a.cfg.ActionsFile == "" {
		return action.Builtin(), nil
	}

	path := a.cfg.ActionsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.workDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return action.Table{}, fmt.Errorf("reading actions file %s: %w", path, err)
	}

	table, err := action.Load(data)
	if err != nil {
		return action.Table{}, fmt.Errorf("actions file %s: %w", path, err)
	}

	return table, nil
}

// Run is the main entry point. Returns the process exit code.
func Run(stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	global := flag.NewFlagSet("rework", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)

	var (
		configPath string
		unitsDir   string
		actionsArg string
		workDirArg string
	)

	global.StringVar(&configPath, "config", "", "explicit config file")
	global.StringVar(&unitsDir, "units-dir", "", "override units_dir")
	global.StringVar(&actionsArg, "actions", "", "override actions_file")
	global.StringVarP(&workDirArg, "chdir", "C", "", "run as if started in this directory")

	err := global.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			printUsage(o)

			return 0
		}

		o.ErrPrintln("error:", err)

		return 1
	}

	workDir := workDirArg
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)

			return 1
		}
	}

	overrides := unit.Config{UnitsDir: unitsDir, ActionsFile: actionsArg}

	cfg, sources, err := unit.LoadConfig(workDir, configPath, overrides, env)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	a := &app{
		cfg:     cfg,
		sources: sources,
		workDir: workDir,
		stdin:   stdin,
	}

	commands := a.commands()

	rest := global.Args()
	if len(rest) == 0 {
		printUsageFor(o, commands)

		return 0
	}

	name := rest[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsageFor(o, commands)

		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(o, rest[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsageFor(o, commands)

	return 1
}

// commands builds the command set in help order.
func (a *app) commands() []*Command {
	return []*Command{
		a.createCommand(),
		a.showCommand(),
		a.lsCommand(),
		a.actionsCommand(),
		a.applyCommand(),
		a.consoleCommand(),
		a.printConfigCommand(),
	}
}

func printUsage(o *IO) {
	printUsageFor(o, (&app{}).commands())
}

func printUsageFor(o *IO, commands []*Command) {
	o.Println("rework - hardware unit test/repair tracking")
	o.Println()
	o.Println("Usage: rework [global flags] <command> [args]")
	o.Println()
	o.Println("Commands:")

	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("Global flags:")
	o.Println("  --config <file>            explicit config file")
	o.Println("  --units-dir <dir>          override units_dir")
	o.Println("  --actions <file>           override actions_file")
	o.Println("  -C, --chdir <dir>          run as if started in this directory")
	o.Println()
	o.Println("Run 'rework <command> --help' for command details.")
}
