package cli

import (
	flag "github.com/spf13/pflag"
)

func (a *app) printConfigCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Print the effective configuration and its sources",
		Exec: func(o *IO, args []string) error {
			o.Println("units_dir:   ", a.cfg.UnitsDir)
			o.Println("resolved:    ", a.unitsDir())

			if a.cfg.ActionsFile != "" {
				o.Println("actions_file:", a.cfg.ActionsFile)
			} else {
				o.Println("actions_file: (builtin vocabulary)")
			}

			if a.cfg.Editor != "" {
				o.Println("editor:      ", a.cfg.Editor)
			}

			o.Println()

			if a.sources.Global != "" {
				o.Println("global config: ", a.sources.Global)
			}

			if a.sources.Project != "" {
				o.Println("project config:", a.sources.Project)
			}

			if a.sources.Global == "" && a.sources.Project == "" {
				o.Println("no config files loaded (defaults)")
			}

			return nil
		},
	}
}
