package cli

import (
	flag "github.com/spf13/pflag"
)

func (a *app) actionsCommand() *Command {
	flags := flag.NewFlagSet("actions", flag.ContinueOnError)
	verbose := flags.BoolP("verbose", "v", false, "show the fields each action sets")

	return &Command{
		Flags: flags,
		Usage: "actions [-v]",
		Short: "List the action vocabulary",
		Exec: func(o *IO, args []string) error {
			table, err := a.table()
			if err != nil {
				return err
			}

			for _, spec := range table.Specs() {
				o.Printf("  %-22s %s\n", spec.Name, spec.Summary)

				if !*verbose {
					continue
				}

				for _, assignment := range spec.Set {
					value := assignment.Value
					if assignment.List {
						value = "[" + value + "]"
					}

					o.Printf("      %s = %s\n", assignment.Field, value)
				}
			}

			return nil
		},
	}
}
