package cli

import (
	flag "github.com/spf13/pflag"

	"rework/internal/document"
)

func (a *app) showCommand() *Command {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	meta := flags.Bool("meta", false, "print only the metadata region")

	return &Command{
		Flags: flags,
		Usage: "show <id> [--meta]",
		Short: "Print a unit sheet",
		Exec: func(o *IO, args []string) error {
			if len(args) == 0 {
				return errIDRequired
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			text, err := s.Read(args[0])
			if err != nil {
				return err
			}

			if *meta {
				doc, err := document.Split(text)
				if err != nil {
					return err
				}

				o.Print(doc.Region)

				return nil
			}

			o.Print(text)

			return nil
		},
	}
}
