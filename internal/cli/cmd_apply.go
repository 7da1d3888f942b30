package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"rework/internal/action"
	"rework/internal/document"
	"rework/internal/store"
)

func (a *app) applyCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("apply", flag.ContinueOnError),
		Usage: "apply <action> <id>",
		Short: "Run a named action against a unit sheet",
		Long: "Run a named action against a unit sheet.\n\n" +
			"The action rewrites only the metadata fields it names; every other\n" +
			"field and the whole sheet body stay byte-for-byte identical. The\n" +
			"read-patch-write runs under an exclusive per-sheet lock.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 2 {
				return errActionAndID
			}

			name, id := args[0], args[1]

			table, err := a.table()
			if err != nil {
				return err
			}

			spec, ok := table.Lookup(name)
			if !ok {
				return fmt.Errorf("%w: %s", action.ErrUnknownAction, name)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			err = applySpec(s, id, spec)
			if err != nil {
				return err
			}

			o.Println("Applied", name, "to", id)

			return nil
		},
	}
}

// applySpec runs one action invocation through the store critical section.
func applySpec(s *store.Store, id string, spec action.Spec) error {
	if !s.Exists(id) {
		return fmt.Errorf("%w: %s", store.ErrSheetNotFound, id)
	}

	return s.Update(id, func(text string) (string, error) {
		doc, err := document.Split(text)
		if err != nil {
			return "", err
		}

		patched, err := action.Apply(doc, spec)
		if err != nil {
			return "", err
		}

		return patched.Join(), nil
	})
}
