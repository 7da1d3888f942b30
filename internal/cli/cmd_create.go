package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"rework/internal/store"
	"rework/internal/unit"
)

// maxSuffixLength caps the id collision retry loop.
const maxSuffixLength = 4

func (a *app) createCommand() *Command {
	flags := flag.NewFlagSet("create", flag.ContinueOnError)
	model := flags.String("model", "", "unit model (required)")
	id := flags.String("id", "", "unit id (generated when empty)")
	symptom := flags.String("symptom", "", "reported failure symptom")

	return &Command{
		Flags: flags,
		Usage: "create --model <m> [flags]",
		Short: "Create a new unit sheet",
		Exec: func(o *IO, args []string) error {
			if *model == "" {
				return errModelRequired
			}

			// Both land in the metadata region, which is line-based.
			for _, v := range []string{*model, *symptom} {
				if strings.ContainsAny(v, "\n\r") {
					return fmt.Errorf("%w: %q", errFlagMultiline, v)
				}
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			unitID := *id
			if unitID == "" {
				unitID, err = uniqueID(s)
				if err != nil {
					return err
				}
			} else if s.Exists(unitID) {
				return fmt.Errorf("%w: %s", errSheetExists, unitID)
			}

			text := unit.NewSheetText(unit.SheetOptions{
				ID:      unitID,
				Model:   *model,
				Symptom: *symptom,
			})

			err = s.Write(unitID, text)
			if err != nil {
				return err
			}

			o.Println("Created", unitID)

			return nil
		},
	}
}

// uniqueID generates an id no existing sheet uses. On collision, appends
// letter suffixes (a, b, ..., z, za, zb, ...).
func uniqueID(s *store.Store) (string, error) {
	base := unit.GenerateID()
	if !s.Exists(base) {
		return base, nil
	}

	suffix := ""

	for {
		suffix = unit.NextSuffix(suffix)
		if len(suffix) > maxSuffixLength {
			return "", errIDGeneration
		}

		candidate := base + suffix
		if !s.Exists(candidate) {
			return candidate, nil
		}
	}
}
