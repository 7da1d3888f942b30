package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"

	"rework/internal/document"
	"rework/internal/record"
	"rework/internal/store"
	"rework/internal/unit"
)

func (a *app) lsCommand() *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	status := flags.String("status", "", "only sheets whose unit-status contains this text")

	return &Command{
		Flags: flags,
		Usage: "ls [pattern] [--status <text>]",
		Short: "List unit sheets",
		Long: "List unit sheets with their model, station, status, and location.\n\n" +
			"The optional pattern is a glob over unit ids (** supported).",
		Exec: func(o *IO, args []string) error {
			pattern := ""
			if len(args) > 0 {
				pattern = args[0]
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}

			rows, err := listRows(s, pattern, *status)
			if err != nil {
				return err
			}

			printRows(o, rows)

			return nil
		},
	}
}

// sheetRow is one line of ls output.
type sheetRow struct {
	id, model, station, status, location string
}

// listRows reads every matching sheet and extracts the listing columns with
// the tolerant parser. A sheet that fails to split or parse still gets a
// row; its columns stay blank rather than hiding the unit.
func listRows(s *store.Store, pattern, statusFilter string) ([]sheetRow, error) {
	ids, err := s.List(pattern)
	if err != nil {
		return nil, err
	}

	var rows []sheetRow

	for _, id := range ids {
		row := sheetRow{id: id}

		text, readErr := s.Read(id)
		if readErr == nil {
			if doc, splitErr := document.Split(text); splitErr == nil {
				if rec, parseErr := record.Parse(doc.Region); parseErr == nil {
					row.model = rec.Content(unit.FieldModel)
					row.station = rec.Content(unit.FieldStation)
					row.status = rec.Content(unit.FieldUnitStatus)
					row.location = rec.Content(unit.FieldUnitLocation)
				}
			}
		}

		if statusFilter != "" && !strings.Contains(row.status, statusFilter) {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func printRows(o *IO, rows []sheetRow) {
	if len(rows) == 0 {
		o.Println("no units")

		return
	}

	header := sheetRow{id: "ID", model: "MODEL", station: "STATION", status: "STATUS", location: "LOCATION"}
	all := append([]sheetRow{header}, rows...)

	widths := [4]int{}

	for _, r := range all {
		for i, cell := range []string{r.id, r.model, r.station, r.status} {
			// Status values carry emoji; cell width must be the rendered
			// width, not the byte count.
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for _, r := range all {
		var b strings.Builder

		for i, cell := range []string{r.id, r.model, r.station, r.status} {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+2))
		}

		b.WriteString(r.location)

		o.Println(strings.TrimRight(b.String(), " "))
	}
}
