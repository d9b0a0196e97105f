package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/adaptgrid/internal/domain"
)

// Plan prints the enumerated grid without evaluating anything. Each row
// shows the validity tag, the training descriptor and the parameters a
// valid pair would be evaluated with.
func (a *App) Plan(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMODEL\tDOMAIN\tVALIDITY\tTRAINED ON\tPARAMETERS")

	for i, pair := range a.pairs {
		descriptor, ok := a.training.ResolveTrainingDescriptor(pair.Model.Path())
		if !ok {
			descriptor = "-"
		}
		args := "-"
		if pair.Validity == domain.Valid {
			if p, err := a.builder.Build(pair); err == nil {
				args = strings.Join(p, " ")
			} else {
				args = "unrunnable: unknown provenance"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i, pair.Model, pair.Domain.Name, pair.Validity, descriptor, args)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}
