// Package report writes a consolidated schedule to a writer as an aligned
// console table — the "pretty-printing" external collaborator, kept
// outside the optimization core.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexanderramin/drydock/internal/app"
)

var columns = []string{"PROYECTO_ID", "PERIODO_ID", "ID_PROYECTO_REPARACION", "UBICACION", "FECHA_INICIO", "FECHA_FIN", "ID_RESULTADO"}

// WriteSchedule renders the consolidated schedule as a tab-aligned table,
// one row per schedule entry, in the order given.
func WriteSchedule(w io.Writer, rows []app.ScheduleRow) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)

	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprint(tw, "\n")

	for _, r := range rows {
		idResultado := r.ProjectID + "_" + r.StartDate + "_" + r.EndDate + "_" + r.Location
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ProjectID, r.PeriodSeq, r.PeriodID, r.Location, r.StartDate, r.EndDate, idResultado)
	}

	return tw.Flush()
}

// WriteSummary writes one line summarizing the solved objective.
func WriteSummary(w io.Writer, resp *app.OptimizeResponse) error {
	_, err := fmt.Fprintf(w, "\nobjective=%.2f projects=%d moved=%d rows=%d\n",
		resp.ObjectiveValue, resp.ProjectCount, resp.MovedCount, len(resp.Schedule))
	return err
}
