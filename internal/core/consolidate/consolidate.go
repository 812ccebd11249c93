// Package consolidate implements the Result Consolidator: it
// reconstructs one row per (project, period, location) contiguous interval
// from the solved day-level x variables, filling in UNASSIGNED rows for
// unplaced optimizable periods and committed rows for non-optimizable ones.
package consolidate

import (
	"sort"
	"time"

	"github.com/alexanderramin/drydock/internal/core/model"
	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/alexanderramin/drydock/internal/solver"
)

// Row is one consolidated assignment interval, ready for §6's output
// schema (proyecto_id, periodo_id, ubicacion, fecha_inicio, fecha_fin).
type Row struct {
	ProjectID string
	PeriodID  string
	PeriodSeq int
	Location  string
	StartDate time.Time
	EndDate   time.Time
}

// ID builds the output schema's id_resultado column:
// "{proyecto_id}_{fecha_inicio}_{fecha_fin}_{ubicacion}".
func (r Row) ID() string {
	const layout = "2006-01-02"
	return r.ProjectID + "_" + r.StartDate.Format(layout) + "_" + r.EndDate.Format(layout) + "_" + r.Location
}

// Consolidate reads the solved model m and produces one Row per contiguous
// (project, period, location) interval, sorted by (project_id,
// sequence_index).
func Consolidate(m solver.Model, built *model.Built, projects map[string]domain.Project, epoch time.Time) ([]Row, error) {
	type segment struct {
		location string
		startDay int
		endDay   int
	}
	segments := make(map[string][]segment) // period id -> sorted contiguous segments

	for _, p := range built.Periods {
		project, ok := projects[p.Key.ProjectID]
		if !ok || !project.ToOptimize {
			continue
		}
		pid := p.Key.ID()
		for _, d := range p.Days {
			for _, loc := range p.Candidates {
				v, exists := built.X[model.XKey{PeriodID: pid, Day: d, Location: loc}]
				if !exists {
					continue
				}
				val, err := m.ValueOf(v)
				if err != nil {
					return nil, err
				}
				if val != 1 {
					continue
				}
				segs := segments[pid]
				if n := len(segs); n > 0 && segs[n-1].location == loc && segs[n-1].endDay == d-1 {
					segs[n-1].endDay = d
				} else {
					segs = append(segs, segment{location: loc, startDay: d, endDay: d})
				}
				segments[pid] = segs
			}
		}
	}

	var rows []Row
	for _, p := range built.Periods {
		project, ok := projects[p.Key.ProjectID]
		if !ok {
			continue
		}
		pid := p.Key.ID()

		if !project.ToOptimize {
			if p.Declared.IsUnassigned() {
				continue
			}
			if p.LastDay < 0 {
				continue // ends before the horizon starts; nothing to report
			}
			rows = append(rows, Row{
				ProjectID: p.Key.ProjectID,
				PeriodID:  pid,
				PeriodSeq: p.Key.Seq,
				Location:  p.Declared.Name(),
				StartDate: epoch.AddDate(0, 0, p.FirstDay),
				EndDate:   epoch.AddDate(0, 0, p.LastDay),
			})
			continue
		}

		if len(p.Days) == 0 {
			continue // pre-epoch half; nothing to place within the horizon
		}

		segs := segments[pid]
		if len(segs) == 0 {
			rows = append(rows, Row{
				ProjectID: p.Key.ProjectID,
				PeriodID:  pid,
				PeriodSeq: p.Key.Seq,
				Location:  p.Declared.String(), // UNASSIGNED sentinel
				StartDate: epoch.AddDate(0, 0, p.FirstDay),
				EndDate:   epoch.AddDate(0, 0, p.LastDay),
			})
			continue
		}
		for _, seg := range segs {
			rows = append(rows, Row{
				ProjectID: p.Key.ProjectID,
				PeriodID:  pid,
				PeriodSeq: p.Key.Seq,
				Location:  seg.location,
				StartDate: epoch.AddDate(0, 0, seg.startDay),
				EndDate:   epoch.AddDate(0, 0, seg.endDay),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProjectID != rows[j].ProjectID {
			return rows[i].ProjectID < rows[j].ProjectID
		}
		if rows[i].PeriodSeq != rows[j].PeriodSeq {
			return rows[i].PeriodSeq < rows[j].PeriodSeq
		}
		return rows[i].StartDate.Before(rows[j].StartDate)
	})
	return rows, nil
}
