package ingest

import (
	"strings"
	"time"

	"github.com/alexanderramin/drydock/internal/core/normalize"
	"github.com/alexanderramin/drydock/internal/domain"
)

// Job is a fully converted job: everything the pipeline needs, in domain
// types, with the day axis not yet applied (normalize.Normalize does
// that).
type Job struct {
	Epoch           time.Time
	Locations       domain.LocationSet
	Synchrolift     domain.Synchrolift
	Projects        map[string]domain.Project
	RawPeriods      []normalize.RawPeriod
	ConfigOverrides map[string]float64
}

// Convert transforms a validated JobSchema into a Job. Call
// ValidateJobSchema first; Convert assumes the schema is valid.
func Convert(schema *JobSchema) (*Job, error) {
	epoch, err := time.Parse("2006-01-02", schema.QueryInfo.FromDate)
	if err != nil {
		return nil, domain.NewInvalidInputError("query_info.from_date: %v", err)
	}

	locations := convertLocations(schema.AsticanInfo)
	locationSet, err := domain.NewLocationSet(locations)
	if err != nil {
		return nil, err
	}

	toOptimize := make(map[string]bool, len(schema.ProjectsToOptimize))
	for _, id := range schema.ProjectsToOptimize {
		toOptimize[id] = true
	}

	projects := make(map[string]domain.Project)
	var rawPeriods []normalize.RawPeriod

	for id, info := range schema.ProjectsInfo {
		hasConcreteArea := false
		for _, p := range info.Periodos {
			if p.NombreArea != nil && *p.NombreArea != "" {
				hasConcreteArea = true
				break
			}
		}
		if !toOptimize[id] && !hasConcreteArea {
			continue // non-optimizable projects need at least one concrete area
		}

		project := domain.Project{
			ID:         id,
			Eslora:     info.Info.Eslora,
			Manga:      info.Info.Manga,
			Billing:    info.Info.Facturacion,
			ToOptimize: toOptimize[id],
		}
		if err := project.Validate(); err != nil {
			return nil, err
		}
		projects[id] = project

		for _, p := range info.Periodos {
			periodType := domain.Afloat
			if p.TipoDesc == "VARADA" {
				periodType = domain.Ashore
			}
			first, err := time.Parse("2006-01-02", p.FechaInicio)
			if err != nil {
				return nil, domain.NewInvalidInputError("project %q period fecha_inicio: %v", id, err)
			}
			last, err := time.Parse("2006-01-02", p.FechaFin)
			if err != nil {
				return nil, domain.NewInvalidInputError("project %q period fecha_fin: %v", id, err)
			}
			area := domain.UnassignedArea()
			if p.NombreArea != nil && *p.NombreArea != "" {
				area = domain.ConcreteArea(*p.NombreArea)
			}
			rawPeriods = append(rawPeriods, normalize.RawPeriod{
				ProjectID:    id,
				Type:         periodType,
				FirstDate:    first,
				LastDate:     last,
				DeclaredArea: area,
			})
		}
	}

	return &Job{
		Epoch:           epoch,
		Locations:       locationSet,
		Synchrolift:     domain.Synchrolift{MaxLength: schema.AsticanInfo.Syncrolift.Longitud, MaxWidth: schema.AsticanInfo.Syncrolift.Ancho},
		Projects:        projects,
		RawPeriods:      rawPeriods,
		ConfigOverrides: schema.Config,
	}, nil
}

func convertLocations(info AsticanInfoImport) []domain.Location {
	locations := make([]domain.Location, 0, len(info.Calles)+len(info.Muelles))
	for _, m := range info.Muelles {
		if strings.HasPrefix(m.Nombre, "MANIOBRA") {
			continue
		}
		locations = append(locations, domain.Location{Name: m.Nombre, Kind: domain.Quay, Length: m.Longitud})
	}
	for _, c := range info.Calles {
		locations = append(locations, domain.Location{Name: c.Nombre, Kind: domain.Street, Length: c.Longitud, Width: c.Ancho})
	}
	return locations
}

// KnownLocationNames returns a set of every location name in locations,
// for normalize.Normalize's unknown-area check.
func KnownLocationNames(locations domain.LocationSet) map[string]bool {
	out := make(map[string]bool)
	for _, l := range locations.Quays() {
		out[l.Name] = true
	}
	for _, l := range locations.Streets() {
		out[l.Name] = true
	}
	return out
}

// ToOptimizeSet returns a set of every optimizable project id, for
// normalize.Normalize.
func ToOptimizeSet(projects map[string]domain.Project) map[string]bool {
	out := make(map[string]bool, len(projects))
	for id, p := range projects {
		if p.ToOptimize {
			out[id] = true
		}
	}
	return out
}
