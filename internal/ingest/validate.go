package ingest

import (
	"fmt"
	"strings"
	"time"
)

var validTipoDesc = map[string]bool{"FLOTE": true, "VARADA": true}

// ValidateJobSchema checks the job schema for errors before conversion.
// Returns every validation error found, not just the first.
func ValidateJobSchema(schema *JobSchema) []error {
	var errs []error

	if schema.QueryInfo.FromDate == "" {
		errs = append(errs, fmt.Errorf("query_info.from_date is required"))
	} else if _, err := time.Parse("2006-01-02", schema.QueryInfo.FromDate); err != nil {
		errs = append(errs, fmt.Errorf("query_info.from_date: invalid date format %q (expected YYYY-MM-DD)", schema.QueryInfo.FromDate))
	}

	errs = append(errs, validateLocations("astican_info.calles", schema.AsticanInfo.Calles)...)
	errs = append(errs, validateLocations("astican_info.muelles", schema.AsticanInfo.Muelles)...)

	for _, id := range schema.ProjectsToOptimize {
		if _, ok := schema.ProjectsInfo[id]; !ok {
			errs = append(errs, fmt.Errorf("projects_to_optimize: project %q not found in projects_info", id))
		}
	}

	for id, info := range schema.ProjectsInfo {
		errs = append(errs, validateProjectInfo(id, info)...)
	}

	return errs
}

func validateLocations(prefix string, locations []LocationImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, l := range locations {
		if l.Nombre == "" {
			errs = append(errs, fmt.Errorf("%s[%d].nombre is required", prefix, i))
			continue
		}
		if strings.HasPrefix(l.Nombre, "MANIOBRA") {
			continue // excluded from the location inventory
		}
		if seen[l.Nombre] {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate nombre %q", prefix, i, l.Nombre))
		}
		seen[l.Nombre] = true
		if l.Longitud <= 0 {
			errs = append(errs, fmt.Errorf("%s %q: longitud must be positive", prefix, l.Nombre))
		}
	}
	return errs
}

func validateProjectInfo(id string, info ProjectInfoImport) []error {
	var errs []error
	if info.Info.Eslora <= 0 {
		errs = append(errs, fmt.Errorf("projects_info[%s].info.eslora must be positive", id))
	}
	for i, p := range info.Periodos {
		prefix := fmt.Sprintf("projects_info[%s].periodos[%d]", id, i)
		if !validTipoDesc[p.TipoDesc] {
			errs = append(errs, fmt.Errorf("%s.tipo_desc: invalid value %q", prefix, p.TipoDesc))
		}
		start, startErr := time.Parse("2006-01-02", p.FechaInicio)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.fecha_inicio: invalid date format %q", prefix, p.FechaInicio))
		}
		end, endErr := time.Parse("2006-01-02", p.FechaFin)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.fecha_fin: invalid date format %q", prefix, p.FechaFin))
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s: fecha_fin %q is before fecha_inicio %q", prefix, p.FechaFin, p.FechaInicio))
		}
	}
	return errs
}
