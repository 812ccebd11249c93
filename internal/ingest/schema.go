// Package ingest implements the job JSON reader described as an external
// collaborator: it is deliberately outside the optimization core, but it
// is the thing that produces the domain values the core consumes.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// JobSchema is the top-level job JSON structure.
type JobSchema struct {
	AsticanInfo        AsticanInfoImport           `json:"astican_info"`
	QueryInfo          QueryInfoImport             `json:"query_info"`
	Config             map[string]float64          `json:"config"`
	ProjectsToOptimize []string                    `json:"projects_to_optimize"`
	ProjectsInfo       map[string]ProjectInfoImport `json:"projects_info"`
}

// AsticanInfoImport carries the shipyard's physical location inventory.
type AsticanInfoImport struct {
	Calles     []LocationImport    `json:"calles"`
	Muelles    []LocationImport    `json:"muelles"`
	Syncrolift SynchroliftImport   `json:"syncrolift"`
}

// LocationImport is one quay ("muelle") or street ("calle") entry. Ancho
// is absent (zero) for quays.
type LocationImport struct {
	Nombre   string  `json:"nombre"`
	Longitud float64 `json:"longitud"`
	Ancho    float64 `json:"ancho"`
}

// SynchroliftImport carries the synchrolift's dimensional envelope.
type SynchroliftImport struct {
	Longitud float64 `json:"longitud"`
	Ancho    float64 `json:"ancho"`
}

// QueryInfoImport carries the planning epoch.
type QueryInfoImport struct {
	FromDate string `json:"from_date"`
}

// ProjectInfoImport is one entry of projects_info: a project's dimensions,
// billing, and repair periods.
type ProjectInfoImport struct {
	Info     ProjectDimsImport `json:"info"`
	Periodos []PeriodImport    `json:"periodos"`
}

// ProjectDimsImport carries a project's physical dimensions and billing.
// Facturacion is nullable: non-optimizable projects may omit it.
type ProjectDimsImport struct {
	Eslora      float64  `json:"eslora"`
	Manga       float64  `json:"manga"`
	Facturacion *float64 `json:"facturacion"`
}

// PeriodImport is one repair period as read from JSON, before day-axis
// conversion.
type PeriodImport struct {
	TipoDesc    string  `json:"tipo_desc"`
	FechaInicio string  `json:"fecha_inicio"`
	FechaFin    string  `json:"fecha_fin"`
	NombreArea  *string `json:"nombre_area"`
}

// LoadJobSchema reads and parses the job JSON file.
func LoadJobSchema(path string) (*JobSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema JobSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	return &schema, nil
}
