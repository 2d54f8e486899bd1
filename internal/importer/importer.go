package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

type Format string

const (
	FormatDump           Format = "dump"
	FormatMaintenanceCSV Format = "maintenance_csv"
)

var Formats = []Format{FormatDump, FormatMaintenanceCSV}

type DumpParser interface {
	Parse(r io.Reader) (building.Snapshot, error)
}

type CostParser interface {
	Parse(r io.Reader) ([]building.MaintenanceParams, error)
}

// Target receives parsed data; building.Service implements it.
type Target interface {
	Restore(ctx context.Context, snap building.Snapshot) error
	ImportMaintenance(ctx context.Context, rows []building.MaintenanceParams) (int, error)
}

// Summary counts what an import changed. Restored collections report their new size.
type Summary struct {
	Units       int `json:"units"`
	Tenants     int `json:"tenants"`
	Invoices    int `json:"invoices"`
	Maintenance int `json:"maintenance"`
}
