package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/homa/internal/importer/costcsv"
	"github.com/MrJamesThe3rd/homa/internal/importer/dump"
)

type Service struct {
	target     Target
	dumpParser DumpParser
	costParser CostParser
}

func NewService(target Target) *Service {
	return &Service{
		target:     target,
		dumpParser: dump.NewParser(),
		costParser: costcsv.NewParser(),
	}
}

func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (Summary, error) {
	switch format {
	case FormatDump:
		return s.importDump(ctx, r)
	case FormatMaintenanceCSV:
		return s.importCosts(ctx, r)
	default:
		return Summary{}, fmt.Errorf("unknown format: %s", format)
	}
}

func (s *Service) importDump(ctx context.Context, r io.Reader) (Summary, error) {
	snap, err := s.dumpParser.Parse(r)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing dump: %w", err)
	}

	if err := s.target.Restore(ctx, snap); err != nil {
		return Summary{}, fmt.Errorf("restoring collections: %w", err)
	}

	return Summary{
		Units:       len(snap.Units),
		Tenants:     len(snap.Tenants),
		Invoices:    len(snap.Invoices),
		Maintenance: len(snap.Maintenance),
	}, nil
}

func (s *Service) importCosts(ctx context.Context, r io.Reader) (Summary, error) {
	rows, err := s.costParser.Parse(r)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing maintenance csv: %w", err)
	}

	n, err := s.target.ImportMaintenance(ctx, rows)
	if err != nil {
		return Summary{}, fmt.Errorf("importing maintenance: %w", err)
	}

	return Summary{Maintenance: n}, nil
}
