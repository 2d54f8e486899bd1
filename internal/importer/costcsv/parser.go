package costcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/homa/internal/building"
	enc "github.com/MrJamesThe3rd/homa/internal/encoding"
)

var ErrNoProfile = errors.New("no matching maintenance layout found")

// Parser reads maintenance cost CSV files, separated by ';' or ','. It
// detects the layout by matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]building.MaintenanceParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(bufio.NewReader(utf8r))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, sep := range []rune{';', ','} {
		reader := csv.NewReader(strings.NewReader(string(data)))
		reader.Comma = sep
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, colMap, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, colMap, rows[headerIdx+1:]), nil
	}

	return nil, ErrNoProfile
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(strings.TrimPrefix(cell, "\uFEFF"))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a description or a readable amount,
// such as totals and footers.
func parseRows(p *Profile, cols colIndex, rows [][]string) []building.MaintenanceParams {
	descIdx := cols[p.DescCol]
	amountIdx := cols[p.AmountCol]

	out := []building.MaintenanceParams{}

	for _, row := range rows {
		desc := cellValue(row, descIdx)
		if desc == "" {
			continue
		}

		amount, err := parseTomanAmount(cellValue(row, amountIdx))
		if err != nil || amount == 0 {
			continue
		}

		rec := building.MaintenanceParams{
			Description: desc,
			Amount:      amount,
		}

		if idx, ok := cols[p.DateCol]; ok {
			rec.Date = latinDigits(cellValue(row, idx))
		}

		if idx, ok := cols[p.SupplierCol]; ok && p.SupplierCol != "" {
			rec.Supplier = cellValue(row, idx)
		}

		out = append(out, rec)
	}

	return out
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
