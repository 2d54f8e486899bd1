package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

const (
	invoicesSheet    = "Invoices"
	maintenanceSheet = "Maintenance Costs"
)

var invoiceHeaders = []any{
	"شماره فاکتور", "شماره واحد", "نام مستاجر", "مبلغ (تومان)",
	"تاریخ صدور", "تاریخ سررسید", "نوع", "وضعیت",
}

var maintenanceHeaders = []any{"تاریخ", "شرح هزینه", "مبلغ (تومان)", "تامین کننده / تعمیرکار"}

// InvoicesWorkbook writes one row per invoice. Units that no longer exist
// are shown as deleted.
func (s *Service) InvoicesWorkbook(w io.Writer, invoices []building.Invoice, units []building.Unit) error {
	rows := make([][]any, 0, len(invoices))

	for _, inv := range invoices {
		rows = append(rows, []any{
			inv.ID,
			building.UnitNumber(units, inv.UnitID, building.DeletedUnitLabel),
			inv.TenantName,
			inv.Amount,
			inv.Date,
			inv.DueDate,
			inv.Type.Label(),
			building.PaidLabel(inv.IsPaid),
		})
	}

	return writeSheet(w, invoicesSheet, invoiceHeaders, rows)
}

func (s *Service) MaintenanceWorkbook(w io.Writer, records []building.MaintenanceRecord) error {
	rows := make([][]any, 0, len(records))

	for _, r := range records {
		rows = append(rows, []any{r.Date, r.Description, r.Amount, r.Supplier})
	}

	return writeSheet(w, maintenanceSheet, maintenanceHeaders, rows)
}

func writeSheet(w io.Writer, sheet string, headers []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rtl := true
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("setting sheet view: %w", err)
	}

	for i, row := range append([][]any{headers}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}
