package export

import (
	"fmt"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

// InvoiceDocument is an invoice with its references resolved. Unit and
// Tenant are nil when the referenced entity no longer exists.
type InvoiceDocument struct {
	Invoice building.Invoice
	Unit    *building.Unit
	Tenant  *building.Tenant
}

// Number is the short invoice number shown to payers.
func (d InvoiceDocument) Number() string {
	id := []rune(d.Invoice.ID)
	if len(id) > 6 {
		return string(id[len(id)-6:])
	}

	return string(id)
}

// Period is the year-month part of the issue date, counted in characters.
func (d InvoiceDocument) Period() string {
	date := []rune(d.Invoice.Date)
	if len(date) > 7 {
		return string(date[:7])
	}

	return string(date)
}

func Document(snap building.Snapshot, invoiceID string) (InvoiceDocument, error) {
	inv, ok := building.FindInvoice(snap.Invoices, invoiceID)
	if !ok {
		return InvoiceDocument{}, fmt.Errorf("invoice %s: %w", invoiceID, building.ErrNotFound)
	}

	doc := InvoiceDocument{Invoice: inv}

	if u, ok := building.FindUnit(snap.Units, inv.UnitID); ok {
		doc.Unit = &u
	}

	if t, ok := building.FindTenant(snap.Tenants, inv.TenantID); ok {
		doc.Tenant = &t
	}

	return doc, nil
}
