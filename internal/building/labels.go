package building

// Display labels. Stored values never carry presentation text.
const (
	UnitPlaceholder        = "---"
	DeletedUnitLabel       = "حذف شده"
	UnknownTenantName      = "نامشخص"
	UnknownSupplier        = "نامشخص"
	paidLabel              = "پرداخت شده"
	unpaidLabel            = "پرداخت نشده"
	defaultRentDescription = "اجاره ماهیانه"
)

var unitStatusLabels = map[UnitStatus]string{
	UnitOccupied:    "پر",
	UnitVacant:      "خالی",
	UnitMaintenance: "تعمیرات",
}

var invoiceTypeLabels = map[InvoiceType]string{
	InvoiceRent:   "اجاره",
	InvoiceCharge: "شارژ",
	InvoiceRepair: "تعمیرات",
	InvoiceOther:  "سایر",
}

// line item text used on printed invoices when the description is empty
var invoiceTypeDescriptions = map[InvoiceType]string{
	InvoiceRent:   defaultRentDescription,
	InvoiceCharge: "شارژ ماهیانه ساختمان",
	InvoiceRepair: "هزینه تعمیرات",
	InvoiceOther:  "سایر هزینه‌ها",
}

func (s UnitStatus) Label() string {
	if l, ok := unitStatusLabels[s]; ok {
		return l
	}

	return string(s)
}

func (t InvoiceType) Label() string {
	if l, ok := invoiceTypeLabels[t]; ok {
		return l
	}

	return invoiceTypeLabels[InvoiceOther]
}

// LineItem is the printable description of an invoice.
func (i Invoice) LineItem() string {
	if i.Description != "" {
		return i.Description
	}

	if d, ok := invoiceTypeDescriptions[i.Type]; ok {
		return d
	}

	return defaultRentDescription
}

func PaidLabel(paid bool) string {
	if paid {
		return paidLabel
	}

	return unpaidLabel
}
