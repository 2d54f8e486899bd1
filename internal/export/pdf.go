package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

const pdfFontFamily = "invoice"

type pdfLabels struct {
	title, number, issued, due     string
	payer, phone, nationalID       string
	unit, floor, noDetails         string
	row, description, kind, amount string
	total, tax, payable, currency  string
	paymentNote, paymentText       string
	signature, board, paid, footer string
	period                         string
	lineItems                      map[building.InvoiceType]string
	kinds                          map[building.InvoiceType]string
}

var persianLabels = pdfLabels{
	title:       "صورتحساب",
	number:      "شماره فاکتور:",
	issued:      "تاریخ صدور:",
	due:         "تاریخ سررسید:",
	payer:       "مشخصات پرداخت کننده",
	phone:       "شماره تماس:",
	nationalID:  "کد ملی:",
	unit:        "واحد",
	floor:       "طبقه",
	noDetails:   "اطلاعات تکمیلی ثبت نشده است",
	row:         "ردیف",
	description: "شرح کالا / خدمات",
	kind:        "نوع",
	amount:      "مبلغ (تومان)",
	total:       "جمع کل",
	tax:         "مالیات و عوارض",
	payable:     "مبلغ قابل پرداخت",
	currency:    "تومان",
	paymentNote: "توضیحات پرداخت:",
	paymentText: "لطفا مبلغ فاکتور را تا تاریخ سررسید به شماره حساب اعلام شده واریز نمایید. این فاکتور بدون مهر و امضای مدیریت فاقد اعتبار است.",
	signature:   "مهر و امضاء مدیر ساختمان",
	board:       "هیئت مدیره ساختمان هما",
	paid:        "پرداخت شد",
	footer:      "این فاکتور به صورت سیستمی توسط نرم‌افزار مدیریت ساختمان هما صادر شده است.",
	period:      "مربوط به دوره %s برای واحد %s",
}

var englishLabels = pdfLabels{
	title:       "INVOICE",
	number:      "Invoice no:",
	issued:      "Issued:",
	due:         "Due:",
	payer:       "Bill to",
	phone:       "Phone:",
	nationalID:  "National ID:",
	unit:        "Unit",
	floor:       "floor",
	noDetails:   "No further details on file",
	row:         "#",
	description: "Description",
	kind:        "Type",
	amount:      "Amount (Toman)",
	total:       "Subtotal",
	tax:         "Tax",
	payable:     "Amount due",
	currency:    "Toman",
	paymentNote: "Payment:",
	paymentText: "Please pay the invoice amount to the announced account by the due date. This invoice is not valid without the management stamp and signature.",
	signature:   "Building manager stamp and signature",
	board:       "Homa building board",
	paid:        "PAID",
	footer:      "This invoice was issued by the Homa building management system.",
	period:      "Period %s for unit %s",
	lineItems: map[building.InvoiceType]string{
		building.InvoiceRent:   "Monthly rent",
		building.InvoiceCharge: "Monthly building charge",
		building.InvoiceRepair: "Repair costs",
		building.InvoiceOther:  "Other costs",
	},
	kinds: map[building.InvoiceType]string{
		building.InvoiceRent:   "Rent",
		building.InvoiceCharge: "Charge",
		building.InvoiceRepair: "Repair",
		building.InvoiceOther:  "Other",
	},
}

func (l pdfLabels) lineItem(inv building.Invoice) string {
	if inv.Description == "" && l.lineItems != nil {
		return l.lineItems[inv.Type]
	}

	return inv.LineItem()
}

func (l pdfLabels) kindOf(t building.InvoiceType) string {
	if l.kinds != nil {
		return l.kinds[t]
	}

	return t.Label()
}

// InvoicePDF writes a single-page printable invoice.
func (s *Service) InvoicePDF(w io.Writer, doc InvoiceDocument) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Number(), true)
	pdf.SetMargins(15, 15, 15)

	labels := englishLabels
	printer := message.NewPrinter(language.English)
	text := pdf.UnicodeTranslatorFromDescriptor("")

	if s.fontFile != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", s.fontFile)
		pdf.RTL()

		labels = persianLabels
		printer = s.printer
		text = func(s string) string { return s }
	} else {
		pdf.SetFont("Helvetica", "", 10)
	}

	font := func(size float64) {
		if s.fontFile != "" {
			pdf.SetFont(pdfFontFamily, "", size)
		} else {
			pdf.SetFont("Helvetica", "", size)
		}
	}

	amount := func(n int64) string { return printer.Sprintf("%d", n) }
	inv := doc.Invoice

	pdf.AddPage()

	// issuer
	font(18)
	pdf.CellFormat(110, 10, text(s.issuer.Name), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, text(labels.title), "", 1, "R", false, 0, "")
	font(9)
	pdf.CellFormat(110, 5, text(s.issuer.Address), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, text(labels.number+" "+doc.Number()), "", 1, "R", false, 0, "")
	pdf.CellFormat(110, 5, text(s.issuer.Phone), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, text(labels.issued+" "+inv.Date), "", 1, "R", false, 0, "")
	pdf.CellFormat(110, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, text(labels.due+" "+inv.DueDate), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// payer
	font(10)
	pdf.CellFormat(0, 6, text(labels.payer), "B", 1, "L", false, 0, "")
	font(12)
	pdf.CellFormat(0, 7, text(inv.TenantName), "", 1, "L", false, 0, "")
	font(9)

	if doc.Tenant != nil {
		pdf.CellFormat(0, 5, text(labels.phone+" "+doc.Tenant.Phone), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, text(labels.nationalID+" "+doc.Tenant.NationalID), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 5, text(labels.noDetails), "", 1, "L", false, 0, "")
	}

	if doc.Unit != nil {
		pdf.CellFormat(0, 5, text(fmt.Sprintf("%s %s - %s %d", labels.unit, doc.Unit.Number, labels.floor, doc.Unit.Floor)), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)

	// line item
	pdf.SetFillColor(240, 240, 240)
	font(9)
	pdf.CellFormat(15, 8, text(labels.row), "1", 0, "C", true, 0, "")
	pdf.CellFormat(100, 8, text(labels.description), "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, text(labels.kind), "1", 0, "C", true, 0, "")
	pdf.CellFormat(0, 8, text(labels.amount), "1", 1, "R", true, 0, "")

	desc := labels.lineItem(inv)
	if doc.Unit != nil {
		desc += " - " + fmt.Sprintf(labels.period, doc.Period(), doc.Unit.Number)
	}

	pdf.CellFormat(15, 10, "1", "1", 0, "C", false, 0, "")
	pdf.CellFormat(100, 10, text(desc), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 10, text(labels.kindOf(inv.Type)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 10, amount(inv.Amount), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	// totals
	totals := []struct {
		label string
		value int64
	}{
		{labels.total, inv.Amount},
		{labels.tax, 0},
		{labels.payable, inv.Amount},
	}
	for _, row := range totals {
		pdf.CellFormat(115, 7, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, text(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, amount(row.value)+" "+text(labels.currency), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)

	// payment note and signature
	font(9)
	pdf.CellFormat(0, 5, text(labels.paymentNote), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 5, text(labels.paymentText), "", "L", false)
	pdf.Ln(12)
	pdf.CellFormat(115, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, text(labels.signature), "T", 1, "C", false, 0, "")
	pdf.CellFormat(115, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, text(labels.board), "", 1, "C", false, 0, "")

	if inv.IsPaid {
		pdf.Ln(6)
		font(16)
		pdf.SetTextColor(22, 163, 74)
		pdf.CellFormat(0, 10, text(labels.paid+" "+inv.Date), "1", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(10)
	font(7)
	pdf.CellFormat(0, 4, text(labels.footer), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering invoice pdf: %w", err)
	}

	return nil
}
