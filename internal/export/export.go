// Package export renders building data as spreadsheets and printable invoices.
package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	InvoicesFilename    = "Gozaresh_Factor_Ha.xlsx"
	MaintenanceFilename = "Gozaresh_Hazine_Ha.xlsx"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType  = "application/pdf"
)

// Issuer is the party printed at the top of every invoice.
type Issuer struct {
	Name    string
	Address string
	Phone   string
}

type Service struct {
	printer  *message.Printer
	issuer   Issuer
	fontFile string
}

// NewService returns a Service formatting amounts for locale. When fontFile
// names a UTF-8 TrueType font, printed invoices use Persian labels.
func NewService(locale string, issuer Issuer, fontFile string) *Service {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Persian
	}

	return &Service{
		printer:  message.NewPrinter(tag),
		issuer:   issuer,
		fontFile: fontFile,
	}
}

// FormatAmount renders a Toman amount with locale digits and grouping.
func (s *Service) FormatAmount(amount int64) string {
	return s.printer.Sprintf("%d", amount)
}
