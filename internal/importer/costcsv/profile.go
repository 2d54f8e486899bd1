package costcsv

// Profile describes the column layout of a maintenance cost export.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountCol   string
	SupplierCol string // optional
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.DescCol, p.AmountCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:        "homa",
		DateCol:     "تاریخ",
		DescCol:     "شرح هزینه",
		AmountCol:   "مبلغ (تومان)",
		SupplierCol: "تامین کننده / تعمیرکار",
	},
	{
		Name:        "homa-short",
		DateCol:     "تاریخ",
		DescCol:     "شرح",
		AmountCol:   "مبلغ",
		SupplierCol: "تامین کننده",
	},
	{
		Name:        "english",
		DateCol:     "Date",
		DescCol:     "Description",
		AmountCol:   "Amount",
		SupplierCol: "Supplier",
	},
}
