package building

import (
	"fmt"
)

// UnitStatus is the occupancy state of a unit.
type UnitStatus string

const (
	UnitOccupied    UnitStatus = "OCCUPIED"
	UnitVacant      UnitStatus = "VACANT"
	UnitMaintenance UnitStatus = "MAINTENANCE"
)

// UnitStatuses lists every status in display order.
var UnitStatuses = []UnitStatus{UnitOccupied, UnitVacant, UnitMaintenance}

// ParseUnitStatus accepts a status code or the label older snapshots stored in its place.
func ParseUnitStatus(s string) (UnitStatus, error) {
	for _, st := range UnitStatuses {
		if s == string(st) || s == unitStatusLabels[st] {
			return st, nil
		}
	}

	return "", fmt.Errorf("unknown unit status %q", s)
}

func (s UnitStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *UnitStatus) UnmarshalText(b []byte) error {
	st, err := ParseUnitStatus(string(b))
	if err != nil {
		return err
	}

	*s = st

	return nil
}

// InvoiceType classifies what an invoice bills for.
type InvoiceType string

const (
	InvoiceRent   InvoiceType = "RENT"
	InvoiceCharge InvoiceType = "CHARGE"
	InvoiceRepair InvoiceType = "REPAIR"
	InvoiceOther  InvoiceType = "OTHER"
)

var InvoiceTypes = []InvoiceType{InvoiceRent, InvoiceCharge, InvoiceRepair, InvoiceOther}

func ParseInvoiceType(s string) (InvoiceType, error) {
	for _, t := range InvoiceTypes {
		if s == string(t) {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown invoice type %q", s)
}

func (t InvoiceType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

func (t *InvoiceType) UnmarshalText(b []byte) error {
	it, err := ParseInvoiceType(string(b))
	if err != nil {
		return err
	}

	*t = it

	return nil
}

// Unit is a rentable space in the building.
type Unit struct {
	ID       string     `json:"id"`
	Number   string     `json:"number"`
	Floor    int        `json:"floor"`
	Area     float64    `json:"area"`
	BaseRent int64      `json:"baseRent"`
	Status   UnitStatus `json:"status"`
	TenantID string     `json:"tenantId,omitempty"`
}

// Tenant is a lease holder. Lease dates are kept as entered.
type Tenant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	NationalID string `json:"nationalId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	RentDay    int    `json:"rentDay,omitempty"`
}

// DueDay returns the day of month rent is due. Unset means the 1st.
func (t Tenant) DueDay() int {
	if t.RentDay == 0 {
		return 1
	}

	return t.RentDay
}

// Invoice is a billable charge. TenantName is copied at issue time and
// does not follow later tenant edits.
type Invoice struct {
	ID          string      `json:"id"`
	UnitID      string      `json:"unitId"`
	TenantID    string      `json:"tenantId,omitempty"`
	TenantName  string      `json:"tenantName"`
	Amount      int64       `json:"amount"`
	Date        string      `json:"date"`
	DueDate     string      `json:"dueDate"`
	Description string      `json:"description"`
	IsPaid      bool        `json:"isPaid"`
	Type        InvoiceType `json:"type"`
}

// MaintenanceRecord is an expense entry, unrelated to units or invoices.
type MaintenanceRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Supplier    string `json:"supplier"`
}

// Snapshot is a point-in-time copy of all four collections.
type Snapshot struct {
	Units       []Unit
	Tenants     []Tenant
	Invoices    []Invoice
	Maintenance []MaintenanceRecord
}

// Clone returns a deep copy; all entity fields are values so copying the slices suffices.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Units:       clone(s.Units),
		Tenants:     clone(s.Tenants),
		Invoices:    clone(s.Invoices),
		Maintenance: clone(s.Maintenance),
	}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)

	return out
}
