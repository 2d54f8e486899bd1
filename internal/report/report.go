// Package report derives dashboard figures from a snapshot. Nothing here is
// cached; every call recomputes from its inputs.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

const (
	dueSoonWindow  = 5
	recentInvoices = 4
)

// OccupancyRate is the rounded percentage of occupied units, 0 when there are none.
func OccupancyRate(units []building.Unit) int {
	if len(units) == 0 {
		return 0
	}

	occupied := 0

	for _, u := range units {
		if u.Status == building.UnitOccupied {
			occupied++
		}
	}

	rate := decimal.NewFromInt(int64(occupied)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(len(units)))).
		Round(0)

	return int(rate.IntPart())
}

// TotalRevenue sums paid invoices.
func TotalRevenue(invoices []building.Invoice) int64 {
	var sum int64

	for _, inv := range invoices {
		if inv.IsPaid {
			sum += inv.Amount
		}
	}

	return sum
}

// PendingRevenue sums unpaid invoices.
func PendingRevenue(invoices []building.Invoice) int64 {
	var sum int64

	for _, inv := range invoices {
		if !inv.IsPaid {
			sum += inv.Amount
		}
	}

	return sum
}

func TotalExpenses(records []building.MaintenanceRecord) int64 {
	var sum int64

	for _, r := range records {
		sum += r.Amount
	}

	return sum
}

func NetProfit(invoices []building.Invoice, records []building.MaintenanceRecord) int64 {
	return TotalRevenue(invoices) - TotalExpenses(records)
}

// IsDueSoon reports whether rentDay falls within the next five days of
// today's month, today included. Days in the following month never match.
func IsDueSoon(rentDay int, today time.Time) bool {
	diff := rentDay - today.Day()

	return diff >= 0 && diff <= dueSoonWindow
}

func DueSoon(tenants []building.Tenant, today time.Time) []building.Tenant {
	out := []building.Tenant{}

	for _, t := range tenants {
		if IsDueSoon(t.DueDay(), today) {
			out = append(out, t)
		}
	}

	return out
}

type UnitCounts struct {
	Total       int `json:"total"`
	Occupied    int `json:"occupied"`
	Vacant      int `json:"vacant"`
	Maintenance int `json:"maintenance"`
}

type Dashboard struct {
	Units          UnitCounts         `json:"units"`
	OccupancyRate  int                `json:"occupancyRate"`
	TotalRevenue   int64              `json:"totalRevenue"`
	PendingRevenue int64              `json:"pendingRevenue"`
	TotalExpenses  int64              `json:"totalExpenses"`
	NetProfit      int64              `json:"netProfit"`
	RecentInvoices []building.Invoice `json:"recentInvoices"`
	DueSoon        []building.Tenant  `json:"dueSoon"`
}

func Build(snap building.Snapshot, today time.Time) Dashboard {
	d := Dashboard{
		OccupancyRate:  OccupancyRate(snap.Units),
		TotalRevenue:   TotalRevenue(snap.Invoices),
		PendingRevenue: PendingRevenue(snap.Invoices),
		TotalExpenses:  TotalExpenses(snap.Maintenance),
		NetProfit:      NetProfit(snap.Invoices, snap.Maintenance),
		DueSoon:        DueSoon(snap.Tenants, today),
	}

	d.Units.Total = len(snap.Units)

	for _, u := range snap.Units {
		switch u.Status {
		case building.UnitOccupied:
			d.Units.Occupied++
		case building.UnitVacant:
			d.Units.Vacant++
		case building.UnitMaintenance:
			d.Units.Maintenance++
		}
	}

	n := min(len(snap.Invoices), recentInvoices)
	d.RecentInvoices = append([]building.Invoice{}, snap.Invoices[:n]...)

	return d
}
