package building

// Seed returns the dataset used when a collection has never been stored or
// its stored copy is unreadable.
func Seed() Snapshot {
	return Snapshot{
		Units:       SeedUnits(),
		Tenants:     SeedTenants(),
		Invoices:    SeedInvoices(),
		Maintenance: SeedMaintenance(),
	}
}

func SeedUnits() []Unit {
	return []Unit{
		{ID: "1", Number: "101", Floor: 1, Area: 75, BaseRent: 8000000, Status: UnitOccupied, TenantID: "t1"},
		{ID: "2", Number: "102", Floor: 1, Area: 80, BaseRent: 8500000, Status: UnitVacant},
		{ID: "3", Number: "201", Floor: 2, Area: 90, BaseRent: 9500000, Status: UnitOccupied, TenantID: "t2"},
	}
}

func SeedTenants() []Tenant {
	return []Tenant{
		{ID: "t1", Name: "علی محمدی", Phone: "09120000000", NationalID: "0011111111", StartDate: "1402/01/01", EndDate: "1403/01/01", RentDay: 1},
		{ID: "t2", Name: "زهرا رضایی", Phone: "09120000001", NationalID: "0022222222", StartDate: "1402/05/01", EndDate: "1403/05/01", RentDay: 5},
	}
}

func SeedInvoices() []Invoice {
	return []Invoice{
		{ID: "i1", UnitID: "1", TenantName: "علی محمدی", TenantID: "t1", Amount: 8000000, Date: "1402/10/01", DueDate: "1402/10/05", IsPaid: true, Type: InvoiceRent},
		{ID: "i2", UnitID: "3", TenantName: "زهرا رضایی", TenantID: "t2", Amount: 9500000, Date: "1402/10/01", DueDate: "1402/10/05", IsPaid: false, Type: InvoiceRent},
	}
}

func SeedMaintenance() []MaintenanceRecord {
	return []MaintenanceRecord{
		{ID: "m1", Date: "1402/10/15", Description: "تعمیر موتورخانه", Amount: 2500000, Supplier: "تاسیسات مرکزی"},
		{ID: "m2", Date: "1402/11/02", Description: "تعویض لامپ‌های لابی", Amount: 500000, Supplier: "الکتریکی پارس"},
	}
}
