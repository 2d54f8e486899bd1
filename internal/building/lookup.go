package building

// FindUnit resolves a soft reference by linear scan.
func FindUnit(units []Unit, id string) (Unit, bool) {
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}

	return Unit{}, false
}

func FindTenant(tenants []Tenant, id string) (Tenant, bool) {
	if id == "" {
		return Tenant{}, false
	}

	for _, t := range tenants {
		if t.ID == id {
			return t, true
		}
	}

	return Tenant{}, false
}

func FindInvoice(invoices []Invoice, id string) (Invoice, bool) {
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, true
		}
	}

	return Invoice{}, false
}

// UnitNumber returns the unit's display number, or placeholder when the unit is gone.
func UnitNumber(units []Unit, id, placeholder string) string {
	if u, ok := FindUnit(units, id); ok {
		return u.Number
	}

	return placeholder
}
