package building_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

func TestUnitStatus_Decode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    building.UnitStatus
		wantErr bool
	}{
		{name: "Code", in: `"VACANT"`, want: building.UnitVacant},
		{name: "LegacyOccupied", in: `"پر"`, want: building.UnitOccupied},
		{name: "LegacyMaintenance", in: `"تعمیرات"`, want: building.UnitMaintenance},
		{name: "Unknown", in: `"RENTED"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got building.UnitStatus

			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "پر", building.UnitOccupied.Label())
	assert.Equal(t, "تعمیرات", building.InvoiceRepair.Label())
	assert.Equal(t, "سایر", building.InvoiceOther.Label())
	assert.Equal(t, "پرداخت شده", building.PaidLabel(true))
	assert.Equal(t, "شارژ ماهیانه ساختمان", building.Invoice{Type: building.InvoiceCharge}.LineItem())
	assert.Equal(t, "x", building.Invoice{Type: building.InvoiceCharge, Description: "x"}.LineItem())
}

func TestUnitNumber_Dangling(t *testing.T) {
	units := building.SeedUnits()

	assert.Equal(t, "201", building.UnitNumber(units, "3", building.UnitPlaceholder))
	assert.Equal(t, building.UnitPlaceholder, building.UnitNumber(units, "gone", building.UnitPlaceholder))
}

func TestTenant_DueDay(t *testing.T) {
	assert.Equal(t, 1, building.Tenant{}.DueDay())
	assert.Equal(t, 5, building.Tenant{RentDay: 5}.DueDay())
}

func TestMaintenanceRecord_DecodeAmount(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Whole", in: `{"id":"m","amount":2500000}`, want: 2500000},
		{name: "FractionRoundsUp", in: `{"id":"m","amount":1500.5}`, want: 1501},
		{name: "FractionRoundsDown", in: `{"id":"m","amount":99.4}`, want: 99},
		{name: "Exponent", in: `{"id":"m","amount":2.5e6}`, want: 2500000},
		{name: "Null", in: `{"id":"m","amount":null}`, want: 0},
		{name: "Missing", in: `{"id":"m"}`, want: 0},
		{name: "Text", in: `{"id":"m","amount":"abc"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec building.MaintenanceRecord

			err := json.Unmarshal([]byte(tt.in), &rec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "m", rec.ID)
			assert.Equal(t, tt.want, rec.Amount)
		})
	}
}

func TestInvoice_EncodeUnchanged(t *testing.T) {
	inv := building.SeedInvoices()[0]

	b, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"amount":8000000`)

	var got building.Invoice
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, inv, got)
}
