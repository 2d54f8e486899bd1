package dump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/importer/dump"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, snap building.Snapshot)
	}

	tests := []testCase{
		{
			name:  "StringValues",
			input: `{"homa_units":"[{\"id\":\"1\",\"number\":\"101\",\"floor\":1,\"area\":75,\"baseRent\":8000000,\"status\":\"پر\",\"tenantId\":\"t1\"}]","other":"x"}`,
			check: func(t *testing.T, snap building.Snapshot) {
				require.Len(t, snap.Units, 1)
				assert.Equal(t, building.UnitOccupied, snap.Units[0].Status)
				assert.Nil(t, snap.Tenants)
				assert.Nil(t, snap.Invoices)
			},
		},
		{
			name:  "ArrayValues",
			input: `{"homa_invoices":[{"id":"i9","unitId":"1","tenantName":"x","amount":5,"date":"d","dueDate":"d","description":"","isPaid":true,"type":"CHARGE"}],"homa_maintenance":[]}`,
			check: func(t *testing.T, snap building.Snapshot) {
				require.Len(t, snap.Invoices, 1)
				assert.True(t, snap.Invoices[0].IsPaid)
				assert.Equal(t, building.InvoiceCharge, snap.Invoices[0].Type)
				assert.NotNil(t, snap.Maintenance)
				assert.Empty(t, snap.Maintenance)
			},
		},
		{name: "NoKnownKeys", input: `{"foo":[]}`, wantErr: true},
		{name: "BadType", input: `{"homa_invoices":[{"type":"GIFT"}]}`, wantErr: true},
		{name: "NotJSON", input: `homa`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := dump.NewParser().Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, snap)
		})
	}
}
