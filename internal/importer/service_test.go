package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/importer"
	"github.com/MrJamesThe3rd/homa/internal/snapshot"
	"github.com/MrJamesThe3rd/homa/internal/snapshot/memstore"
)

func newTarget(t *testing.T) *building.Service {
	t.Helper()

	svc, err := building.NewService(context.Background(), snapshot.NewRepository(memstore.New()))
	require.NoError(t, err)

	return svc
}

func TestService_Import(t *testing.T) {
	type testCase struct {
		name    string
		format  importer.Format
		input   string
		want    importer.Summary
		wantErr bool
		check   func(t *testing.T, snap building.Snapshot)
	}

	tests := []testCase{
		{
			name:   "DumpReplacesCollections",
			format: importer.FormatDump,
			input:  `{"homa_tenants":"[]","homa_maintenance":[{"id":"m9","date":"d","description":"x","amount":1,"supplier":"s"}]}`,
			want:   importer.Summary{Maintenance: 1},
			check: func(t *testing.T, snap building.Snapshot) {
				assert.Empty(t, snap.Tenants)
				assert.Len(t, snap.Units, 3)
				require.Len(t, snap.Maintenance, 1)
				assert.Equal(t, "m9", snap.Maintenance[0].ID)
			},
		},
		{
			name:   "CostsArePrepended",
			format: importer.FormatMaintenanceCSV,
			input:  "تاریخ;شرح هزینه;مبلغ (تومان);تامین کننده / تعمیرکار\n1402/12/01;نظافت;300000;\n",
			want:   importer.Summary{Maintenance: 1},
			check: func(t *testing.T, snap building.Snapshot) {
				require.Len(t, snap.Maintenance, 3)
				assert.Equal(t, "نظافت", snap.Maintenance[0].Description)
				assert.Equal(t, building.UnknownSupplier, snap.Maintenance[0].Supplier)
			},
		},
		{name: "UnknownFormat", format: "xml", input: "<a/>", wantErr: true},
		{name: "BadDump", format: importer.FormatDump, input: "{", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newTarget(t)

			got, err := importer.NewService(target).Import(context.Background(), tt.format, strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, building.Seed(), target.Snapshot())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			tt.check(t, target.Snapshot())
		})
	}
}
