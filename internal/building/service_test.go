package building_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

func newSeededService(t *testing.T, ctrl *gomock.Controller) (*building.Service, *building.MockRepository) {
	t.Helper()

	repo := building.NewMockRepository(ctrl)
	repo.EXPECT().LoadUnits(gomock.Any()).Return(building.SeedUnits(), nil)
	repo.EXPECT().LoadTenants(gomock.Any()).Return(building.SeedTenants(), nil)
	repo.EXPECT().LoadInvoices(gomock.Any()).Return(building.SeedInvoices(), nil)
	repo.EXPECT().LoadMaintenance(gomock.Any()).Return(building.SeedMaintenance(), nil)

	svc, err := building.NewService(context.Background(), repo, building.WithClock(fixedNow))
	require.NoError(t, err)

	return svc, repo
}

func TestNewService_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := building.NewMockRepository(ctrl)
	repo.EXPECT().LoadUnits(gomock.Any()).Return(nil, errors.New("db down"))

	svc, err := building.NewService(context.Background(), repo)
	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestService_IssueInvoice(t *testing.T) {
	type testCase struct {
		name      string
		params    building.IssueInvoiceParams
		setupMock func(m *building.MockRepository)
		wantErr   error
		check     func(t *testing.T, inv *building.Invoice, snap building.Snapshot)
	}

	tests := []testCase{
		{
			name:    "MissingAmount",
			params:  building.IssueInvoiceParams{UnitID: "1"},
			wantErr: building.ErrMissingInput,
			check: func(t *testing.T, _ *building.Invoice, snap building.Snapshot) {
				assert.Len(t, snap.Invoices, 2)
			},
		},
		{
			name:    "MissingUnit",
			params:  building.IssueInvoiceParams{Amount: 100},
			wantErr: building.ErrMissingInput,
		},
		{
			name:   "OccupiedUnitCopiesTenant",
			params: building.IssueInvoiceParams{UnitID: "1", Amount: 8000000},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().SaveInvoices(gomock.Any(), gomock.Len(3)).Return(nil)
			},
			check: func(t *testing.T, inv *building.Invoice, snap building.Snapshot) {
				assert.Equal(t, "t1", inv.TenantID)
				assert.Equal(t, "علی محمدی", inv.TenantName)
				assert.Equal(t, "2024-01-10", inv.Date)
				assert.Equal(t, inv.Date, inv.DueDate)
				assert.Equal(t, building.InvoiceRent, inv.Type)
				assert.False(t, inv.IsPaid)
				require.Len(t, snap.Invoices, 3)
				assert.Equal(t, inv.ID, snap.Invoices[0].ID)
			},
		},
		{
			name:   "VacantUnitUsesUnknownName",
			params: building.IssueInvoiceParams{UnitID: "2", Amount: 500, Type: building.InvoiceCharge, Date: "1402/11/01"},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().SaveInvoices(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, inv *building.Invoice, _ building.Snapshot) {
				assert.Empty(t, inv.TenantID)
				assert.Equal(t, building.UnknownTenantName, inv.TenantName)
				assert.Equal(t, "1402/11/01", inv.DueDate)
				assert.Equal(t, building.InvoiceCharge, inv.Type)
			},
		},
		{
			name:   "CommitFailureKeepsState",
			params: building.IssueInvoiceParams{UnitID: "1", Amount: 10},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().SaveInvoices(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: errors.New("disk full"),
			check: func(t *testing.T, _ *building.Invoice, snap building.Snapshot) {
				assert.Equal(t, building.SeedInvoices(), snap.Invoices)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo := newSeededService(t, ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			inv, err := svc.IssueInvoice(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, building.ErrMissingInput) {
					assert.ErrorIs(t, err, building.ErrMissingInput)
				}

				assert.Nil(t, inv)
			} else {
				require.NoError(t, err)
				require.NotNil(t, inv)
			}

			if tt.check != nil {
				tt.check(t, inv, svc.Snapshot())
			}
		})
	}
}

func TestService_ToggleInvoicePaid_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveInvoices(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	before := svc.Snapshot().Invoices

	inv, err := svc.ToggleInvoicePaid(context.Background(), "i2")
	require.NoError(t, err)
	assert.True(t, inv.IsPaid)

	_, err = svc.ToggleInvoicePaid(context.Background(), "i2")
	require.NoError(t, err)

	assert.Equal(t, before, svc.Snapshot().Invoices)
}

func TestService_ToggleInvoicePaid_Unknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newSeededService(t, ctrl)

	_, err := svc.ToggleInvoicePaid(context.Background(), "nope")
	assert.ErrorIs(t, err, building.ErrNotFound)
}

func TestService_DeleteTenant_KeepsInvoiceName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveTenants(gomock.Any(), gomock.Len(1)).Return(nil)

	require.NoError(t, svc.DeleteTenant(context.Background(), "t1"))

	snap := svc.Snapshot()
	inv, ok := building.FindInvoice(snap.Invoices, "i1")
	require.True(t, ok)
	assert.Equal(t, "علی محمدی", inv.TenantName)

	u, ok := building.FindUnit(snap.Units, "1")
	require.True(t, ok)
	assert.Equal(t, "t1", u.TenantID)

	_, ok = building.FindTenant(snap.Tenants, u.TenantID)
	assert.False(t, ok)
}

func TestService_UpsertTenant(t *testing.T) {
	type testCase struct {
		name      string
		params    building.TenantParams
		setupMock func(m *building.MockRepository)
		wantErr   error
		wantCount int
	}

	tests := []testCase{
		{
			name:      "MissingPhone",
			params:    building.TenantParams{Name: "رضا"},
			wantErr:   building.ErrMissingInput,
			wantCount: 2,
		},
		{
			name:   "Create",
			params: building.TenantParams{Name: "رضا", Phone: "09121111111"},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().SaveTenants(gomock.Any(), gomock.Len(3)).Return(nil)
			},
			wantCount: 3,
		},
		{
			name:   "EditKeepsID",
			params: building.TenantParams{ID: "t2", Name: "زهرا رضایی", Phone: "09129999999", RentDay: 20},
			setupMock: func(m *building.MockRepository) {
				m.EXPECT().SaveTenants(gomock.Any(), gomock.Len(2)).Return(nil)
			},
			wantCount: 2,
		},
		{
			name:      "EditUnknown",
			params:    building.TenantParams{ID: "zz", Name: "x", Phone: "1"},
			wantErr:   building.ErrNotFound,
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo := newSeededService(t, ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.UpsertTenant(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)

				if tt.params.ID != "" {
					assert.Equal(t, tt.params.ID, got.ID)
				} else {
					assert.NotEmpty(t, got.ID)
					assert.Equal(t, 1, got.RentDay)
				}
			}

			assert.Len(t, svc.Snapshot().Tenants, tt.wantCount)
		})
	}
}

func TestService_SetUnitStatus_ClearsTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveUnits(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	u, err := svc.SetUnitStatus(context.Background(), "1", building.UnitMaintenance)
	require.NoError(t, err)
	assert.Empty(t, u.TenantID)

	u, err = svc.AssignTenant(context.Background(), "2", "t9")
	require.NoError(t, err)
	assert.Equal(t, building.UnitOccupied, u.Status)
	assert.Equal(t, "t9", u.TenantID)
}

func TestService_AddUnit_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveUnits(gomock.Any(), gomock.Len(4)).Return(nil)

	_, err := svc.AddUnit(context.Background(), building.AddUnitParams{})
	assert.ErrorIs(t, err, building.ErrMissingInput)

	u, err := svc.AddUnit(context.Background(), building.AddUnitParams{Number: "301"})
	require.NoError(t, err)
	assert.Equal(t, 1, u.Floor)
	assert.Equal(t, building.UnitVacant, u.Status)

	assert.Equal(t, "301", svc.Snapshot().Units[3].Number)
}

func TestService_AddMaintenance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveMaintenance(gomock.Any(), gomock.Len(3)).Return(nil)

	_, err := svc.AddMaintenance(context.Background(), building.MaintenanceParams{Description: "رنگ"})
	assert.ErrorIs(t, err, building.ErrMissingInput)

	rec, err := svc.AddMaintenance(context.Background(), building.MaintenanceParams{Description: "رنگ", Amount: 1000})
	require.NoError(t, err)
	assert.Equal(t, building.UnknownSupplier, rec.Supplier)
	assert.Equal(t, "2024-01-10", rec.Date)
	assert.Equal(t, rec.ID, svc.Snapshot().Maintenance[0].ID)
}

func TestService_ImportMaintenance_SkipsIncomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveMaintenance(gomock.Any(), gomock.Len(4)).Return(nil)

	n, err := svc.ImportMaintenance(context.Background(), []building.MaintenanceParams{
		{Description: "a", Amount: 1},
		{Description: "", Amount: 2},
		{Description: "c", Amount: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := svc.Snapshot().Maintenance
	assert.Equal(t, "a", got[0].Description)
	assert.Equal(t, "c", got[1].Description)
}

func TestService_SnapshotIsCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newSeededService(t, ctrl)

	snap := svc.Snapshot()
	snap.Units[0].Number = "999"

	assert.Equal(t, "101", svc.Snapshot().Units[0].Number)
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveUnits(gomock.Any(), gomock.Len(0)).Return(nil)

	require.NoError(t, svc.Restore(context.Background(), building.Snapshot{Units: []building.Unit{}}))

	snap := svc.Snapshot()
	assert.Empty(t, snap.Units)
	assert.Len(t, snap.Tenants, 2)
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(repo *building.MockRepository)
		del     func(svc *building.Service) error
		count   func(snap building.Snapshot) int
		want    int
		wantErr error
		failing bool
	}

	tests := []testCase{
		{
			name: "UnitKeepsInvoices",
			setup: func(repo *building.MockRepository) {
				repo.EXPECT().SaveUnits(gomock.Any(), gomock.Len(2)).Return(nil)
			},
			del:   func(svc *building.Service) error { return svc.DeleteUnit(context.Background(), "1") },
			count: func(snap building.Snapshot) int { return len(snap.Units) + len(snap.Invoices) },
			want:  4,
		},
		{
			name: "Invoice",
			setup: func(repo *building.MockRepository) {
				repo.EXPECT().SaveInvoices(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			del:   func(svc *building.Service) error { return svc.DeleteInvoice(context.Background(), "i2") },
			count: func(snap building.Snapshot) int { return len(snap.Invoices) },
			want:  1,
		},
		{
			name: "Maintenance",
			setup: func(repo *building.MockRepository) {
				repo.EXPECT().SaveMaintenance(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			del:   func(svc *building.Service) error { return svc.DeleteMaintenance(context.Background(), "m1") },
			count: func(snap building.Snapshot) int { return len(snap.Maintenance) },
			want:  1,
		},
		{
			name:    "UnknownUnit",
			setup:   func(*building.MockRepository) {},
			del:     func(svc *building.Service) error { return svc.DeleteUnit(context.Background(), "nope") },
			count:   func(snap building.Snapshot) int { return len(snap.Units) },
			want:    3,
			wantErr: building.ErrNotFound,
		},
		{
			name:    "UnknownMaintenance",
			setup:   func(*building.MockRepository) {},
			del:     func(svc *building.Service) error { return svc.DeleteMaintenance(context.Background(), "nope") },
			count:   func(snap building.Snapshot) int { return len(snap.Maintenance) },
			want:    2,
			wantErr: building.ErrNotFound,
		},
		{
			name: "CommitFailureKeepsState",
			setup: func(repo *building.MockRepository) {
				repo.EXPECT().SaveMaintenance(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			del:     func(svc *building.Service) error { return svc.DeleteMaintenance(context.Background(), "m1") },
			count:   func(snap building.Snapshot) int { return len(snap.Maintenance) },
			want:    2,
			failing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, repo := newSeededService(t, ctrl)
			tt.setup(repo)

			err := tt.del(svc)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.failing:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, tt.count(svc.Snapshot()))
		})
	}
}

func TestService_UpsertTenant_RenameKeepsInvoiceName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newSeededService(t, ctrl)
	repo.EXPECT().SaveTenants(gomock.Any(), gomock.Len(2)).Return(nil)
	repo.EXPECT().SaveInvoices(gomock.Any(), gomock.Len(3)).Return(nil)

	_, err := svc.UpsertTenant(context.Background(), building.TenantParams{
		ID:    "t1",
		Name:  "علی محمدی نژاد",
		Phone: "09120000000",
	})
	require.NoError(t, err)

	snap := svc.Snapshot()

	renamed, ok := building.FindTenant(snap.Tenants, "t1")
	require.True(t, ok)
	assert.Equal(t, "علی محمدی نژاد", renamed.Name)

	old, ok := building.FindInvoice(snap.Invoices, "i1")
	require.True(t, ok)
	assert.Equal(t, "علی محمدی", old.TenantName)

	issued, err := svc.IssueInvoice(context.Background(), building.IssueInvoiceParams{UnitID: "1", Amount: 8000000})
	require.NoError(t, err)
	assert.Equal(t, "علی محمدی نژاد", issued.TenantName)
}
