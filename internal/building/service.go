package building

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=building
type Repository interface {
	LoadUnits(ctx context.Context) ([]Unit, error)
	SaveUnits(ctx context.Context, units []Unit) error

	LoadTenants(ctx context.Context) ([]Tenant, error)
	SaveTenants(ctx context.Context, tenants []Tenant) error

	LoadInvoices(ctx context.Context) ([]Invoice, error)
	SaveInvoices(ctx context.Context, invoices []Invoice) error

	LoadMaintenance(ctx context.Context) ([]MaintenanceRecord, error)
	SaveMaintenance(ctx context.Context, records []MaintenanceRecord) error
}

// Service owns the four collections. A mutation is visible only after the
// repository accepted the new collection.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time

	mu    sync.Mutex
	state Snapshot
}

type Option func(*Service)

// WithClock overrides the source of "today" for defaulted dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService loads every collection from repo.
func NewService(ctx context.Context, repo Repository, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error

	if s.state.Units, err = repo.LoadUnits(ctx); err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}

	if s.state.Tenants, err = repo.LoadTenants(ctx); err != nil {
		return nil, fmt.Errorf("loading tenants: %w", err)
	}

	if s.state.Invoices, err = repo.LoadInvoices(ctx); err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}

	if s.state.Maintenance, err = repo.LoadMaintenance(ctx); err != nil {
		return nil, fmt.Errorf("loading maintenance: %w", err)
	}

	return s, nil
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

func (s *Service) check(params any) error {
	if err := s.validate.Struct(params); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}

	return nil
}

func (s *Service) commitUnits(ctx context.Context, units []Unit) error {
	if err := s.repo.SaveUnits(ctx, units); err != nil {
		return fmt.Errorf("saving units: %w", err)
	}

	s.state.Units = units

	return nil
}

func (s *Service) commitTenants(ctx context.Context, tenants []Tenant) error {
	if err := s.repo.SaveTenants(ctx, tenants); err != nil {
		return fmt.Errorf("saving tenants: %w", err)
	}

	s.state.Tenants = tenants

	return nil
}

func (s *Service) commitInvoices(ctx context.Context, invoices []Invoice) error {
	if err := s.repo.SaveInvoices(ctx, invoices); err != nil {
		return fmt.Errorf("saving invoices: %w", err)
	}

	s.state.Invoices = invoices

	return nil
}

func (s *Service) commitMaintenance(ctx context.Context, records []MaintenanceRecord) error {
	if err := s.repo.SaveMaintenance(ctx, records); err != nil {
		return fmt.Errorf("saving maintenance: %w", err)
	}

	s.state.Maintenance = records

	return nil
}

// without returns a copy of items minus the one whose id matches.
func without[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	idx := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if idx < 0 {
		return nil, false
	}

	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)

	return append(out, items[idx+1:]...), true
}

// prepend returns a new slice with head placed before items.
func prepend[T any](items []T, head ...T) []T {
	out := make([]T, 0, len(head)+len(items))
	out = append(out, head...)

	return append(out, items...)
}

type AddUnitParams struct {
	Number   string `validate:"required"`
	Floor    *int
	Area     float64
	BaseRent int64
	Status   UnitStatus
}

func (s *Service) AddUnit(ctx context.Context, params AddUnitParams) (*Unit, error) {
	if err := s.check(params); err != nil {
		return nil, err
	}

	u := Unit{
		ID:       uuid.NewString(),
		Number:   params.Number,
		Floor:    1,
		Area:     params.Area,
		BaseRent: params.BaseRent,
		Status:   UnitVacant,
	}
	if params.Floor != nil {
		u.Floor = *params.Floor
	}

	if params.Status != "" {
		u.Status = params.Status
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitUnits(ctx, append(clone(s.state.Units), u)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Service) DeleteUnit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	units, ok := without(s.state.Units, id, func(u Unit) string { return u.ID })
	if !ok {
		return ErrNotFound
	}

	return s.commitUnits(ctx, units)
}

// SetUnitStatus changes the status. A unit that is no longer occupied drops its tenant.
func (s *Service) SetUnitStatus(ctx context.Context, id string, status UnitStatus) (*Unit, error) {
	return s.updateUnit(ctx, id, func(u *Unit) {
		u.Status = status
		if status != UnitOccupied {
			u.TenantID = ""
		}
	})
}

// AssignTenant marks the unit occupied by tenantID. The tenant is not required to exist.
func (s *Service) AssignTenant(ctx context.Context, id, tenantID string) (*Unit, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenant id", ErrMissingInput)
	}

	return s.updateUnit(ctx, id, func(u *Unit) {
		u.Status = UnitOccupied
		u.TenantID = tenantID
	})
}

func (s *Service) updateUnit(ctx context.Context, id string, fn func(*Unit)) (*Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	units := clone(s.state.Units)

	idx := slices.IndexFunc(units, func(u Unit) bool { return u.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	fn(&units[idx])

	if err := s.commitUnits(ctx, units); err != nil {
		return nil, err
	}

	u := units[idx]

	return &u, nil
}

type TenantParams struct {
	ID         string
	Name       string `validate:"required"`
	Phone      string `validate:"required"`
	NationalID string
	StartDate  string
	EndDate    string
	RentDay    int
}

// UpsertTenant creates a tenant, or replaces the fields of the tenant with params.ID.
func (s *Service) UpsertTenant(ctx context.Context, params TenantParams) (*Tenant, error) {
	if err := s.check(params); err != nil {
		return nil, err
	}

	t := Tenant{
		ID:         params.ID,
		Name:       params.Name,
		Phone:      params.Phone,
		NationalID: params.NationalID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		RentDay:    params.RentDay,
	}
	if t.RentDay == 0 {
		t.RentDay = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tenants := clone(s.state.Tenants)

	if t.ID == "" {
		t.ID = uuid.NewString()
		tenants = append(tenants, t)
	} else {
		idx := slices.IndexFunc(tenants, func(x Tenant) bool { return x.ID == t.ID })
		if idx < 0 {
			return nil, ErrNotFound
		}

		tenants[idx] = t
	}

	if err := s.commitTenants(ctx, tenants); err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteTenant removes the tenant only. Units and invoices keep their references.
func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenants, ok := without(s.state.Tenants, id, func(t Tenant) string { return t.ID })
	if !ok {
		return ErrNotFound
	}

	return s.commitTenants(ctx, tenants)
}

type IssueInvoiceParams struct {
	UnitID      string `validate:"required"`
	Amount      int64  `validate:"required"`
	Date        string
	DueDate     string
	Description string
	Type        InvoiceType
}

// IssueInvoice creates an unpaid invoice for the unit's current tenant and puts it first.
func (s *Service) IssueInvoice(ctx context.Context, params IssueInvoiceParams) (*Invoice, error) {
	if err := s.check(params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := Invoice{
		ID:          uuid.NewString(),
		UnitID:      params.UnitID,
		TenantName:  UnknownTenantName,
		Amount:      params.Amount,
		Date:        params.Date,
		DueDate:     params.DueDate,
		Description: params.Description,
		Type:        params.Type,
	}

	if u, ok := FindUnit(s.state.Units, params.UnitID); ok {
		if t, ok := FindTenant(s.state.Tenants, u.TenantID); ok {
			inv.TenantID = t.ID
			inv.TenantName = t.Name
		}
	}

	if inv.Date == "" {
		inv.Date = s.today()
	}

	if inv.DueDate == "" {
		inv.DueDate = inv.Date
	}

	if inv.Type == "" {
		inv.Type = InvoiceRent
	}

	if err := s.commitInvoices(ctx, prepend(s.state.Invoices, inv)); err != nil {
		return nil, err
	}

	return &inv, nil
}

func (s *Service) ToggleInvoicePaid(ctx context.Context, id string) (*Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices := clone(s.state.Invoices)

	idx := slices.IndexFunc(invoices, func(i Invoice) bool { return i.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	invoices[idx].IsPaid = !invoices[idx].IsPaid

	if err := s.commitInvoices(ctx, invoices); err != nil {
		return nil, err
	}

	inv := invoices[idx]

	return &inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, ok := without(s.state.Invoices, id, func(i Invoice) string { return i.ID })
	if !ok {
		return ErrNotFound
	}

	return s.commitInvoices(ctx, invoices)
}

type MaintenanceParams struct {
	Date        string
	Description string `validate:"required"`
	Amount      int64  `validate:"required"`
	Supplier    string
}

func (s *Service) AddMaintenance(ctx context.Context, params MaintenanceParams) (*MaintenanceRecord, error) {
	if err := s.check(params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.newRecord(params)

	if err := s.commitMaintenance(ctx, prepend(s.state.Maintenance, rec)); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (s *Service) newRecord(params MaintenanceParams) MaintenanceRecord {
	rec := MaintenanceRecord{
		ID:          uuid.NewString(),
		Date:        params.Date,
		Description: params.Description,
		Amount:      params.Amount,
		Supplier:    params.Supplier,
	}
	if rec.Date == "" {
		rec.Date = s.today()
	}

	if rec.Supplier == "" {
		rec.Supplier = UnknownSupplier
	}

	return rec
}

func (s *Service) DeleteMaintenance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := without(s.state.Maintenance, id, func(r MaintenanceRecord) string { return r.ID })
	if !ok {
		return ErrNotFound
	}

	return s.commitMaintenance(ctx, records)
}

// ImportMaintenance prepends rows in their given order. Rows missing a
// description or amount are skipped; the number of imported rows is returned.
func (s *Service) ImportMaintenance(ctx context.Context, rows []MaintenanceParams) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]MaintenanceRecord, 0, len(rows))

	for _, p := range rows {
		if s.check(p) != nil {
			continue
		}

		records = append(records, s.newRecord(p))
	}

	if len(records) == 0 {
		return 0, nil
	}

	if err := s.commitMaintenance(ctx, prepend(s.state.Maintenance, records...)); err != nil {
		return 0, err
	}

	return len(records), nil
}

// Restore replaces every collection that is non-nil in snap. Collections are
// committed one by one; a failure stops the restore with earlier ones applied.
func (s *Service) Restore(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Units != nil {
		if err := s.commitUnits(ctx, clone(snap.Units)); err != nil {
			return err
		}
	}

	if snap.Tenants != nil {
		if err := s.commitTenants(ctx, clone(snap.Tenants)); err != nil {
			return err
		}
	}

	if snap.Invoices != nil {
		if err := s.commitInvoices(ctx, clone(snap.Invoices)); err != nil {
			return err
		}
	}

	if snap.Maintenance != nil {
		if err := s.commitMaintenance(ctx, clone(snap.Maintenance)); err != nil {
			return err
		}
	}

	return nil
}
