package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/reminder"
	"github.com/MrJamesThe3rd/homa/internal/report"
)

type tenantsState int

const (
	tenantsStateBrowse tenantsState = iota
	tenantsStateForm
	tenantsStateReminder
)

type tenantForm struct {
	name       string
	phone      string
	nationalID string
	startDate  string
	endDate    string
	rentDay    string
	confirm    bool
}

type TenantsModel struct {
	CommonModel
	buildings *building.Service
	region    string
	now       func() time.Time

	state    tenantsState
	table    table.Model
	snap     building.Snapshot
	form     *huh.Form
	title    string
	submit   func() tea.Cmd
	reminder reminder.Reminder
	status   string
}

func NewTenantsModel(svc *building.Service, region string) TenantsModel {
	return TenantsModel{
		buildings: svc,
		region:    region,
		now:       time.Now,
		table: newTable([]table.Column{
			{Title: "Name", Width: 22},
			{Title: "Phone", Width: 14},
			{Title: "Unit", Width: 6},
			{Title: "Rent Day", Width: 9},
			{Title: "Start", Width: 11},
			{Title: "End", Width: 11},
			{Title: "Due", Width: 5},
		}),
	}
}

func (m TenantsModel) Title() string { return "Tenants" }

func (m TenantsModel) ShortHelp() string {
	switch m.state {
	case tenantsStateForm:
		return "Navigate form | Esc: cancel"
	case tenantsStateReminder:
		return "Esc: close"
	}

	return "Esc: back | a: add | e: edit | x: delete | w: reminder | r: refresh"
}

func (m TenantsModel) Init() tea.Cmd {
	return loadSnapshotCmd(m.buildings)
}

func (m TenantsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		m.refreshTable()

		return m, nil

	case savedMsg:
		m.status = statusText(msg.done, msg.err)
		return m, loadSnapshotCmd(m.buildings)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case tenantsStateForm:
		return m.updateForm(msg)
	case tenantsStateReminder:
		if isEsc(msg) {
			m.state = tenantsStateBrowse
			m.table.Focus()
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m TenantsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, loadSnapshotCmd(m.buildings)
		case "a":
			return m.openUpsert(building.Tenant{})
		case "e":
			if t, ok := m.selected(); ok {
				return m.openUpsert(t)
			}
		case "x":
			if t, ok := m.selected(); ok {
				return m.openDelete(t)
			}
		case "w":
			if t, ok := m.selected(); ok {
				return m.openReminder(t)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TenantsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isEsc(msg) {
		return m.closeForm(), nil
	}

	form, cmd, done := updateForm(m.form, msg)
	m.form = form

	if !done {
		return m, cmd
	}

	submit := m.submit

	return m.closeForm(), submit()
}

func (m TenantsModel) closeForm() TenantsModel {
	m.state = tenantsStateBrowse
	m.form = nil
	m.submit = nil
	m.table.Focus()

	return m
}

func (m TenantsModel) openForm(title string, form *huh.Form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = tenantsStateForm
	m.title = title
	m.form = form.WithWidth(45).WithShowHelp(false)
	m.submit = submit
	m.table.Blur()

	return m, m.form.Init()
}

// openUpsert edits t, or creates a tenant when t has no ID.
func (m TenantsModel) openUpsert(t building.Tenant) (tea.Model, tea.Cmd) {
	d := &tenantForm{
		name:       t.Name,
		phone:      t.Phone,
		nationalID: t.NationalID,
		startDate:  t.StartDate,
		endDate:    t.EndDate,
		rentDay:    fmt.Sprint(t.DueDay()),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.name),
			huh.NewInput().Title("Phone").Placeholder("0912...").Value(&d.phone),
			huh.NewInput().Title("National ID").Value(&d.nationalID),
			huh.NewInput().Title("Lease start").Placeholder("1402/10/01").Value(&d.startDate),
			huh.NewInput().Title("Lease end").Placeholder("1403/10/01").Value(&d.endDate),
			huh.NewInput().Title("Rent day (1-31)").Value(&d.rentDay).Validate(validateDay),
		),
	)

	title := "Add Tenant"
	if t.ID != "" {
		title = "Edit Tenant"
	}

	return m.openForm(title, form, func() tea.Cmd { return m.upsertCmd(t.ID, d) })
}

func (m TenantsModel) openDelete(t building.Tenant) (tea.Model, tea.Cmd) {
	d := &tenantForm{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", t.Name)).
				Description("Units keep the reference. Invoices keep the name.").
				Value(&d.confirm),
		),
	)

	return m.openForm("Delete Tenant", form, func() tea.Cmd {
		if !d.confirm {
			return nil
		}

		return m.deleteCmd(t.ID)
	})
}

func (m TenantsModel) openReminder(t building.Tenant) (tea.Model, tea.Cmd) {
	r, err := reminder.For(m.snap, t.ID, m.region)
	if err != nil {
		m.status = statusText("", err)
		return m, nil
	}

	m.reminder = r
	m.state = tenantsStateReminder
	m.table.Blur()

	return m, nil
}

func validateDay(s string) error {
	if err := validateInt(s); err != nil {
		return err
	}

	if n := atoi(s); strings.TrimSpace(s) != "" && (n < 1 || n > 31) {
		return fmt.Errorf("day must be between 1 and 31")
	}

	return nil
}

func (m TenantsModel) selected() (building.Tenant, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snap.Tenants) {
		return building.Tenant{}, false
	}

	return m.snap.Tenants[idx], true
}

func (m TenantsModel) View() string {
	content := renderTable(m.table)

	switch {
	case m.state == tenantsStateForm && m.form != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, renderPanel(m.title, m.form.View()))
	case m.state == tenantsStateReminder:
		r := m.reminder

		link := r.WhatsApp
		if link == "" {
			link = errorStyle("phone number is not valid for " + m.region)
		}

		body := fmt.Sprintf("%s\n\nWhatsApp:\n%s\n\nEmail:\n%s", r.Message, link, r.Mailto)
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, renderPanel("Reminder: "+r.TenantName, body))
	}

	return withStatus(m.status, content)
}

func (m *TenantsModel) refreshTable() {
	today := m.now()
	rows := make([]table.Row, 0, len(m.snap.Tenants))

	for _, t := range m.snap.Tenants {
		due := ""
		if report.IsDueSoon(t.DueDay(), today) {
			due = "•"
		}

		rows = append(rows, table.Row{
			t.Name,
			t.Phone,
			reminder.UnitNumberFor(m.snap.Units, t.ID),
			fmt.Sprint(t.DueDay()),
			t.StartDate,
			t.EndDate,
			due,
		})
	}

	m.table.SetRows(rows)
}

// Messages

func (m TenantsModel) upsertCmd(id string, d *tenantForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.buildings.UpsertTenant(ctx, building.TenantParams{
			ID:         id,
			Name:       strings.TrimSpace(d.name),
			Phone:      strings.TrimSpace(d.phone),
			NationalID: strings.TrimSpace(d.nationalID),
			StartDate:  strings.TrimSpace(d.startDate),
			EndDate:    strings.TrimSpace(d.endDate),
			RentDay:    atoi(d.rentDay),
		})
		if err != nil {
			return savedMsg{err: err}
		}

		return savedMsg{done: fmt.Sprintf("Tenant %s saved.", t.Name)}
	}
}

func (m TenantsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return savedMsg{done: "Tenant deleted.", err: m.buildings.DeleteTenant(ctx, id)}
	}
}
