package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

type unitsState int

const (
	unitsStateBrowse unitsState = iota
	unitsStateForm
)

type unitForm struct {
	number   string
	floor    string
	area     string
	rent     string
	status   building.UnitStatus
	tenantID string
	confirm  bool
}

type UnitsModel struct {
	CommonModel
	buildings *building.Service

	state  unitsState
	table  table.Model
	snap   building.Snapshot
	form   *huh.Form
	title  string
	submit func() tea.Cmd
	status string
}

func NewUnitsModel(svc *building.Service) UnitsModel {
	return UnitsModel{
		buildings: svc,
		table: newTable([]table.Column{
			{Title: "Unit", Width: 8},
			{Title: "Floor", Width: 6},
			{Title: "Area", Width: 8},
			{Title: "Base Rent", Width: 14},
			{Title: "Status", Width: 12},
			{Title: "Tenant", Width: 24},
		}),
	}
}

func (m UnitsModel) Title() string { return "Units" }

func (m UnitsModel) ShortHelp() string {
	if m.state == unitsStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | s: cycle status | t: assign tenant | x: delete | r: refresh"
}

func (m UnitsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UnitsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = msg.snap
		m.refreshTable()

		return m, nil

	case savedMsg:
		m.status = statusText(msg.done, msg.err)
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == unitsStateForm {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m UnitsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "a":
			return m.openAdd()
		case "s":
			if u, ok := m.selected(); ok {
				return m, m.cycleStatusCmd(u)
			}
		case "t":
			if u, ok := m.selected(); ok {
				return m.openAssign(u)
			}
		case "x":
			if u, ok := m.selected(); ok {
				return m.openDelete(u)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UnitsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m UnitsModel) closeForm() UnitsModel {
	m.state = unitsStateBrowse
	m.form = nil
	m.submit = nil
	m.table.Focus()

	return m
}

func (m UnitsModel) openForm(title string, form *huh.Form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = unitsStateForm
	m.title = title
	m.form = form.WithWidth(45).WithShowHelp(false)
	m.submit = submit
	m.table.Blur()

	return m, m.form.Init()
}

func (m UnitsModel) openAdd() (tea.Model, tea.Cmd) {
	d := &unitForm{floor: "1", status: building.UnitVacant}

	statuses := make([]huh.Option[building.UnitStatus], 0, len(building.UnitStatuses))
	for _, s := range building.UnitStatuses {
		statuses = append(statuses, huh.NewOption(s.Label(), s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Unit number").Value(&d.number),
			huh.NewInput().Title("Floor").Value(&d.floor).Validate(validateInt),
			huh.NewInput().Title("Area (m²)").Value(&d.area).Validate(validateInt),
			huh.NewInput().Title("Base rent").Value(&d.rent).Validate(validateAmount),
			huh.NewSelect[building.UnitStatus]().Title("Status").Options(statuses...).Value(&d.status),
		),
	)

	return m.openForm("Add Unit", form, func() tea.Cmd { return m.addCmd(d) })
}

func (m UnitsModel) openAssign(u building.Unit) (tea.Model, tea.Cmd) {
	if len(m.snap.Tenants) == 0 {
		m.status = "No tenants to assign."
		return m, nil
	}

	d := &unitForm{tenantID: u.TenantID}

	options := make([]huh.Option[string], 0, len(m.snap.Tenants))
	for _, t := range m.snap.Tenants {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.Phone), t.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Tenant").Options(options...).Value(&d.tenantID),
		),
	)

	return m.openForm("Assign Tenant to "+u.Number, form, func() tea.Cmd { return m.assignCmd(u.ID, d) })
}

func (m UnitsModel) openDelete(u building.Unit) (tea.Model, tea.Cmd) {
	d := &unitForm{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete unit %s?", u.Number)).
				Description("Invoices that reference it will show a placeholder.").
				Value(&d.confirm),
		),
	)

	return m.openForm("Delete Unit", form, func() tea.Cmd {
		if !d.confirm {
			return nil
		}

		return m.deleteCmd(u.ID)
	})
}

func (m UnitsModel) selected() (building.Unit, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snap.Units) {
		return building.Unit{}, false
	}

	return m.snap.Units[idx], true
}

func (m UnitsModel) View() string {
	content := renderTable(m.table)

	if m.state == unitsStateForm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, renderPanel(m.title, m.form.View()))
	}

	return withStatus(m.status, content)
}

func (m *UnitsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.snap.Units))

	for _, u := range m.snap.Units {
		tenant := ""
		if t, ok := building.FindTenant(m.snap.Tenants, u.TenantID); ok {
			tenant = t.Name
		}

		rows = append(rows, table.Row{
			u.Number,
			fmt.Sprint(u.Floor),
			fmt.Sprint(u.Area),
			FormatAmount(u.BaseRent),
			u.Status.Label(),
			tenant,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type snapshotMsg struct {
	snap building.Snapshot
}

func loadSnapshotCmd(svc *building.Service) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: svc.Snapshot()}
	}
}

func (m UnitsModel) loadCmd() tea.Cmd {
	return loadSnapshotCmd(m.buildings)
}

func (m UnitsModel) addCmd(d *unitForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rent, _ := ParseAmount(d.rent)

		params := building.AddUnitParams{
			Number:   strings.TrimSpace(d.number),
			Area:     float64(atoi(d.area)),
			BaseRent: rent,
			Status:   d.status,
		}
		if strings.TrimSpace(d.floor) != "" {
			params.Floor = new(atoi(d.floor))
		}

		u, err := m.buildings.AddUnit(ctx, params)
		if err != nil {
			return savedMsg{err: err}
		}

		return savedMsg{done: fmt.Sprintf("Unit %s added.", u.Number)}
	}
}

func (m UnitsModel) cycleStatusCmd(u building.Unit) tea.Cmd {
	next := building.UnitStatuses[0]

	for i, s := range building.UnitStatuses {
		if s == u.Status {
			next = building.UnitStatuses[(i+1)%len(building.UnitStatuses)]
		}
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.buildings.SetUnitStatus(ctx, u.ID, next)

		return savedMsg{done: fmt.Sprintf("Unit %s is now %s.", u.Number, next.Label()), err: err}
	}
}

func (m UnitsModel) assignCmd(id string, d *unitForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.buildings.AssignTenant(ctx, id, d.tenantID)

		return savedMsg{done: "Tenant assigned.", err: err}
	}
}

func (m UnitsModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return savedMsg{done: "Unit deleted.", err: m.buildings.DeleteUnit(ctx, id)}
	}
}
