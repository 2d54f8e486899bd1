package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/report"
)

type maintenanceForm struct {
	date        string
	description string
	amount      string
	supplier    string
	confirm     bool
}

type MaintenanceModel struct {
	CommonModel
	buildings *building.Service

	editing bool
	table   table.Model
	records []building.MaintenanceRecord
	form    *huh.Form
	title   string
	submit  func() tea.Cmd
	status  string
}

func NewMaintenanceModel(svc *building.Service) MaintenanceModel {
	return MaintenanceModel{
		buildings: svc,
		table: newTable([]table.Column{
			{Title: "Date", Width: 11},
			{Title: "Description", Width: 34},
			{Title: "Supplier", Width: 18},
			{Title: "Amount", Width: 14},
		}),
	}
}

func (m MaintenanceModel) Title() string { return "Maintenance" }

func (m MaintenanceModel) ShortHelp() string {
	if m.editing {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | r: refresh"
}

func (m MaintenanceModel) Init() tea.Cmd {
	return loadSnapshotCmd(m.buildings)
}

func (m MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.records = msg.snap.Maintenance
		m.refreshTable()

		return m, nil

	case savedMsg:
		m.status = statusText(msg.done, msg.err)
		return m, loadSnapshotCmd(m.buildings)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.editing {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, loadSnapshotCmd(m.buildings)
		case "a":
			return m.openAdd()
		case "x":
			if rec, ok := m.selected(); ok {
				return m.openDelete(rec)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MaintenanceModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m MaintenanceModel) closeForm() MaintenanceModel {
	m.editing = false
	m.form = nil
	m.submit = nil
	m.table.Focus()

	return m
}

func (m MaintenanceModel) openForm(title string, form *huh.Form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.editing = true
	m.title = title
	m.form = form.WithWidth(45).WithShowHelp(false)
	m.submit = submit
	m.table.Blur()

	return m, m.form.Init()
}

func (m MaintenanceModel) openAdd() (tea.Model, tea.Cmd) {
	d := &maintenanceForm{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Description").Value(&d.description),
			huh.NewInput().Title("Amount").Value(&d.amount).Validate(validateAmount),
			huh.NewInput().Title("Supplier").Value(&d.supplier),
			huh.NewInput().Title("Date").Placeholder("today").Value(&d.date),
		),
	)

	return m.openForm("Add Expense", form, func() tea.Cmd { return m.addCmd(d) })
}

func (m MaintenanceModel) openDelete(rec building.MaintenanceRecord) (tea.Model, tea.Cmd) {
	d := &maintenanceForm{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(fmt.Sprintf("Delete %q?", rec.Description)).Value(&d.confirm),
		),
	)

	return m.openForm("Delete Expense", form, func() tea.Cmd {
		if !d.confirm {
			return nil
		}

		return m.deleteCmd(rec.ID)
	})
}

func (m MaintenanceModel) selected() (building.MaintenanceRecord, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return building.MaintenanceRecord{}, false
	}

	return m.records[idx], true
}

func (m MaintenanceModel) View() string {
	header := fmt.Sprintf("Total expenses: %s", errorStyle(FormatAmount(report.TotalExpenses(m.records))))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		renderTable(m.table),
	)

	if m.editing && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, renderPanel(m.title, m.form.View()))
	}

	return withStatus(m.status, content)
}

func (m *MaintenanceModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))

	for _, rec := range m.records {
		rows = append(rows, table.Row{
			rec.Date,
			rec.Description,
			rec.Supplier,
			FormatAmount(rec.Amount),
		})
	}

	m.table.SetRows(rows)
}

// Messages

func (m MaintenanceModel) addCmd(d *maintenanceForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		amount, _ := ParseAmount(d.amount)

		_, err := m.buildings.AddMaintenance(ctx, building.MaintenanceParams{
			Date:        strings.TrimSpace(d.date),
			Description: strings.TrimSpace(d.description),
			Amount:      amount,
			Supplier:    strings.TrimSpace(d.supplier),
		})

		return savedMsg{done: "Expense recorded.", err: err}
	}
}

func (m MaintenanceModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return savedMsg{done: "Expense deleted.", err: m.buildings.DeleteMaintenance(ctx, id)}
	}
}
