package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/export"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateForm
)

type invoiceForm struct {
	unitID      string
	amount      string
	invoiceType building.InvoiceType
	description string
	date        string
	dueDate     string
	confirm     bool
}

type InvoiceModel struct {
	CommonModel
	buildings     *building.Service
	exportService *export.Service
	exportDir     string

	state  invoicesState
	table  table.Model
	snap   building.Snapshot
	form   *huh.Form
	title  string
	submit func() tea.Cmd
	status string
}

func NewInvoiceModel(svc *building.Service, exportSvc *export.Service, exportDir string) InvoiceModel {
	return InvoiceModel{
		buildings:     svc,
		exportService: exportSvc,
		exportDir:     exportDir,
		table: newTable([]table.Column{
			{Title: "Date", Width: 11},
			{Title: "Due", Width: 11},
			{Title: "Unit", Width: 6},
			{Title: "Tenant", Width: 20},
			{Title: "Type", Width: 10},
			{Title: "Amount", Width: 14},
			{Title: "Status", Width: 12},
		}),
	}
}

func (m InvoiceModel) Title() string { return "Invoices" }

func (m InvoiceModel) ShortHelp() string {
	if m.state == invoicesStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: issue | p: toggle paid | d: save PDF | x: delete | r: refresh"
}

func (m InvoiceModel) Init() tea.Cmd {
	return loadSnapshotCmd(m.buildings)
}

func (m InvoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if m.state == invoicesStateForm {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoiceModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, loadSnapshotCmd(m.buildings)
		case "a":
			return m.openIssue()
		case "p":
			if inv, ok := m.selected(); ok {
				return m, m.togglePaidCmd(inv.ID)
			}
		case "d":
			if inv, ok := m.selected(); ok {
				return m, m.savePDFCmd(inv.ID)
			}
		case "x":
			if inv, ok := m.selected(); ok {
				return m.openDelete(inv)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoiceModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m InvoiceModel) closeForm() InvoiceModel {
	m.state = invoicesStateBrowse
	m.form = nil
	m.submit = nil
	m.table.Focus()

	return m
}

func (m InvoiceModel) openForm(title string, form *huh.Form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = invoicesStateForm
	m.title = title
	m.form = form.WithWidth(45).WithShowHelp(false)
	m.submit = submit
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoiceModel) openIssue() (tea.Model, tea.Cmd) {
	if len(m.snap.Units) == 0 {
		m.status = "Add a unit before issuing invoices."
		return m, nil
	}

	d := &invoiceForm{invoiceType: building.InvoiceRent}

	units := make([]huh.Option[string], 0, len(m.snap.Units))
	for _, u := range m.snap.Units {
		label := u.Number
		if t, ok := building.FindTenant(m.snap.Tenants, u.TenantID); ok {
			label += " - " + t.Name
		}

		units = append(units, huh.NewOption(label, u.ID))
	}

	types := make([]huh.Option[building.InvoiceType], 0, len(building.InvoiceTypes))
	for _, t := range building.InvoiceTypes {
		types = append(types, huh.NewOption(t.Label(), t))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Unit").Options(units...).Value(&d.unitID),
			huh.NewInput().Title("Amount").Value(&d.amount).Validate(validateAmount),
			huh.NewSelect[building.InvoiceType]().Title("Type").Options(types...).Value(&d.invoiceType),
			huh.NewInput().Title("Description").Value(&d.description),
			huh.NewInput().Title("Date").Placeholder("today").Value(&d.date),
			huh.NewInput().Title("Due date").Placeholder("same as date").Value(&d.dueDate),
		),
	)

	return m.openForm("Issue Invoice", form, func() tea.Cmd { return m.issueCmd(d) })
}

func (m InvoiceModel) openDelete(inv building.Invoice) (tea.Model, tea.Cmd) {
	d := &invoiceForm{}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete invoice of %s?", FormatAmount(inv.Amount))).
				Value(&d.confirm),
		),
	)

	return m.openForm("Delete Invoice", form, func() tea.Cmd {
		if !d.confirm {
			return nil
		}

		return m.deleteCmd(inv.ID)
	})
}

func (m InvoiceModel) selected() (building.Invoice, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snap.Invoices) {
		return building.Invoice{}, false
	}

	return m.snap.Invoices[idx], true
}

func (m InvoiceModel) View() string {
	pending := int64(0)
	for _, inv := range m.snap.Invoices {
		if !inv.IsPaid {
			pending += inv.Amount
		}
	}

	header := fmt.Sprintf("%d invoices | pending %s", len(m.snap.Invoices), activeStyle(FormatAmount(pending)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		renderTable(m.table),
	)

	if m.state == invoicesStateForm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, renderPanel(m.title, m.form.View()))
	}

	return withStatus(m.status, content)
}

func (m *InvoiceModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.snap.Invoices))

	for _, inv := range m.snap.Invoices {
		rows = append(rows, table.Row{
			inv.Date,
			inv.DueDate,
			building.UnitNumber(m.snap.Units, inv.UnitID, building.UnitPlaceholder),
			inv.TenantName,
			inv.Type.Label(),
			FormatAmount(inv.Amount),
			building.PaidLabel(inv.IsPaid),
		})
	}

	m.table.SetRows(rows)
}

// Messages

func (m InvoiceModel) issueCmd(d *invoiceForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		amount, _ := ParseAmount(d.amount)

		inv, err := m.buildings.IssueInvoice(ctx, building.IssueInvoiceParams{
			UnitID:      d.unitID,
			Amount:      amount,
			Date:        strings.TrimSpace(d.date),
			DueDate:     strings.TrimSpace(d.dueDate),
			Description: strings.TrimSpace(d.description),
			Type:        d.invoiceType,
		})
		if err != nil {
			return savedMsg{err: err}
		}

		return savedMsg{done: fmt.Sprintf("Invoice of %s issued to %s.", FormatAmount(inv.Amount), inv.TenantName)}
	}
}

func (m InvoiceModel) togglePaidCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.buildings.ToggleInvoicePaid(ctx, id)
		if err != nil {
			return savedMsg{err: err}
		}

		return savedMsg{done: "Invoice marked " + building.PaidLabel(inv.IsPaid) + "."}
	}
}

func (m InvoiceModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return savedMsg{done: "Invoice deleted.", err: m.buildings.DeleteInvoice(ctx, id)}
	}
}

func (m InvoiceModel) savePDFCmd(id string) tea.Cmd {
	return func() tea.Msg {
		doc, err := export.Document(m.buildings.Snapshot(), id)
		if err != nil {
			return savedMsg{err: err}
		}

		path, err := writeExport(m.exportDir, "invoice-"+doc.Number()+".pdf", func(w io.Writer) error {
			return m.exportService.InvoicePDF(w, doc)
		})
		if err != nil {
			return savedMsg{err: err}
		}

		return savedMsg{done: "Saved " + path}
	}
}
