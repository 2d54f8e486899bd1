package view

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportKind string

const (
	exportInvoices    exportKind = "invoices"
	exportMaintenance exportKind = "maintenance"
)

type exportForm struct {
	kind exportKind
	path string
}

type ExportModel struct {
	CommonModel
	buildings     *building.Service
	exportService *export.Service

	state   exportState
	err     error
	data    *exportForm
	form    *huh.Form
	spinner spinner.Model
	summary string
}

func NewExportModel(svc *building.Service, exportSvc *export.Service, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	d := &exportForm{kind: exportInvoices, path: dir}

	return ExportModel{
		buildings:     svc,
		exportService: exportSvc,
		state:         exportStateForm,
		data:          d,
		form:          buildExportForm(d),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Spreadsheets" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if isEsc(msg) {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isEsc(msg) {
		return m, Back
	}

	form, cmd, done := updateForm(m.form, msg)
	m.form = form

	if !done {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.data))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func buildExportForm(d *exportForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[exportKind]().
				Title("Report").
				Options(
					huh.NewOption("Invoices ("+export.InvoicesFilename+")", exportInvoices),
					huh.NewOption("Maintenance costs ("+export.MaintenanceFilename+")", exportMaintenance),
				).
				Value(&d.kind),
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&d.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing spreadsheet...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd(d exportForm) tea.Cmd {
	return func() tea.Msg {
		snap := m.buildings.Snapshot()

		var (
			path string
			rows int
			err  error
		)

		switch d.kind {
		case exportMaintenance:
			rows = len(snap.Maintenance)
			path, err = writeExport(d.path, export.MaintenanceFilename, func(w io.Writer) error {
				return m.exportService.MaintenanceWorkbook(w, snap.Maintenance)
			})
		default:
			rows = len(snap.Invoices)
			path, err = writeExport(d.path, export.InvoicesFilename, func(w io.Writer) error {
				return m.exportService.InvoicesWorkbook(w, snap.Invoices, snap.Units)
			})
		}

		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{body: fmt.Sprintf("%d rows written to %s", rows, path)}
	}
}

// writeExport creates dir/name and fills it with write.
func writeExport(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}
