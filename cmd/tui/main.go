package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/homa/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/homa/internal/app"
	"github.com/MrJamesThe3rd/homa/internal/config"
)

const exportDir = "./exports"

type model struct {
	app    *app.App
	region string

	currentView View
	screen      view.View
}

type View int

const (
	ViewMenu        View = 0
	ViewDashboard   View = 1
	ViewUnits       View = 2
	ViewTenants     View = 3
	ViewInvoices    View = 4
	ViewMaintenance View = 5
	ViewAssistant   View = 6
	ViewImport      View = 7
	ViewExport      View = 8
)

var menuKeys = map[string]View{
	"1": ViewDashboard,
	"2": ViewUnits,
	"3": ViewTenants,
	"4": ViewInvoices,
	"5": ViewMaintenance,
	"6": ViewAssistant,
	"7": ViewImport,
	"8": ViewExport,
}

func initialModel(a *app.App, cfg *config.Config) model {
	return model{
		app:         a,
		region:      cfg.App.Region,
		currentView: ViewMenu,
	}
}

// open builds a fresh screen so every visit starts from current data.
func (m model) open(v View) view.View {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.app.Buildings)
	case ViewUnits:
		return view.NewUnitsModel(m.app.Buildings)
	case ViewTenants:
		return view.NewTenantsModel(m.app.Buildings, m.region)
	case ViewInvoices:
		return view.NewInvoiceModel(m.app.Buildings, m.app.Export, exportDir)
	case ViewMaintenance:
		return view.NewMaintenanceModel(m.app.Buildings)
	case ViewAssistant:
		return view.NewAssistantModel(m.app.AI, m.app.Buildings)
	case ViewImport:
		return view.NewImportModel(m.app.Importer)
	case ViewExport:
		return view.NewExportModel(m.app.Buildings, m.app.Export, exportDir)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			if v, ok := menuKeys[msg.String()]; ok {
				m.currentView = v
				m.screen = m.open(v)

				return m, m.screen.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	newModel, cmd := m.screen.Update(msg)
	m.screen = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Homa - Building Management\n\n" +
				"1. Dashboard\n" +
				"2. Units\n" +
				"3. Tenants\n" +
				"4. Invoices\n" +
				"5. Maintenance Costs\n" +
				"6. Assistant\n" +
				"7. Import Data\n" +
				"8. Export Spreadsheets\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).Render(m.screen.ShortHelp())
	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.screen.Title())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.screen.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
