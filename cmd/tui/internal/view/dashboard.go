package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/report"
)

type DashboardModel struct {
	CommonModel
	buildings *building.Service
	now       func() time.Time

	dashboard report.Dashboard
	units     []building.Unit
}

func NewDashboardModel(svc *building.Service) DashboardModel {
	return DashboardModel{buildings: svc, now: time.Now}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.dashboard = msg.dashboard
		m.units = msg.units
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	d := m.dashboard

	card := lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(fmt.Sprintf("Occupancy\n%s", activeStyle(fmt.Sprintf("%d%%", d.OccupancyRate)))),
		card.Render(fmt.Sprintf("Revenue\n%s", successStyle(FormatAmount(d.TotalRevenue)))),
		card.Render(fmt.Sprintf("Pending\n%s", activeStyle(FormatAmount(d.PendingRevenue)))),
		card.Render(fmt.Sprintf("Expenses\n%s", errorStyle(FormatAmount(d.TotalExpenses)))),
		card.Render(fmt.Sprintf("Net Profit\n%s", FormatAmount(d.NetProfit))),
	)

	units := fmt.Sprintf("Units: %d total | %d %s | %d %s | %d %s",
		d.Units.Total,
		d.Units.Occupied, building.UnitOccupied.Label(),
		d.Units.Vacant, building.UnitVacant.Label(),
		d.Units.Maintenance, building.UnitMaintenance.Label(),
	)

	var recent strings.Builder

	recent.WriteString("Recent invoices\n")

	if len(d.RecentInvoices) == 0 {
		recent.WriteString("  (none)\n")
	}

	for _, inv := range d.RecentInvoices {
		fmt.Fprintf(&recent, "  %s  %-4s %-20s %14s  %s\n",
			inv.Date,
			building.UnitNumber(m.units, inv.UnitID, building.UnitPlaceholder),
			inv.TenantName,
			FormatAmount(inv.Amount),
			building.PaidLabel(inv.IsPaid),
		)
	}

	var due strings.Builder

	due.WriteString("Rent due within 5 days\n")

	if len(d.DueSoon) == 0 {
		due.WriteString("  (none)\n")
	}

	for _, t := range d.DueSoon {
		fmt.Fprintf(&due, "  %-20s day %-2d  %s\n", t.Name, t.DueDay(), t.Phone)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			cards,
			"",
			units,
			"",
			recent.String(),
			due.String(),
		),
	)
}

type dashboardMsg struct {
	dashboard report.Dashboard
	units     []building.Unit
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		snap := m.buildings.Snapshot()
		return dashboardMsg{dashboard: report.Build(snap, m.now()), units: snap.Units}
	}
}
