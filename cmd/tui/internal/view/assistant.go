package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/homa/internal/ai"
	"github.com/MrJamesThe3rd/homa/internal/building"
)

// The ai.Service applies its own per-call timeout below this one.
const assistantTimeout = 2 * time.Minute

type assistantState int

const (
	assistantStateForm assistantState = iota
	assistantStateRunning
	assistantStateResult
)

var kindTitles = map[ai.Kind]string{
	ai.KindLease:    "Lease draft",
	ai.KindAnalysis: "Financial analysis",
	ai.KindChat:     "Ask a question",
}

type assistantForm struct {
	kind       ai.Kind
	tenantName string
	unitNumber string
	rent       string
	startDate  string
	question   string
}

type AssistantModel struct {
	CommonModel
	ai        *ai.Service
	buildings *building.Service

	state   assistantState
	data    *assistantForm
	form    *huh.Form
	spinner spinner.Model
	output  viewport.Model
	reply   ai.Reply
	status  string

	// request identifies the call whose reply this model still wants.
	request *assistantForm
}

func NewAssistantModel(aiSvc *ai.Service, svc *building.Service) AssistantModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := AssistantModel{
		ai:        aiSvc,
		buildings: svc,
		spinner:   s,
		output:    viewport.New(80, 20),
	}

	return m.reset(ai.KindChat)
}

func (m AssistantModel) Title() string { return "Assistant" }

func (m AssistantModel) ShortHelp() string {
	switch m.state {
	case assistantStateRunning:
		return "Esc: back (reply is discarded)"
	case assistantStateResult:
		return "Esc: new request | ↑/↓: scroll"
	}

	return "Esc: back | Enter: confirm"
}

func (m AssistantModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AssistantModel) reset(kind ai.Kind) AssistantModel {
	m.state = assistantStateForm
	m.data = &assistantForm{kind: kind}
	m.form = buildAssistantForm(m.data)
	m.request = nil

	return m
}

func buildAssistantForm(d *assistantForm) *huh.Form {
	kinds := make([]huh.Option[ai.Kind], 0, len(kindTitles))
	for _, k := range []ai.Kind{ai.KindChat, ai.KindLease, ai.KindAnalysis} {
		kinds = append(kinds, huh.NewOption(kindTitles[k], k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ai.Kind]().Title("Request").Options(kinds...).Value(&d.kind),
		),
		huh.NewGroup(
			huh.NewText().Title("Question").Value(&d.question),
		).WithHideFunc(func() bool { return d.kind != ai.KindChat }),
		huh.NewGroup(
			huh.NewInput().Title("Tenant name").Value(&d.tenantName),
			huh.NewInput().Title("Unit number").Value(&d.unitNumber),
			huh.NewInput().Title("Monthly rent").Value(&d.rent).Validate(validateAmount),
			huh.NewInput().Title("Start date").Placeholder("1402/10/01").Value(&d.startDate),
		).WithHideFunc(func() bool { return d.kind != ai.KindLease }),
	).WithWidth(60).WithShowHelp(false)
}

func (m AssistantModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if reply, ok := msg.(assistantReplyMsg); ok {
		if reply.request != m.request {
			return m, nil
		}

		m.state = assistantStateResult
		m.reply = reply.reply
		m.output.SetContent(lipgloss.NewStyle().Width(m.output.Width).Render(reply.reply.Text))
		m.output.GotoTop()

		return m, nil
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.output.Width = max(size.Width-6, 20)
		m.output.Height = max(size.Height-10, 5)

		return m, nil
	}

	switch m.state {
	case assistantStateForm:
		return m.updateForm(msg)
	case assistantStateRunning:
		if isEsc(msg) {
			return m, Back
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case assistantStateResult:
		if isEsc(msg) {
			m = m.reset(m.data.kind)
			return m, m.form.Init()
		}

		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m AssistantModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isEsc(msg) {
		return m, Back
	}

	form, cmd, done := updateForm(m.form, msg)
	m.form = form

	if !done {
		return m, cmd
	}

	d := *m.data

	if m.ai.Loading(d.kind) {
		m.status = "A request of this kind is still running."
		m = m.reset(d.kind)

		return m, m.form.Init()
	}

	if d.kind == ai.KindChat && strings.TrimSpace(d.question) == "" {
		m.status = "Type a question first."
		m = m.reset(d.kind)

		return m, m.form.Init()
	}

	m.status = ""
	m.state = assistantStateRunning
	m.request = &d

	return m, tea.Batch(m.spinner.Tick, m.runCmd(d, m.request))
}

func (m AssistantModel) View() string {
	switch m.state {
	case assistantStateForm:
		return withStatus(m.status, m.form.View())

	case assistantStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s %s...", m.spinner.View(), kindTitles[m.data.kind]),
		)

	case assistantStateResult:
		header := successStyle(kindTitles[m.data.kind])
		if m.reply.Failed {
			header = errorStyle(kindTitles[m.data.kind] + " failed")
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", m.output.View()),
		)
	}

	return ""
}

// Messages

type assistantReplyMsg struct {
	request *assistantForm
	reply   ai.Reply
}

func (m AssistantModel) runCmd(d assistantForm, request *assistantForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()

		var reply ai.Reply

		switch d.kind {
		case ai.KindLease:
			rent, _ := ParseAmount(d.rent)
			reply = m.ai.LeaseDraft(ctx, ai.LeaseParams{
				TenantName: strings.TrimSpace(d.tenantName),
				UnitNumber: strings.TrimSpace(d.unitNumber),
				Rent:       rent,
				StartDate:  strings.TrimSpace(d.startDate),
			})
		case ai.KindAnalysis:
			reply = m.ai.AnalyzeFinancials(ctx, m.buildings.Snapshot().Invoices)
		default:
			reply = m.ai.Ask(ctx, d.question)
		}

		return assistantReplyMsg{request: request, reply: reply}
	}
}
