package render

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/galihrivanto/tokenfaucet/faucet"
)

type claimDoneMsg struct {
	result faucet.ClaimResult
}

// ClaimModel shows a spinner while a claim is in flight and the alert once
// it completes. Only one claim runs per model.
type ClaimModel struct {
	token   string
	submit  func() faucet.ClaimResult
	spinner spinner.Model
	pending bool
	result  *faucet.ClaimResult
}

func NewClaimModel(token string, submit func() faucet.ClaimResult) ClaimModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	return ClaimModel{
		token:   token,
		submit:  submit,
		spinner: s,
		pending: true,
	}
}

func (m ClaimModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.claim())
}

func (m ClaimModel) claim() tea.Cmd {
	submit := m.submit
	return func() tea.Msg {
		return claimDoneMsg{result: submit()}
	}
}

func (m ClaimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case claimDoneMsg:
		m.pending = false
		m.result = &msg.result
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ClaimModel) View() string {
	if m.result != nil {
		return Alert(*m.result) + "\n"
	}
	return fmt.Sprintf("%s Claiming %s tokens...\n%s\n",
		m.spinner.View(), m.token, dimStyle.Render("Please wait while we process your request..."))
}

// Pending reports whether the claim has not completed yet.
func (m ClaimModel) Pending() bool {
	return m.pending
}

// Result returns the claim outcome, if it completed.
func (m ClaimModel) Result() (faucet.ClaimResult, bool) {
	if m.result == nil {
		return faucet.ClaimResult{}, false
	}
	return *m.result, true
}

// RunClaim runs submit behind a spinner and returns its result. ok is false
// when the user quit before the claim completed.
func RunClaim(token string, submit func() faucet.ClaimResult, opts ...tea.ProgramOption) (result faucet.ClaimResult, ok bool, err error) {
	final, err := tea.NewProgram(NewClaimModel(token, submit), opts...).Run()
	if err != nil {
		return faucet.ClaimResult{}, false, fmt.Errorf("TUI error: %w", err)
	}

	result, ok = final.(ClaimModel).Result()
	return result, ok, nil
}
