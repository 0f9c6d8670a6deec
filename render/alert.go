// Package render turns faucet results into terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/galihrivanto/tokenfaucet/faucet"
)

const rateLimitNote = "Each wallet can claim each token once per 24 hours. This helps ensure fair distribution of testnet tokens."

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	successStyle = bannerStyle.Copy().BorderForeground(lipgloss.Color("34"))
	warningStyle = bannerStyle.Copy().BorderForeground(lipgloss.Color("214"))
	errorStyle   = bannerStyle.Copy().BorderForeground(lipgloss.Color("196"))

	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	linkStyle  = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Alert renders result as a single banner styled by its severity.
func Alert(result faucet.ClaimResult) string {
	var body string
	switch {
	case result.Kind == faucet.KindSuccess && result.Token != "":
		body = claimBody(result)
	case result.Kind == faucet.KindSuccess:
		body = fmt.Sprintf("%s\n%s %s", titleStyle.Render(result.Message), labelStyle.Render("Wallet:"), result.Wallet)
	case result.Kind == faucet.KindRateLimited:
		body = fmt.Sprintf("%s\n\n%s", titleStyle.Render(result.Message), dimStyle.Render(rateLimitNote))
	case result.Kind == faucet.KindNetworkFailure:
		body = titleStyle.Render("Request failed: " + result.Message)
	default:
		body = titleStyle.Render(result.Message)
	}

	return style(result.Severity()).Render(body)
}

func claimBody(result faucet.ClaimResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tokens Successfully Claimed!"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Token:      "), result.Token)
	fmt.Fprintf(&b, "%s %d %s\n", labelStyle.Render("Amount:     "), faucet.ClaimAmount, result.Token)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Recipient:  "), result.Wallet)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Transaction:"), result.TxHash)

	if result.ExplorerAvailable {
		fmt.Fprintf(&b, "View transaction: %s\n", linkStyle.Render(result.ExplorerURL))
	} else {
		b.WriteString(warningText("Transaction hash format validation failed. Please check the faucet logs."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tokens should appear in your wallet within 1-2 minutes.\nIf you don't see them, add the token contract address to your wallet."))
	return b.String()
}

func warningText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(s)
}

func style(s faucet.Severity) lipgloss.Style {
	switch s {
	case faucet.SeveritySuccess:
		return successStyle
	case faucet.SeverityWarning:
		return warningStyle
	default:
		return errorStyle
	}
}

// Notice renders a session transition, or "" for events with nothing to say.
func Notice(ev faucet.SessionEvent) string {
	switch ev.Kind {
	case faucet.SessionConnected:
		return successStyle.Render("Wallet connected: " + ev.Address)
	case faucet.SessionSwitched:
		return successStyle.Render("Account switched: " + ShortAddress(ev.Address))
	case faucet.SessionDisconnected:
		return warningStyle.Render("Wallet disconnected. Please connect your wallet to claim tokens.")
	case faucet.SessionReset:
		return warningStyle.Render("Network changed to " + ev.ChainID + ". Session reset.")
	default:
		return ""
	}
}

// ShortAddress abbreviates a hex address as 0x12345678...89abcdef.
func ShortAddress(address string) string {
	if len(address) <= 18 {
		return address
	}
	return address[:10] + "..." + address[len(address)-8:]
}
