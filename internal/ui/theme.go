// Package ui renders netstack command output with lipgloss styles.
package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors
var (
	Primary   = lipgloss.Color("#33A8FF")
	Muted     = lipgloss.Color("#6B7280")
	Success   = lipgloss.Color("#10B981")
	Warning   = lipgloss.Color("#F59E0B")
	Error     = lipgloss.Color("#EF4444")
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// StatusColor maps resource and declaration states to theme colors.
func StatusColor(status string) color.Color {
	switch strings.ToLower(status) {
	case "present", "running", "active", "available", "attached", "ok":
		return Success
	case "missing", "terminated", "failed", "blackhole", "deleted", "detached", "error":
		return Error
	case "pending", "stopping", "stopped", "deleting", "attaching", "detaching":
		return Warning
	default:
		return Muted
	}
}

// RenderStatus renders a status string with a colored bullet.
func RenderStatus(status string) string {
	c := StatusColor(status)
	bullet := lipgloss.NewStyle().Foreground(c).Render("●")
	return bullet + " " + status
}

// OrDash returns s, or "—" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
