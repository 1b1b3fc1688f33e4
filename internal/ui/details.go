package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// DetailBuilder builds key-value blocks such as the account header printed before
// apply and status.
type DetailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
}

// NewDetailBuilder creates a builder with a fixed-width label column.
func NewDetailBuilder(labelWidth int) *DetailBuilder {
	return &DetailBuilder{
		labelStyle:   LabelStyle.Width(labelWidth),
		sectionStyle: LabelStyle,
	}
}

// Row writes a labeled key-value row. Empty values render as a dash.
func (d *DetailBuilder) Row(label, value string) {
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), OrDash(value))
}

// Section writes a section heading like "── title ──────...".
func (d *DetailBuilder) Section(title string) {
	pad := max(40-len(title), 4)
	heading := fmt.Sprintf("  ── %s %s", title, strings.Repeat("─", pad))
	d.b.WriteString(d.sectionStyle.Render(heading) + "\n")
}

func (d *DetailBuilder) String() string {
	return d.b.String()
}
