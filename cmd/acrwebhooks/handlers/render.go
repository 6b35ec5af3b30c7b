package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/acrwebhooks/internal/report"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderRunSummary produces a lipgloss-styled summary of a run.
func renderRunSummary(r *report.Report) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  acrwebhooks run %s", r.RunID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")

	b.WriteString("\n")
	renderSection(&b, "Resources")
	fmt.Fprintf(&b, "    %-16s %s\n", "Resource group:", valueOrDash(r.ResourceGroup))
	fmt.Fprintf(&b, "    %-16s %s\n", "Location:", valueOrDash(r.Location))
	fmt.Fprintf(&b, "    %-16s %s\n", "Registry:", valueOrDash(r.LoginServer))
	for _, wh := range r.Webhooks {
		fmt.Fprintf(&b, "    %-16s %s [%s] %s\n", "Webhook:", wh.Name, strings.Join(wh.Actions, ","), wh.Status)
	}
	if r.Retained {
		b.WriteString(dimStyle.Render("    Resource group retained; delete it with: acrwebhooks cleanup --resource-group " + r.ResourceGroup))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	renderSection(&b, "Image")
	fmt.Fprintf(&b, "    %-16s %s\n", "Engine:", valueOrDash(r.EngineSource))
	fmt.Fprintf(&b, "    %-16s %s\n", "Pushed:", valueOrDash(r.Image))
	fmt.Fprintf(&b, "    %-16s %s\n", "Digest:", valueOrDash(r.Digest))

	b.WriteString("\n")
	renderSection(&b, "Webhook events")
	fmt.Fprintf(&b, "    %-16s %d\n", "Before push:", len(r.EventsBefore))
	fmt.Fprintf(&b, "    %-16s %d\n", "After push:", len(r.EventsAfter))

	b.WriteString("\n")
	renderSection(&b, "Phases")
	for _, p := range r.Phases {
		status := okStyle.Render("✓")
		if p.Error != "" {
			status = failStyle.Render("✗")
		}
		d := time.Duration(p.DurationMS) * time.Millisecond
		fmt.Fprintf(&b, "    %s %-24s %8s\n", status, p.Name, d.Round(time.Millisecond))
	}

	b.WriteString("\n")
	if r.Succeeded() {
		b.WriteString(okStyle.Render("  Run succeeded"))
	} else {
		b.WriteString(failStyle.Render("  Run failed: " + r.Error))
	}
	b.WriteString("\n")

	return b.String()
}

func renderSection(b *strings.Builder, title string) {
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
