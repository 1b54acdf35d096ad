package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")  // teal
	colorOK      = lipgloss.Color("35")  // green
	colorFail    = lipgloss.Color("167") // soft red
	colorWarn    = lipgloss.Color("220") // amber
	colorCommand = lipgloss.Color("75")  // light blue
	colorValue   = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

var (
	styleFaint   = lipgloss.NewStyle().Foreground(colorFaint)
	styleValue   = lipgloss.NewStyle().Foreground(colorValue)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleIconError   = lipgloss.NewStyle().Foreground(colorFail)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

// status prints a message prefixed with a styled icon.
func status(icon string, style lipgloss.Style, format string, args ...any) {
	fmt.Printf("%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, styleIconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, styleIconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, styleIconInfo, format, args...) }

func printDetail(format string, args ...any) {
	fmt.Printf("  %s\n", styleFaint.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Printf("  %s %s\n", styleFaint.Render(iconArrow), styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Printf("%s %s\n", styleKey.Render(key), styleValue.Render(value))
}

// statsLine summarizes a run: node and cell counts, then whether the
// result came from the cache.
func statsLine(nodes, cells int, cached bool) string {
	parts := make([]string, 0, 3)
	if nodes > 0 {
		parts = append(parts, styleFaint.Render(fmt.Sprintf("%d nodes", nodes)))
	}
	if cells > 0 {
		parts = append(parts, styleFaint.Render(fmt.Sprintf("%d cells", cells)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	return "  " + strings.Join(parts, styleFaint.Render(" · "))
}

func printStats(nodes, cells int, cached bool) { fmt.Println(statsLine(nodes, cells, cached)) }

func printNextStep(description, cmd string) {
	fmt.Printf("%s %s\n", styleFaint.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
