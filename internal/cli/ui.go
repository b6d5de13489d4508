package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey       = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"

	separator = " · "
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Drawings
// =============================================================================

// printArtifact prints one written output file with its size.
func printArtifact(path string, size int) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path) + styleDim.Render(separator+formatBytes(size)))
}

// printStats prints the summary line of a render.
func printStats(stats pipeline.Stats, seed uint64, cached bool) {
	fmt.Println(statsLine(stats, seed, cached))
}

// statsLine formats render statistics on a single line. Counts the runner
// did not measure (zero, as on a cache hit) are left out.
func statsLine(stats pipeline.Stats, seed uint64, cached bool) string {
	var parts []string
	if stats.Figures > 0 {
		parts = append(parts, plural(stats.Figures, "figure"))
	}
	if stats.Commands > 0 {
		parts = append(parts, plural(stats.Commands, "draw command"))
	}
	parts = append(parts, fmt.Sprintf("seed %d", seed))
	if total := totalBytes(stats.Bytes); total > 0 {
		parts = append(parts, formatBytes(total))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	return "  " + styleDim.Render(strings.Join(parts, separator)) + styleDim.Render(separator) + statusStyle.Render(status)
}

func totalBytes(sizes map[string]int) int {
	total := 0
	for _, n := range sizes {
		total += n
	}
	return total
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

// formatViewport renders the logical bounds as "[xMin, xMax] × [yMin, yMax]".
func formatViewport(v geom.Viewport) string {
	return fmt.Sprintf("[%g, %g] × [%g, %g]", v.XMin, v.XMax, v.YMin, v.YMax)
}

// formatKinds lists kind names, sorted, for one-line display.
func formatKinds(names []string) string {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return strings.Join(sorted, ", ")
}
