package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mazer/pkg/layout"
)

// =============================================================================
// Colors & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings such as the reveal player's title bar.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines for a command.
type printer struct {
	w io.Writer
}

func (c *CLI) printer() printer {
	return printer{w: c.out()}
}

func (p printer) status(icon lipgloss.Style, mark, format string, args []any) {
	fmt.Fprintln(p.w, icon.Render(mark)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) {
	p.status(styleIconSuccess, iconSuccess, format, args)
}

func (p printer) errorf(format string, args ...any) {
	p.status(styleIconError, iconError, format, args)
}

func (p printer) info(format string, args ...any) {
	p.status(styleIconInfo, iconInfo, format, args)
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, StyleWarning.Render(iconWarning+" "+fmt.Sprintf(format, args...)))
}

// detail prints an indented, dimmed line under the previous status.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, StyleTitle.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// metrics prints one key/value line per populated field of m.
func (p printer) metrics(m layout.Metrics) {
	p.keyValue("Topology", m.Topology.String())
	p.keyValue("Grid", fmt.Sprintf("%d x %d", m.Columns, m.Rows))
	p.keyValue("Cell size", fmt.Sprintf("%.3f", m.CellSize))
	if m.SquareSize > 0 {
		p.keyValue("Square", fmt.Sprintf("%.3f", m.SquareSize))
	}
	if m.Padding > 0 {
		p.keyValue("Padding", fmt.Sprintf("%.1f", m.Padding))
	}
	p.keyValue("Size", fmt.Sprintf("%.1f x %.1f @%gx", m.Width, m.Height, m.Scale))
}

// stats prints a one-line summary: cells, grid, cell size, cache status.
func (p printer) stats(cellCount int, m layout.Metrics, cached bool) {
	var parts []string
	if cellCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d cells", cellCount)))
	}
	if m.Columns > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%dx%d %s", m.Columns, m.Rows, m.Topology)))
	}
	if m.CellSize > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%.4gpt cells", m.CellSize)))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
