package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphwalk/pkg/actions"
	"github.com/matzehuels/graphwalk/pkg/coloring"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
	colorBlack  = lipgloss.Color("16")
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Reports
// =============================================================================

// reportLines styles a report: the "=== ... ===" header as a title, notices
// as warnings.
func reportLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "==="):
			out[i] = StyleTitle.Render(line)
		case isNotice(line):
			out[i] = StyleWarning.Render(line)
		default:
			out[i] = line
		}
	}
	return out
}

func isNotice(line string) bool {
	switch line {
	case actions.NoticeAnimationBusy, actions.NoticeColoringBlocked, actions.NoticeEmptyGraph:
		return true
	}
	return false
}

func printReport(w io.Writer, rep actions.Report) {
	if rep == nil {
		return
	}
	for _, line := range reportLines(rep.Lines()) {
		fmt.Fprintln(w, line)
	}
}

// =============================================================================
// Node Swatches
// =============================================================================

// cssHex maps the named colors used by the default palette to hex values
// for the terminal.
var cssHex = map[render.Color]string{
	"white": "#ffffff", "lightblue": "#add8e6", "red": "#ff0000",
	"gold": "#ffd700", "lightgreen": "#90ee90",
	"aliceblue": "#f0f8ff", "antiquewhite": "#faebd7", "aqua": "#00ffff",
	"aquamarine": "#7fffd4", "azure": "#f0ffff", "beige": "#f5f5dc",
	"bisque": "#ffe4c4", "black": "#000000", "blanchedalmond": "#ffebcd",
	"blue": "#0000ff", "blueviolet": "#8a2be2", "brown": "#a52a2a",
	"burlywood": "#deb887", "cadetblue": "#5f9ea0", "chartreuse": "#7fff00",
	"chocolate": "#d2691e", "coral": "#ff7f50", "cornflowerblue": "#6495ed",
	"cornsilk": "#fff8dc", "crimson": "#dc143c", "cyan": "#00ffff",
	"darkblue": "#00008b", "darkcyan": "#008b8b", "darkgoldenrod": "#b8860b",
	"darkgray": "#a9a9a9", "darkgreen": "#006400", "darkkhaki": "#bdb76b",
	"darkmagenta": "#8b008b", "darkolivegreen": "#556b2f", "darkorange": "#ff8c00",
}

// termColor converts a render color to a terminal color. Unknown names
// render gray.
func termColor(c render.Color) lipgloss.Color {
	if strings.HasPrefix(string(c), "#") {
		return lipgloss.Color(c)
	}
	if hex, ok := cssHex[c]; ok {
		return lipgloss.Color(hex)
	}
	return colorGray
}

// swatch renders label on a background of color c.
func swatch(c render.Color, label string) string {
	return lipgloss.NewStyle().
		Background(termColor(c)).
		Foreground(colorBlack).
		Render(label)
}

// swatchesPerRow wraps the node strip of larger graphs.
const swatchesPerRow = 17

// frameStrip renders every node of f as a colored cell labeled with its id.
func frameStrip(f render.Frame) string {
	var b strings.Builder
	for n, c := range f.Colors {
		if n > 0 && n%swatchesPerRow == 0 {
			b.WriteString("\n")
		}
		b.WriteString(swatch(c, fmt.Sprintf("%3d ", n)))
	}
	return b.String()
}

// printFrame prints the frame title followed by its node strip.
func printFrame(w io.Writer, f render.Frame) {
	title := StyleValue.Render(f.Title)
	if f.Final {
		title = StyleSuccess.Render(f.Title)
	}
	fmt.Fprintf(w, "%s %s\n%s\n", StyleDim.Render(fmt.Sprintf("[%03d]", f.Seq)), title, frameStrip(f))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// coloringTable lists each color class with its members.
func coloringTable(a coloring.Assignment, p render.Palette) string {
	t := newTable("Color", "Swatch", "Nodes")
	for class, members := range a.Classes() {
		parts := make([]string, len(members))
		for i, n := range members {
			parts[i] = strconv.Itoa(n)
		}
		t.Row(strconv.Itoa(class), swatch(p.ClassColor(class), "    "), strings.Join(parts, " "))
	}
	return t.Render()
}

// degreeTable lists every node with its degree and neighbors.
func degreeTable(g *graph.Graph) string {
	t := newTable("Node", "Degree", "Neighbors")
	for _, n := range g.Nodes() {
		nbrs := g.Neighbors(n)
		parts := make([]string, len(nbrs))
		for i, v := range nbrs {
			parts[i] = strconv.Itoa(v)
		}
		t.Row(strconv.Itoa(n), strconv.Itoa(len(nbrs)), strings.Join(parts, " "))
	}
	return t.Render()
}
