// Package style renders the prefs CLI's terminal output.
package style

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/andybarron/preferences-go/pkg/errors"
)

// Styles for the CLI's output elements
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)
	KeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	MutedStyle = lipgloss.NewStyle().Faint(true)
)

var colorEnabled = detectColor()

// detectColor decides whether styled output makes sense: a real terminal,
// no NO_COLOR, and a color-capable profile
func detectColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// ColorEnabled reports whether output is styled
func ColorEnabled() bool {
	return colorEnabled
}

// DisableColor forces plain output (the --no-color flag)
func DisableColor() {
	colorEnabled = false
	pterm.DisableColor()
}

// Title renders a section heading
func Title(s string) string {
	if !colorEnabled {
		return s
	}
	return TitleStyle.Render(s)
}

// Key renders a preference field name
func Key(s string) string {
	if !colorEnabled {
		return s
	}
	return KeyStyle.Render(s)
}

// Muted renders secondary detail like file paths
func Muted(s string) string {
	if !colorEnabled {
		return s
	}
	return MutedStyle.Render(s)
}

// RenderFields renders a preference map as a two-column table, fields
// sorted by name
func RenderFields(fields map[string]string) string {
	if len(fields) == 0 {
		return Muted("No preferences found")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	data := pterm.TableData{{"FIELD", "VALUE"}}
	for _, name := range names {
		data = append(data, []string{name, fields[name]})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Fall back to plain columns
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%s\t%s\n", name, fields[name])
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return rendered
}

// RenderKeyList renders saved key names, one per line
func RenderKeyList(keys []string) string {
	if len(keys) == 0 {
		return Muted("No saved preferences")
	}

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(Key(key) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error message, surfacing the code of coded errors
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}
