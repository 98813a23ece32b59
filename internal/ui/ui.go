// Package ui prints leveled, colored console messages for the supervisor.
// Informational output goes to Out, errors to Err; both are package-level
// writers so tests can capture or silence them.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	infoLabel    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Render("INFO:")
	successLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("SUCCESS:")
	warningLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("WARNING:")
	errorLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("ERROR:")
)

// Infof prints an informational message to Out.
func Infof(format string, args ...interface{}) {
	fmt.Fprintf(Out, "%s %s\n", infoLabel, fmt.Sprintf(format, args...))
}

// Successf prints a success message to Out.
func Successf(format string, args ...interface{}) {
	fmt.Fprintf(Out, "%s %s\n", successLabel, fmt.Sprintf(format, args...))
}

// Warningf prints a warning message to Out.
func Warningf(format string, args ...interface{}) {
	fmt.Fprintf(Out, "%s %s\n", warningLabel, fmt.Sprintf(format, args...))
}

// Errorf prints an error message to Err.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(Err, "%s %s\n", errorLabel, fmt.Sprintf(format, args...))
}

// JSON prints raw JSON to Out, re-indented when possible.
func JSON(raw []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		fmt.Fprintln(Out, string(raw))
		return
	}
	fmt.Fprintln(Out, buf.String())
}
