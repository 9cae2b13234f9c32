package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/scale-sheets/internal/generate"
	"github.com/handiism/scale-sheets/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8B500"))
)

var rule = dimStyle.Render(strings.Repeat("━", 40))

// renderEvent formats a progress event, or returns "" when it is filtered.
func renderEvent(event generate.ProgressEvent, verbose bool) string {
	switch event.Level {
	case generate.LevelError:
		return errorStyle.Render("✗ " + event.Message)
	case generate.LevelWarning:
		return warningStyle.Render("! " + event.Message)
	case generate.LevelSuccess:
		return successStyle.Render("✓ " + event.Message)
	case generate.LevelInfo:
		return infoStyle.Render("› " + event.Message)
	default:
		if !verbose {
			return ""
		}
		return dimStyle.Render("  " + event.Message)
	}
}

// FormatError renders a command error with its kind, for the binary's exit
// path.
func FormatError(err error) string {
	label := "Error"
	switch model.KindOf(err) {
	case model.KindValidation:
		label = "Invalid input"
	case model.KindExternalTool:
		label = "External tool failed"
	case model.KindFileSystem:
		label = "File system error"
	}
	return fmt.Sprintf("%s %v", errorStyle.Render(label+":"), err)
}
