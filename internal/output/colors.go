package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	addedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	modifiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	deletedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	branchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	shaStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled() {
		return text
	}
	return style.Render(text)
}

// Added styles a path that only exists locally
func Added(text string) string { return render(addedStyle, text) }

// Modified styles a path whose content differs from the remote
func Modified(text string) string { return render(modifiedStyle, text) }

// Deleted styles a path that only exists on the remote
func Deleted(text string) string { return render(deletedStyle, text) }

// Unchanged styles a path identical on both sides
func Unchanged(text string) string { return render(unchangedStyle, text) }

// Branch styles a branch name
func Branch(text string) string { return render(branchStyle, text) }

// SHA styles a commit id
func SHA(text string) string { return render(shaStyle, text) }
