package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorInfo    = lipgloss.Color("#3B82F6")

	styleBold    = lipgloss.NewStyle().Bold(true)
	styleSuccess = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleInfo    = lipgloss.NewStyle().Foreground(colorInfo)
)

const banner = `
 ___      ___  ____    ___       ____     ___  _____ ______ 
|   \    /  _]|    \  /   \     |    \   /  _]/ ___/|      T
|    \  /  [_ |  _  YY     Y    |  D  ) /  [_(   \_ |      |
|  D  YY    _]|  |  ||  O  |    |    / Y    _]\__  Tl_j  l_j
|     ||   [_ |  |  ||     |    |    \ |   [_ /  \ |  |  |  
|     ||     T|  |  |l     !    |  .  Y|     T\    |  |  |  
l_____jl_____jl__j__j \___/     l__j\_jl_____j \___j  l__j  
`

// SetOutput redirects console output, mainly for tests
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

// Banner prints the ASCII art header and greeting
func Banner() {
	fmt.Fprint(stdout, banner)
	fmt.Fprintln(stdout, styleBold.Render("Hi, Thanks for using Deno REST. Please answer following prompts to get started."))
}

// Bold prints a bold line
func Bold(message string) {
	fmt.Fprintln(stdout, styleBold.Render(message))
}

// Success prints a success message with checkmark
func Success(message string) {
	fmt.Fprintln(stdout, styleSuccess.Render("✓ "+message))
}

// Error prints an error message
func Error(message string) {
	fmt.Fprintln(stderr, styleError.Render("✗ "+message))
}

// Info prints an info message
func Info(message string) {
	fmt.Fprintln(stdout, styleInfo.Render("ℹ "+message))
}

// Warning prints a warning message
func Warning(message string) {
	fmt.Fprintln(stdout, styleWarning.Render("⚠ "+message))
}

// Danger renders text in the error color without printing it
func Danger(text string) string {
	return styleError.Render(text)
}
