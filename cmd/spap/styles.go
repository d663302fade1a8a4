package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

func colorize(color string, s string) string {
	return color + s + colorReset
}

// banner frames a title the way the menus print their headers.
func banner(title string) string {
	width := len(title) + 4
	border := strings.Repeat("=", width)
	pad := strings.Repeat(" ", (width-len(title))/2)
	return border + "\n" + pad + title + "\n" + border + "\n"
}
