// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the ScriptForge CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// ScriptForge color palette - deep ocean teals and arctic waters
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // Bright teal - highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // Primary teal - main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // Deep teal - borders, accents
	ColorSlate       = lipgloss.Color("#2C4A54") // Slate - muted text, borders

	// Semantic colors
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorTealPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Title prints a styled title
func Title(text string) {
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	fmt.Printf("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Warning prints a warning message
func Warning(text string) {
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints an error message to stderr
func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
}

// Info prints an informational message
func Info(text string) {
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints muted/secondary text
func Muted(text string) {
	fmt.Println(Styles.Muted.Render(text))
}

// Box prints text in a rounded box
func Box(title, content string) {
	boxStyle := Styles.Box.Width(60)
	titleLine := Styles.Title.Render(title)
	fmt.Println(boxStyle.Render(titleLine + "\n" + content))
}

// ScriptStatus prints a generated script with its review outcome
func ScriptStatus(name string, status Icon, detail string) {
	if detail != "" {
		fmt.Printf("%s %s %s\n", status.Render(), name,
			Styles.Muted.Render("("+detail+")"))
		return
	}
	fmt.Printf("%s %s\n", status.Render(), name)
}

// Summary prints a run summary line with counts
func Summary(approved, forced, failed, total int) {
	fmt.Printf("\n%s %s  %s %s  %s %s  %s %s\n",
		Styles.Success.Render(fmt.Sprintf("%d", approved)), Styles.Muted.Render("approved"),
		Styles.Warning.Render(fmt.Sprintf("%d", forced)), Styles.Muted.Render("forced"),
		Styles.Error.Render(fmt.Sprintf("%d", failed)), Styles.Muted.Render("failed"),
		Styles.Bold.Render(fmt.Sprintf("%d", total)), Styles.Muted.Render("total"),
	)
}

// ProgressBar renders a simple progress bar
func ProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}
	pct := float64(current) / float64(total)
	filled := int(pct * float64(width))
	empty := width - filled

	bar := Styles.Success.Render(repeatChar('█', filled)) +
		Styles.Muted.Render(repeatChar('░', empty))

	return fmt.Sprintf("%s %3.0f%%", bar, pct*100)
}

func repeatChar(c rune, n int) string {
	if n <= 0 {
		return ""
	}
	result := make([]rune, n)
	for i := range result {
		result[i] = c
	}
	return string(result)
}
