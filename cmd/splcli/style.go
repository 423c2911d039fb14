package main

import (
	"github.com/charmbracelet/lipgloss"

	"splqlineage/internal/lineage"
)

var (
	headingStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	fieldNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	severityFatalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	severityWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	severityInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	riskyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func severityStyle(s lineage.Severity) lipgloss.Style {
	switch s {
	case lineage.SeverityFatal:
		return severityFatalStyle
	case lineage.SeverityWarning:
		return severityWarningStyle
	default:
		return severityInfoStyle
	}
}
