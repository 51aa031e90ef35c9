// SPDX-License-Identifier: MIT

package main

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
