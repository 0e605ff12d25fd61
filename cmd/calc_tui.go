// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

type calcResult struct {
	input  string
	framed string
	pulses string
	err    error
}

type calcModel struct {
	input      textinput.Model
	unitWidth  int
	history    []calcResult
	maxHistory int
	width      int
	height     int
	quitting   bool
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialCalcModel(unitWidth int) calcModel {
	ti := textinput.New()
	ti.Placeholder = "24 62 6A"
	ti.Prompt = calcPrompt
	ti.CharLimit = 3 * ninex.MaxPayloadSize
	ti.Width = 60
	ti.Focus()

	return calcModel{
		input:      ti,
		unitWidth:  unitWidth,
		history:    make([]calcResult, 0),
		maxHistory: 50,
		width:      80,
		height:     24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m calcModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == calcExit {
				m.quitting = true
				return m, tea.Quit
			}
			if line != "" {
				m.addResult(m.evaluate(line))
			}
			m.input.Reset()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m calcModel) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	s.WriteString(titleStyle.Render("9X CALCULATOR"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| unit %dus | Enter=encode 0/Esc=quit", m.unitWidth)))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	var h strings.Builder
	h.WriteString(labelStyle.Render("HISTORY"))
	h.WriteString("\n")
	if len(m.history) == 0 {
		h.WriteString(headerStyle.Render("  (nothing encoded yet)"))
	}

	// Newest first, clipped to the visible height
	visible := (m.height - 8) / 3
	if visible < 1 {
		visible = 1
	}
	for i := len(m.history) - 1; i >= 0 && visible > 0; i-- {
		r := m.history[i]
		visible--
		h.WriteString(headerStyle.Render("> " + r.input))
		h.WriteString("\n")
		if r.err != nil {
			h.WriteString(errorStyle.Render("  " + calcBadInput + ": " + r.err.Error()))
			h.WriteString("\n\n")
			continue
		}
		h.WriteString("  " + valueStyle.Render(r.framed))
		h.WriteString("\n")
		h.WriteString("  " + r.pulses)
		h.WriteString("\n")
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(strings.TrimRight(h.String(), "\n")))
	return s.String()
}

//////////////////////////////////////////////////////////////
// Helpers
//////////////////////////////////////////////////////////////

func (m calcModel) evaluate(line string) calcResult {
	framed, pulses, err := calculate(line, m.unitWidth)
	if err != nil {
		return calcResult{input: line, err: err}
	}
	return calcResult{
		input:  line,
		framed: ninex.FormatCommand(framed),
		pulses: ninex.FormatPulses(pulses),
	}
}

func (m *calcModel) addResult(r calcResult) {
	m.history = append(m.history, r)
	if len(m.history) > m.maxHistory {
		m.history = m.history[len(m.history)-m.maxHistory:]
	}
}
