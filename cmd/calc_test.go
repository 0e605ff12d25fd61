// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	framed246261   = "92 24 62 6A 3C"
	pulses246261   = "{834, 417, 834, 417, 834, 834, 1251, 417, 834, 417, 834, 417, 834, 417, 1251, 834, 417, 417, 834, 417, 417, 417, 417, 834, 417, 417, 1251, 1668, 834, 417}"
	framed10       = "90 10 5E"
	pulses10       = "{2085, 417, 834, 834, 2085, 417, 1251, 417, 834, 1668, 417, 417, 417, 417}"
	defaultWidthUs = 417
)

// ============================================================================
// Prompt Loop Tests
// ============================================================================

func TestRunCalculator(t *testing.T) {
	in := strings.NewReader("24 62 6A\n0x10\n0\n")
	var out bytes.Buffer

	require.NoError(t, RunCalculator(in, &out, defaultWidthUs))

	want := calcBanner + "\n" +
		calcPrompt + framed246261 + "\n" + pulses246261 + "\n" +
		calcPrompt + framed10 + "\n" + pulses10 + "\n" +
		calcPrompt
	assert.Equal(t, want, out.String())
}

func TestRunCalculatorBadInputContinues(t *testing.T) {
	inputs := []string{"zz", "100", "", "-1", "24 62 6A"}
	in := strings.NewReader(strings.Join(inputs, "\n") + "\n0\n")
	var out bytes.Buffer

	require.NoError(t, RunCalculator(in, &out, defaultWidthUs))

	assert.Equal(t, 4, strings.Count(out.String(), calcBadInput+"\n"))
	assert.Contains(t, out.String(), framed246261+"\n")
}

func TestRunCalculatorEndOfInput(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunCalculator(strings.NewReader("24 62 6A"), &out, defaultWidthUs))
	assert.True(t, strings.HasSuffix(out.String(), calcPrompt+"\n"))
	assert.Contains(t, out.String(), framed246261)
}

func TestRunCalculatorOversizedPayload(t *testing.T) {
	payload := strings.TrimSpace(strings.Repeat("AA ", 113))
	var out bytes.Buffer
	require.NoError(t, RunCalculator(strings.NewReader(payload+"\n0\n"), &out, defaultWidthUs))
	assert.Contains(t, out.String(), calcBadInput)
}

func TestCalculateRejectsBadWidth(t *testing.T) {
	_, _, err := calculate("24", 0)
	assert.Error(t, err)
}

// ============================================================================
// Encode Command Tests
// ============================================================================

func TestEncodeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"encode", "24", "62", "6A"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, framed246261+"\n"+pulses246261+"\n", out.String())
}

// ============================================================================
// TUI Model Tests
// ============================================================================

func typeInto(m calcModel, s string) calcModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(calcModel)
	}
	return m
}

func pressEnter(m calcModel) (calcModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(calcModel), cmd
}

func TestCalcModelEncodes(t *testing.T) {
	m := typeInto(initialCalcModel(defaultWidthUs), "24 62 6A")
	m, _ = pressEnter(m)

	require.Len(t, m.history, 1)
	assert.Equal(t, framed246261, m.history[0].framed)
	assert.Equal(t, pulses246261, m.history[0].pulses)
	assert.NoError(t, m.history[0].err)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), framed246261)
}

func TestCalcModelBadInput(t *testing.T) {
	m := typeInto(initialCalcModel(defaultWidthUs), "xyz")
	m, _ = pressEnter(m)

	require.Len(t, m.history, 1)
	assert.Error(t, m.history[0].err)
	assert.Contains(t, m.View(), calcBadInput)
}

func TestCalcModelQuitsOnZero(t *testing.T) {
	m := typeInto(initialCalcModel(defaultWidthUs), "0")
	m, cmd := pressEnter(m)

	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCalcModelHistoryBounded(t *testing.T) {
	m := initialCalcModel(defaultWidthUs)
	for i := 0; i < m.maxHistory+5; i++ {
		m.addResult(calcResult{input: "10"})
	}
	assert.Len(t, m.history, m.maxHistory)
}
