// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package show

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/Thermoquad/gwts/pkg/ninex"
)

// Policy decides what happens when two commands land on the same output time
type Policy int

const (
	// PolicyAppend keeps every command, in arrival order
	PolicyAppend Policy = iota
	// PolicyOverwrite keeps only the most recent command
	PolicyOverwrite
)

// String returns the policy name
func (p Policy) String() string {
	switch p {
	case PolicyAppend:
		return "append"
	case PolicyOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "append" or "overwrite"
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "append":
		return PolicyAppend, nil
	case "overwrite":
		return PolicyOverwrite, nil
	default:
		return PolicyAppend, fmt.Errorf("unknown collision policy %q (use append or overwrite)", s)
	}
}

// Row is one output time and the commands sent at it
type Row struct {
	Time     uint32
	Commands []ninex.Command
}

// String formats the row as a show table line: "000029CC: 93 FF 24 62 6A C8"
func (r Row) String() string {
	parts := make([]string, len(r.Commands))
	for i, cmd := range r.Commands {
		parts[i] = cmd.String()
	}
	return ninex.FormatTime(r.Time) + ": " + strings.Join(parts, " ")
}

// Table maps output times to framed commands
type Table struct {
	policy      Policy
	entries     map[uint32][]ninex.Command
	collisions  int
	overwritten int
}

// NewTable creates an empty table using the given collision policy
func NewTable(policy Policy) *Table {
	return &Table{
		policy:  policy,
		entries: make(map[uint32][]ninex.Command),
	}
}

// Merge builds a table from expanded entries in order
func Merge(entries []ExpandedEntry, policy Policy) *Table {
	t := NewTable(policy)
	t.AddAll(entries)
	return t
}

// Policy returns the table's collision policy
func (t *Table) Policy() Policy {
	return t.policy
}

// Add inserts one expanded entry
func (t *Table) Add(e ExpandedEntry) {
	t.Put(e.Time, e.Command)
}

// AddAll inserts expanded entries in order
func (t *Table) AddAll(entries []ExpandedEntry) {
	for _, e := range entries {
		t.Add(e)
	}
}

// Put inserts a command at an output time, resolving collisions per policy
func (t *Table) Put(time uint32, cmd ninex.Command) {
	existing, ok := t.entries[time]
	if !ok {
		t.entries[time] = []ninex.Command{cmd}
		return
	}

	t.collisions++
	switch t.policy {
	case PolicyOverwrite:
		t.overwritten += len(existing)
		t.entries[time] = []ninex.Command{cmd}
	default:
		t.entries[time] = append(existing, cmd)
	}
}

// Len returns the number of distinct output times
func (t *Table) Len() int {
	return len(t.entries)
}

// Collisions returns how many inserts landed on an occupied time
func (t *Table) Collisions() int {
	return t.collisions
}

// Overwritten returns how many commands were replaced under PolicyOverwrite
func (t *Table) Overwritten() int {
	return t.overwritten
}

// Get returns a copy of the commands at an output time
func (t *Table) Get(time uint32) []ninex.Command {
	cmds, ok := t.entries[time]
	if !ok {
		return nil
	}
	return slices.Clone(cmds)
}

// Times returns the output times in ascending order
func (t *Table) Times() []uint32 {
	times := maps.Keys(t.entries)
	slices.Sort(times)
	return times
}

// Rows returns a snapshot of the table sorted by ascending output time
func (t *Table) Rows() []Row {
	times := t.Times()
	rows := make([]Row, len(times))
	for i, time := range times {
		rows[i] = Row{Time: time, Commands: slices.Clone(t.entries[time])}
	}
	return rows
}

// Equal reports whether both tables hold the same commands at the same times
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for time, cmds := range t.entries {
		otherCmds, ok := other.entries[time]
		if !ok || len(cmds) != len(otherCmds) {
			return false
		}
		for i := range cmds {
			if !cmds[i].Equal(otherCmds[i]) {
				return false
			}
		}
	}
	return true
}

// Build expands every scheduled entry and merges the results
func Build(entries []ScheduledEntry, policy Policy) (*Table, *Statistics, error) {
	stats := NewStatistics()
	table := NewTable(policy)

	for _, entry := range entries {
		expanded, err := Expand(entry)
		if err != nil {
			return nil, nil, entryError(entry, err)
		}
		stats.Update(entry, expanded)
		table.AddAll(expanded)
	}

	stats.Finish(table)
	return table, stats, nil
}
