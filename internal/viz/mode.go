// Package viz turns an analyzed table into tables and charts.
package viz

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeTable
	ModePie
	ModeHistogram
)

// Modes in menu order.
var Modes = []Mode{ModeNone, ModeTable, ModePie, ModeHistogram}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeTable:
		return "Table"
	case ModePie:
		return "Pie"
	case ModeHistogram:
		return "Histogram"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a mode name in any case. Empty means None.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "table":
		return ModeTable, nil
	case "pie":
		return ModePie, nil
	case "histogram":
		return ModeHistogram, nil
	}
	return ModeNone, fmt.Errorf("unknown visualization %q", s)
}
