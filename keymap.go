package main

import (
	"fmt"
	"strings"
	"unicode"

	evdev "github.com/holoplot/go-evdev"
)

// Key is the symbol emitted for one matrix cell: a label for text output
// and the evdev key code sent to the host keyboard.
type Key struct {
	Label string
	Code  evdev.EvCode
}

// Keymap maps matrix cells to keys. It is built once and never modified.
type Keymap struct {
	rows, cols int
	keys       []Key
}

// NewKeymap builds a keymap from a grid of labels, resolving each label to
// a key code through codes (label -> evdev name such as "KEY_1").
func NewKeymap(labels [][]string, codes map[string]string) (*Keymap, error) {
	if len(labels) == 0 || len(labels[0]) == 0 {
		return nil, fmt.Errorf("keymap is empty")
	}
	km := &Keymap{rows: len(labels), cols: len(labels[0])}
	seen := make(map[string]bool)
	for r, row := range labels {
		if len(row) != km.cols {
			return nil, fmt.Errorf("keymap row %d has %d keys, want %d", r, len(row), km.cols)
		}
		for c, label := range row {
			if err := checkLabel(label); err != nil {
				return nil, fmt.Errorf("keymap cell %d,%d: %w", r, c, err)
			}
			if seen[label] {
				return nil, fmt.Errorf("keymap cell %d,%d: duplicate label %q", r, c, label)
			}
			seen[label] = true
			code, err := ParseKeyCode(codes[label])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", label, err)
			}
			km.keys = append(km.keys, Key{Label: label, Code: code})
		}
	}
	return km, nil
}

// checkLabel rejects labels that cannot be written unambiguously in a
// scan trace.
func checkLabel(label string) error {
	switch {
	case label == "":
		return fmt.Errorf("no label")
	case strings.ContainsFunc(label, unicode.IsSpace):
		return fmt.Errorf("label %q contains whitespace", label)
	case label == traceIdle, strings.HasPrefix(label, traceComment):
		return fmt.Errorf("label %q is reserved", label)
	}
	return nil
}

// ParseKeyCode resolves an evdev key name. The KEY_ prefix is optional
// and case is ignored.
func ParseKeyCode(name string) (evdev.EvCode, error) {
	if name == "" {
		return 0, fmt.Errorf("no key code")
	}
	n := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(n, "KEY_") {
		n = "KEY_" + n
	}
	code, ok := evdev.KEYFromString[n]
	if !ok {
		return 0, fmt.Errorf("unknown key code %q", name)
	}
	return code, nil
}

// Rows returns the number of matrix rows.
func (km *Keymap) Rows() int { return km.rows }

// Columns returns the number of matrix columns.
func (km *Keymap) Columns() int { return km.cols }

// At returns the key at row, col.
func (km *Keymap) At(row, col int) Key {
	return km.keys[row*km.cols+col]
}

// Find returns the cell holding the key with the given label.
func (km *Keymap) Find(label string) (row, col int, ok bool) {
	for i, k := range km.keys {
		if k.Label == label {
			return i / km.cols, i % km.cols, true
		}
	}
	return 0, 0, false
}
