package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"periph.io/x/conn/v3/gpio"
)

// Trace syntax markers. Keymap labels may not collide with them.
const (
	traceComment = "//"
	traceIdle    = "-"
)

// ParseTrace reads a scan trace: one line per scan cycle listing the
// labels of the keys held down during that cycle, separated by spaces.
// A line containing only "-" is a cycle with no keys down. Blank lines and
// lines starting with // are ignored.
func ParseTrace(r io.Reader, km *Keymap) ([][]bool, error) {
	var cycles [][]bool
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, traceComment) {
			continue
		}
		held := make([]bool, km.Rows()*km.Columns())
		if line != traceIdle {
			for _, label := range strings.Fields(line) {
				row, col, ok := km.Find(label)
				if !ok {
					return nil, fmt.Errorf("line %d: unknown key %q", lineNo, label)
				}
				held[row*km.Columns()+col] = true
			}
		}
		cycles = append(cycles, held)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return cycles, nil
}

// traceLines plays back a parsed trace as matrix lines. A row reads low
// only while the column of a held key is asserted.
type traceLines struct {
	rows, cols int
	cycles     [][]bool
	cycle      int
	asserted   int
}

func newTraceLines(rows, cols int, cycles [][]bool) *traceLines {
	return &traceLines{rows: rows, cols: cols, cycles: cycles, asserted: -1}
}

func (t *traceLines) Rows() int    { return t.rows }
func (t *traceLines) Columns() int { return t.cols }

// Next moves playback to the following cycle and reports whether one
// remains.
func (t *traceLines) Next() bool {
	if t.cycle >= len(t.cycles) {
		return false
	}
	t.cycle++
	return t.cycle < len(t.cycles)
}

func (t *traceLines) DriveColumn(col int, level gpio.Level) error {
	if col < 0 || col >= t.cols {
		return fmt.Errorf("column %d out of range", col)
	}
	if level == gpio.Low {
		t.asserted = col
	} else if t.asserted == col {
		t.asserted = -1
	}
	return nil
}

func (t *traceLines) ReadRow(row int) gpio.Level {
	if t.asserted < 0 || t.cycle >= len(t.cycles) {
		return gpio.High
	}
	if t.cycles[t.cycle][row*t.cols+t.asserted] {
		return gpio.Low
	}
	return gpio.High
}

// simulate replays a trace through the configured detector and writes one
// "<cycle>: <label> down|up" line per transition.
func simulate(w io.Writer, cfg *Config, trace io.Reader) error {
	km := cfg.Keys()
	cycles, err := ParseTrace(trace, km)
	if err != nil {
		return err
	}
	det, err := cfg.NewDetector()
	if err != nil {
		return err
	}

	lines := newTraceLines(km.Rows(), km.Columns(), cycles)
	sink := &cycleSink{w: w}
	kp, err := NewKeypad(lines, det, km, sink)
	if err != nil {
		return err
	}
	sink.cycles = kp.Cycles

	for range cycles {
		if err := kp.Cycle(); err != nil {
			return err
		}
		lines.Next()
	}
	return nil
}

// cycleSink writes text sink lines prefixed with the number of the scan
// cycle that produced them, counting from 1.
type cycleSink struct {
	w      io.Writer
	cycles func() uint64
}

func (s *cycleSink) Emit(key Key, pressed bool) error {
	if _, err := fmt.Fprintf(s.w, "%d: ", s.cycles()+1); err != nil {
		return fmt.Errorf("write cycle number: %w", err)
	}
	return NewTextSink(s.w).Emit(key, pressed)
}
