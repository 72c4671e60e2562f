package main

import (
	"context"
	"fmt"
	"time"
)

// Keypad ties the scanner, detector, keymap and sink together. It is
// owned by a single goroutine; nothing in it is safe for concurrent use.
type Keypad struct {
	scanner  *Scanner
	detector Detector
	keymap   *Keymap
	sink     Sink
	cycles   uint64
}

// NewKeypad checks that lines and keymap describe the same matrix and
// returns a keypad ready to scan.
func NewKeypad(lines Lines, detector Detector, km *Keymap, sink Sink) (*Keypad, error) {
	if lines.Rows() != km.Rows() || lines.Columns() != km.Columns() {
		return nil, fmt.Errorf("lines are %dx%d but keymap is %dx%d",
			lines.Rows(), lines.Columns(), km.Rows(), km.Columns())
	}
	return &Keypad{
		scanner:  NewScanner(lines),
		detector: detector,
		keymap:   km,
		sink:     sink,
	}, nil
}

// Cycles returns the number of completed scan cycles.
func (k *Keypad) Cycles() uint64 {
	return k.cycles
}

// Cycle scans the matrix once and advances every cell's detector by one
// step, emitting at most one transition per cell.
func (k *Keypad) Cycle() error {
	var emitErr error
	err := k.scanner.Scan(func(row, col int, pressed bool) {
		press, emit := k.detector.Update(row, col, pressed)
		if !emit {
			return
		}
		key := k.keymap.At(row, col)
		dbg("cycle %d: %s %s (cell %d,%d)", k.cycles+1, key.Label, direction(press), row, col)
		if err := k.sink.Emit(key, press); err != nil && emitErr == nil {
			emitErr = err
		}
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	k.cycles++
	if emitErr != nil {
		return fmt.Errorf("emit: %w", emitErr)
	}
	return nil
}

// Run scans until ctx is cancelled or a cycle fails. With a zero interval
// cycles run back to back.
func (k *Keypad) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if err := k.Cycle(); err != nil {
				return err
			}
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := k.Cycle(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func direction(pressed bool) string {
	if pressed {
		return "down"
	}
	return "up"
}
