package main

import "fmt"

// State is the debounce state of a single matrix cell.
type State uint8

const (
	// WaitPress is idle, waiting for the key to go down.
	WaitPress State = iota
	// PressLockout ignores samples after a press was emitted.
	PressLockout
	// WaitRelease waits for the key to go back up.
	WaitRelease
	// ReleaseLockout ignores samples after a release was emitted.
	ReleaseLockout
)

func (s State) String() string {
	switch s {
	case WaitPress:
		return "WAIT_PRESS"
	case PressLockout:
		return "PRESS_LOCKOUT"
	case WaitRelease:
		return "WAIT_RELEASE"
	case ReleaseLockout:
		return "RELEASE_LOCKOUT"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Detector turns one raw sample per cell per scan cycle into key
// transitions. Update is called exactly once per cell per cycle and
// reports whether a transition should be emitted, and which one.
type Detector interface {
	Update(row, col int, pressed bool) (press bool, emit bool)
	Reset()
}

type cell struct {
	state   State
	lockout int
}

// Debouncer runs one lockout state machine per cell. The lockout window
// is counted in scan cycles, so its wall-clock length follows the scan
// rate.
type Debouncer struct {
	rows, cols   int
	lockoutScans int
	cells        []cell
}

// NewDebouncer creates a debouncer for a rows×cols matrix. lockoutScans
// must be at least 1, otherwise a lockout state could never time out.
func NewDebouncer(rows, cols, lockoutScans int) (*Debouncer, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid matrix size %dx%d", rows, cols)
	}
	if lockoutScans < 1 {
		return nil, fmt.Errorf("lockout scans must be at least 1, got %d", lockoutScans)
	}
	return &Debouncer{
		rows:         rows,
		cols:         cols,
		lockoutScans: lockoutScans,
		cells:        make([]cell, rows*cols),
	}, nil
}

// Reset returns every cell to WaitPress with an expired lockout.
func (d *Debouncer) Reset() {
	clear(d.cells)
}

// State returns the current state of the cell at row, col.
func (d *Debouncer) State(row, col int) State {
	return d.at(row, col).state
}

// Lockout returns the remaining lockout scans of the cell at row, col.
func (d *Debouncer) Lockout(row, col int) int {
	return d.at(row, col).lockout
}

func (d *Debouncer) at(row, col int) *cell {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		panic(fmt.Sprintf("cell %d,%d outside %dx%d matrix", row, col, d.rows, d.cols))
	}
	return &d.cells[row*d.cols+col]
}

// Update advances the cell at row, col by one scan cycle.
func (d *Debouncer) Update(row, col int, pressed bool) (press bool, emit bool) {
	c := d.at(row, col)

	// The timeout fires on the cycle where the counter runs out.
	timeout := c.lockout == 1
	if c.lockout > 0 {
		c.lockout--
	}

	switch c.state {
	case WaitPress:
		if pressed {
			c.lockout = d.lockoutScans
			c.state = PressLockout
			return true, true
		}
	case PressLockout:
		if timeout {
			c.state = WaitRelease
		}
	case WaitRelease:
		// Still held: nothing to do until the key comes up.
		if !pressed {
			c.lockout = d.lockoutScans
			c.state = ReleaseLockout
			return false, true
		}
	case ReleaseLockout:
		if timeout {
			c.state = WaitPress
		}
	}
	return false, false
}

// EdgeDetector emits a transition whenever a cell's sample differs from
// the one seen on the previous cycle. It does no debouncing and suits
// membrane keypads that barely bounce.
type EdgeDetector struct {
	cols int
	down []bool
}

// NewEdgeDetector creates an edge detector for a rows×cols matrix.
func NewEdgeDetector(rows, cols int) (*EdgeDetector, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid matrix size %dx%d", rows, cols)
	}
	return &EdgeDetector{cols: cols, down: make([]bool, rows*cols)}, nil
}

// Reset marks every key as up.
func (e *EdgeDetector) Reset() {
	clear(e.down)
}

// Update records the sample and reports a transition if it changed.
func (e *EdgeDetector) Update(row, col int, pressed bool) (press bool, emit bool) {
	i := row*e.cols + col
	if e.down[i] == pressed {
		return false, false
	}
	e.down[i] = pressed
	return pressed, true
}
