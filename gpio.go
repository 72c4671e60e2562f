package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// gpioLines drives the matrix through host GPIO pins: columns are outputs
// idling high, rows are inputs with pull-ups.
type gpioLines struct {
	rows    []gpio.PinIO
	columns []gpio.PinIO
}

// OpenGPIO initializes the host drivers and configures the named pins.
func OpenGPIO(rowPins, columnPins []string) (Lines, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	l := &gpioLines{}
	for _, name := range columnPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("column pin %s not found", name)
		}
		if err := p.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("column pin %s: %w", name, err)
		}
		l.columns = append(l.columns, p)
	}
	for _, name := range rowPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("row pin %s not found", name)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("row pin %s: %w", name, err)
		}
		l.rows = append(l.rows, p)
	}
	return l, nil
}

func (l *gpioLines) Rows() int    { return len(l.rows) }
func (l *gpioLines) Columns() int { return len(l.columns) }

func (l *gpioLines) DriveColumn(col int, level gpio.Level) error {
	return l.columns[col].Out(level)
}

func (l *gpioLines) ReadRow(row int) gpio.Level {
	return l.rows[row].Read()
}
