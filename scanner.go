package main

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Lines is the electrical side of the key matrix: one output line per
// column and one input line per row. Columns are asserted by driving them
// low; a row reads low while a key on the asserted column is down.
type Lines interface {
	Rows() int
	Columns() int
	DriveColumn(col int, level gpio.Level) error
	ReadRow(row int) gpio.Level
}

// Scanner samples every cell of the matrix once per call to Scan.
type Scanner struct {
	lines Lines
}

// NewScanner creates a scanner over the given lines.
func NewScanner(lines Lines) *Scanner {
	return &Scanner{lines: lines}
}

// Scan asserts each column in turn, reads every row while it is asserted
// and reports each cell to visit with pressed=true for a key that is
// down. Cells are visited column by column, rows in order within each
// column.
func (s *Scanner) Scan(visit func(row, col int, pressed bool)) error {
	rows := s.lines.Rows()
	for col := 0; col < s.lines.Columns(); col++ {
		if err := s.lines.DriveColumn(col, gpio.Low); err != nil {
			// Leave the column deasserted so it does not shadow the next scan.
			return errors.Join(fmt.Errorf("assert column %d: %w", col, err),
				s.lines.DriveColumn(col, gpio.High))
		}
		for row := 0; row < rows; row++ {
			visit(row, col, s.lines.ReadRow(row) == gpio.Low)
		}
		if err := s.lines.DriveColumn(col, gpio.High); err != nil {
			return fmt.Errorf("release column %d: %w", col, err)
		}
	}
	return nil
}
