package main

import (
	"fmt"
	"io"

	"github.com/bendahl/uinput"
	"go.bug.st/serial"
)

// Sink receives one call per detected key transition.
type Sink interface {
	Emit(key Key, pressed bool) error
}

// keySender is the subset of uinput.Keyboard used to forward transitions.
type keySender interface {
	KeyDown(key int) error
	KeyUp(key int) error
}

// HostSink forwards transitions to a virtual host keyboard.
type HostSink struct {
	kbd keySender
}

// NewHostSink wraps a virtual keyboard created with uinput.CreateKeyboard.
func NewHostSink(kbd uinput.Keyboard) *HostSink {
	return &HostSink{kbd: kbd}
}

// Emit sends a key down on press and a key up on release.
func (s *HostSink) Emit(key Key, pressed bool) error {
	if pressed {
		if err := s.kbd.KeyDown(int(key.Code)); err != nil {
			return fmt.Errorf("key down %s: %w", key.Label, err)
		}
		return nil
	}
	if err := s.kbd.KeyUp(int(key.Code)); err != nil {
		return fmt.Errorf("key up %s: %w", key.Label, err)
	}
	return nil
}

// TextSink writes "<label> down" and "<label> up" lines, one per
// transition.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a text sink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Emit writes one line for the transition.
func (s *TextSink) Emit(key Key, pressed bool) error {
	dir := direction(pressed)
	if _, err := fmt.Fprintf(s.w, "%s %s\n", key.Label, dir); err != nil {
		return fmt.Errorf("write %s %s: %w", key.Label, dir, err)
	}
	return nil
}

// openSerial opens the diagnostic serial port in 8N1 mode.
func openSerial(port string, baud int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", port, err)
	}
	return p, nil
}
