package main

import (
	"bytes"
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
)

func TestPrintKeyEvent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	printKeyEvent(&buf, KeyEvent{Code: evdev.KEY_1, Value: 1})
	printKeyEvent(&buf, KeyEvent{Code: evdev.KEY_1, Value: 2})
	printKeyEvent(&buf, KeyEvent{Code: evdev.KEY_1, Value: 0})

	assert.Equal(t, "KEY_1 down\nKEY_1 repeat\nKEY_1 up\n", buf.String())
}
