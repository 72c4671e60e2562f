package main

import (
	"bytes"
	"errors"
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyboard struct {
	calls []string
	err   error
}

func (f *fakeKeyboard) KeyDown(key int) error {
	f.calls = append(f.calls, "down "+evdev.KEYToString[evdev.EvCode(key)])
	return f.err
}

func (f *fakeKeyboard) KeyUp(key int) error {
	f.calls = append(f.calls, "up "+evdev.KEYToString[evdev.EvCode(key)])
	return f.err
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("port closed") }

func TestHostSink(t *testing.T) {
	t.Parallel()
	kbd := &fakeKeyboard{}
	s := &HostSink{kbd: kbd}

	require.NoError(t, s.Emit(Key{Label: "1", Code: evdev.KEY_1}, true))
	require.NoError(t, s.Emit(Key{Label: "1", Code: evdev.KEY_1}, false))
	assert.Equal(t, []string{"down KEY_1", "up KEY_1"}, kbd.calls)
}

func TestHostSink_Error(t *testing.T) {
	t.Parallel()
	kbd := &fakeKeyboard{err: errors.New("uinput closed")}
	s := &HostSink{kbd: kbd}

	err := s.Emit(Key{Label: "A", Code: evdev.KEY_A}, true)
	assert.ErrorIs(t, err, kbd.err)
	assert.ErrorContains(t, err, "key down A")

	err = s.Emit(Key{Label: "A", Code: evdev.KEY_A}, false)
	assert.ErrorContains(t, err, "key up A")
}

func TestTextSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := NewTextSink(&buf)

	require.NoError(t, s.Emit(Key{Label: "#"}, true))
	require.NoError(t, s.Emit(Key{Label: "#"}, false))
	assert.Equal(t, "# down\n# up\n", buf.String())
}

func TestTextSink_WriteError(t *testing.T) {
	t.Parallel()
	s := NewTextSink(failingWriter{})
	err := s.Emit(Key{Label: "5"}, false)
	assert.ErrorContains(t, err, "write 5 up")
}
