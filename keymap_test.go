package main

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want evdev.EvCode
	}{
		{"KEY_A", evdev.KEY_A},
		{"a", evdev.KEY_A},
		{"key_1", evdev.KEY_1},
		{" kpasterisk ", evdev.KEY_KPASTERISK},
	}
	for _, tt := range tests {
		got, err := ParseKeyCode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKeyCode("")
	assert.Error(t, err)
	_, err = ParseKeyCode("KEY_DOES_NOT_EXIST")
	assert.Error(t, err)
}

func TestNewKeymap(t *testing.T) {
	t.Parallel()
	km := testKeymap(t)

	assert.Equal(t, 4, km.Rows())
	assert.Equal(t, 4, km.Columns())
	assert.Equal(t, Key{Label: "6", Code: evdev.KEY_6}, km.At(1, 2))

	row, col, ok := km.Find("C")
	assert.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, _, ok = km.Find("Z")
	assert.False(t, ok)
}

func TestNewKeymap_Errors(t *testing.T) {
	t.Parallel()
	codes := map[string]string{"1": "KEY_1", "2": "KEY_2"}

	_, err := NewKeymap(nil, codes)
	assert.Error(t, err)

	_, err = NewKeymap([][]string{{"1", "2"}, {"1"}}, codes)
	assert.ErrorContains(t, err, "row 1")

	_, err = NewKeymap([][]string{{"1", ""}}, codes)
	assert.ErrorContains(t, err, "no label")

	_, err = NewKeymap([][]string{{"1", "2"}, {"2", "1"}}, codes)
	assert.ErrorContains(t, err, `cell 1,0: duplicate label "2"`)

	for _, label := range []string{"-", "//", "//x", "1 2", "\t"} {
		_, err = NewKeymap([][]string{{label}}, map[string]string{label: "KEY_1"})
		assert.Error(t, err, "label %q", label)
	}

	km, err := NewKeymap([][]string{{"#", "*"}}, map[string]string{"#": "KEY_1", "*": "KEY_2"})
	require.NoError(t, err)
	assert.Equal(t, "#", km.At(0, 0).Label)

	_, err = NewKeymap([][]string{{"1", "3"}}, codes)
	assert.ErrorContains(t, err, `key "3"`)
}
