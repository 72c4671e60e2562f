package main

import (
	"fmt"
	"io"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// KeyEvent carries a key code and value (1=press, 0=release, 2=repeat)
// read back from an input device.
type KeyEvent struct {
	Code  evdev.EvCode
	Value int32
}

// FindDevices enumerates /dev/input/ devices and returns those whose name
// matches, such as the virtual keyboard created by "padscan run".
func FindDevices(name string) ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var devs []*evdev.InputDevice
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}

		devName, err := dev.Name()
		if err == nil && devName == name {
			devs = append(devs, dev)
		} else {
			dev.Close()
		}
	}

	return devs, nil
}

// MonitorDevice reads events from a single device and sends key events on
// the channel. Exits when the device is closed or errors.
func MonitorDevice(dev *evdev.InputDevice, ch chan<- KeyEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		if ev.Type == evdev.EV_KEY {
			ch <- KeyEvent{Code: ev.Code, Value: ev.Value}
		}
	}
}

// printKeyEvent writes a key event in the same form as the text sink,
// using the evdev name of the code.
func printKeyEvent(w io.Writer, ev KeyEvent) {
	name, ok := evdev.KEYToString[ev.Code]
	if !ok {
		name = fmt.Sprintf("key %d", ev.Code)
	}
	switch ev.Value {
	case 0:
		fmt.Fprintf(w, "%s up\n", name)
	case 1:
		fmt.Fprintf(w, "%s down\n", name)
	default:
		fmt.Fprintf(w, "%s repeat\n", name)
	}
}
