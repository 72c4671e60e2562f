package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Output selectors.
const (
	OutputKeyboard = "keyboard"
	OutputStdout   = "stdout"
	OutputSerial   = "serial"
)

const (
	defaultLockoutScans = 20
	defaultScanInterval = time.Millisecond
	defaultBaud         = 9600
	defaultDeviceName   = "padscan"
)

// Config is the YAML configuration of the keypad.
type Config struct {
	// Rows and Columns name the GPIO pins of the matrix lines, in index
	// order.
	Rows    []string   `yaml:"rows"`
	Columns []string   `yaml:"columns"`
	Keymap  [][]string `yaml:"keymap"`
	// Codes maps each keymap label to an evdev key name.
	Codes        map[string]string `yaml:"codes"`
	LockoutScans int               `yaml:"lockout_scans"`
	ScanInterval string            `yaml:"scan_interval"`
	Debounce     *bool             `yaml:"debounce"`
	Output       string            `yaml:"output"`
	Serial       SerialConfig      `yaml:"serial"`
	DeviceName   string            `yaml:"device_name"`

	keys     *Keymap
	interval time.Duration
}

// SerialConfig selects the serial port used by the serial output.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// configPath returns the default config file location.
func configPath() string {
	return filepath.Join(xdg.ConfigHome, "padscan", "config.yml")
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML config, fills in defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LockoutScans == 0 {
		c.LockoutScans = defaultLockoutScans
	}
	if c.Debounce == nil {
		on := true
		c.Debounce = &on
	}
	if c.Output == "" {
		c.Output = OutputKeyboard
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = defaultBaud
	}
	if c.DeviceName == "" {
		c.DeviceName = defaultDeviceName
	}
}

func (c *Config) validate() error {
	if len(c.Rows) == 0 {
		return fmt.Errorf("rows: at least one row pin is required")
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("columns: at least one column pin is required")
	}
	if len(c.Keymap) != len(c.Rows) {
		return fmt.Errorf("keymap: has %d rows, want %d", len(c.Keymap), len(c.Rows))
	}
	for r, row := range c.Keymap {
		if len(row) != len(c.Columns) {
			return fmt.Errorf("keymap: row %d has %d keys, want %d", r, len(row), len(c.Columns))
		}
	}
	km, err := NewKeymap(c.Keymap, c.Codes)
	if err != nil {
		return fmt.Errorf("keymap: %w", err)
	}
	c.keys = km

	if c.LockoutScans < 1 {
		return fmt.Errorf("lockout_scans: must be at least 1, got %d", c.LockoutScans)
	}

	c.interval = defaultScanInterval
	if c.ScanInterval != "" {
		d, err := time.ParseDuration(c.ScanInterval)
		if err != nil {
			return fmt.Errorf("scan_interval: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("scan_interval: must not be negative, got %s", d)
		}
		c.interval = d
	}

	return c.checkOutput()
}

func (c *Config) checkOutput() error {
	switch c.Output {
	case OutputKeyboard, OutputStdout:
	case OutputSerial:
		if c.Serial.Port == "" {
			return fmt.Errorf("serial.port: required when output is %q", OutputSerial)
		}
		if c.Serial.Baud < 0 {
			return fmt.Errorf("serial.baud: must be positive, got %d", c.Serial.Baud)
		}
	default:
		return fmt.Errorf("output: unknown output %q (want %s, %s or %s)",
			c.Output, OutputKeyboard, OutputStdout, OutputSerial)
	}
	return nil
}

// Keys returns the resolved keymap.
func (c *Config) Keys() *Keymap { return c.keys }

// Interval returns the parsed scan interval.
func (c *Config) Interval() time.Duration { return c.interval }

// NewDetector builds the detector selected by the config.
func (c *Config) NewDetector() (Detector, error) {
	if *c.Debounce {
		return NewDebouncer(len(c.Rows), len(c.Columns), c.LockoutScans)
	}
	return NewEdgeDetector(len(c.Rows), len(c.Columns))
}
