package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bendahl/uinput"
	"github.com/spf13/pflag"
)

var version = "0.1.0"

const usage = "usage: padscan [run|simulate <trace>|monitor|init|version] [--config file] [--debug]"

// options are the flags shared by all subcommands.
type options struct {
	config string
	debug  bool
	output string
}

func parseFlags(name string, args []string) (*options, []string, error) {
	opts := &options{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.config, "config", "c", configPath(), "config file")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "log every transition to stderr")
	fs.StringVarP(&opts.output, "output", "o", "", "override output (keyboard, stdout, serial)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if opts.debug {
		setDebug(os.Stderr)
	}
	return opts, fs.Args(), nil
}

func loadConfig(opts *options) (*Config, error) {
	cfg, err := LoadConfig(opts.config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.output != "" {
		cfg.Output = opts.output
		if err := cfg.checkOutput(); err != nil {
			return nil, fmt.Errorf("--output: %w", err)
		}
	}
	return cfg, nil
}

// openSink creates the sink selected by the config and a function that
// releases it.
func openSink(cfg *Config) (Sink, func(), error) {
	switch cfg.Output {
	case OutputStdout:
		return NewTextSink(os.Stdout), func() {}, nil
	case OutputSerial:
		port, err := openSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			return nil, nil, err
		}
		if err := announce(port); err != nil {
			port.Close()
			return nil, nil, err
		}
		return NewTextSink(port), func() { port.Close() }, nil
	default:
		vkbd, err := uinput.CreateKeyboard("/dev/uinput", []byte(cfg.DeviceName))
		if err != nil {
			return nil, nil, fmt.Errorf("create virtual keyboard: %w", err)
		}
		return NewHostSink(vkbd), func() { vkbd.Close() }, nil
	}
}

// announce writes the start-up banner so an unwritable diagnostic port
// fails before scanning starts.
func announce(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Keyboard starting"); err != nil {
		return fmt.Errorf("write serial banner: %w", err)
	}
	return nil
}

func run(args []string) error {
	opts, _, err := parseFlags("run", args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	lines, err := OpenGPIO(cfg.Rows, cfg.Columns)
	if err != nil {
		return fmt.Errorf("open gpio: %w", err)
	}
	det, err := cfg.NewDetector()
	if err != nil {
		return err
	}
	sink, closeSink, err := openSink(cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	kp, err := NewKeypad(lines, det, cfg.Keys(), sink)
	if err != nil {
		return err
	}

	mode := "debounced"
	if !*cfg.Debounce {
		mode = "raw"
	}
	fmt.Printf("padscan: scanning %dx%d matrix (%s, lockout %d scans, interval %s) -> %s\n",
		len(cfg.Rows), len(cfg.Columns), mode, cfg.LockoutScans, cfg.Interval(), cfg.Output)

	// Clean shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := kp.Run(ctx, cfg.Interval()); err != nil {
		return err
	}
	fmt.Printf("\npadscan: shutting down after %d scans\n", kp.Cycles())
	return nil
}

func runSimulate(args []string) error {
	opts, rest, err := parseFlags("simulate", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("simulate: expected one trace file")
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	f, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return simulate(os.Stdout, cfg, f)
}

func runMonitor(args []string) error {
	opts, _, err := parseFlags("monitor", args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	devs, err := FindDevices(cfg.DeviceName)
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		return fmt.Errorf("no input device named %q found\nIs \"padscan run\" running, and are you in the 'input' group?", cfg.DeviceName)
	}
	fmt.Printf("padscan: monitoring %d device(s) named %q\n", len(devs), cfg.DeviceName)

	ch := make(chan KeyEvent, 64)
	var wg sync.WaitGroup
	for _, dev := range devs {
		wg.Add(1)
		go MonitorDevice(dev, ch, &wg)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		for _, dev := range devs {
			dev.Close()
		}
	}()
	go func() {
		wg.Wait()
		close(ch)
	}()

	for ev := range ch {
		printKeyEvent(os.Stdout, ev)
	}
	return nil
}

func runInit(args []string) error {
	opts, _, err := parseFlags("init", args)
	if err != nil {
		return err
	}
	created, err := initConfig(opts.config)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("padscan: skip %s (already exists)\n", opts.config)
		return nil
	}
	fmt.Printf("padscan: created %s\n", opts.config)
	return nil
}

func main() {
	cmd, args := "run", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "run":
		err = run(args)
	case "simulate":
		err = runSimulate(args)
	case "monitor":
		err = runMonitor(args)
	case "init":
		err = runInit(args)
	case "version":
		fmt.Printf("padscan %s\n", version)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if errors.Is(err, pflag.ErrHelp) {
		fmt.Println(usage)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "padscan: %v\n", err)
		os.Exit(1)
	}
}
