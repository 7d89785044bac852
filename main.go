package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Frontends
const (
	modeTerm   = "term"
	modeWindow = "window"
	modePrint  = "print"
)

type options struct {
	mode       string
	configPath string
	logPath    string
	frames     int
	list       bool
	cfg        Config
}

// parseArgs builds the run options. Values come from the defaults, then the
// config file, then explicitly set flags.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fc := DefaultConfig()

	fs := flag.NewFlagSet("digital-rain", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", modeTerm, "frontend: term, window or print")
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.logPath, "log", "", "append logs to this file")
	fs.IntVar(&opts.frames, "frames", 0, "frames to print in print mode (0 = until interrupted, terminal only)")
	fs.BoolVar(&opts.list, "list", false, "list themes and exit")
	fs.Float64Var(&fc.SpawnChance, "spawn", fc.SpawnChance, "per column spawn chance per frame (0-1)")
	fs.IntVar(&fc.Length.Min, "min-len", fc.Length.Min, "shortest trail")
	fs.IntVar(&fc.Length.Max, "max-len", fc.Length.Max, "longest trail (exclusive)")
	fs.IntVar(&fc.Speed.Min, "min-speed", fc.Speed.Min, "fastest fall, in frames per row")
	fs.IntVar(&fc.Speed.Max, "max-speed", fc.Speed.Max, "slowest fall (exclusive)")
	fs.DurationVar(&fc.FrameInterval, "interval", fc.FrameInterval, "time between frames")
	fs.StringVar(&fc.Theme, "theme", fc.Theme, "color theme")
	fs.StringVar(&fc.Charset, "chars", fc.Charset, "characters trails are made of")
	fs.Int64Var(&fc.Seed, "seed", fc.Seed, "random seed (0 = clock)")
	fs.IntVar(&fc.Width, "width", fc.Width, "columns when the surface size is unknown")
	fs.IntVar(&fc.Height, "height", fc.Height, "rows when the surface size is unknown")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.mode {
	case modeTerm, modeWindow, modePrint:
	default:
		return opts, fmt.Errorf("unknown mode %q", opts.mode)
	}

	opts.cfg = DefaultConfig()
	if opts.configPath != "" {
		cfg, err := LoadConfig(opts.configPath)
		if err != nil {
			return opts, err
		}
		opts.cfg = cfg
	}

	overrides := map[string]func(c *Config){
		"spawn":     func(c *Config) { c.SpawnChance = fc.SpawnChance },
		"min-len":   func(c *Config) { c.Length.Min = fc.Length.Min },
		"max-len":   func(c *Config) { c.Length.Max = fc.Length.Max },
		"min-speed": func(c *Config) { c.Speed.Min = fc.Speed.Min },
		"max-speed": func(c *Config) { c.Speed.Max = fc.Speed.Max },
		"interval":  func(c *Config) { c.FrameInterval = fc.FrameInterval },
		"theme":     func(c *Config) { c.Theme = fc.Theme },
		"chars":     func(c *Config) { c.Charset = fc.Charset },
		"seed":      func(c *Config) { c.Seed = fc.Seed },
		"width":     func(c *Config) { c.Width = fc.Width },
		"height":    func(c *Config) { c.Height = fc.Height },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&opts.cfg)
		}
	})

	if err := opts.cfg.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// setupLogging routes the standard logger. The terminal frontend owns the
// screen, so without a log file its logs are dropped.
func setupLogging(opts options) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	switch {
	case opts.logPath != "":
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log: %w", err)
		}
		log.SetOutput(f)
		return f, nil
	case opts.mode == modeTerm:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return nil, nil
}

func listThemes(w io.Writer) {
	fmt.Fprintln(w, "Themes:")
	for _, t := range themes {
		fmt.Fprintln(w, " ", t.Name)
	}
	fmt.Fprintln(w, "\nModes:", modeTerm, modeWindow, modePrint)
}

func run(opts options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting %s mode: spawn=%.3f length=[%d,%d) speed=[%d,%d) theme=%s",
		opts.mode, opts.cfg.SpawnChance, opts.cfg.Length.Min, opts.cfg.Length.Max,
		opts.cfg.Speed.Min, opts.cfg.Speed.Max, opts.cfg.Theme)

	switch opts.mode {
	case modeWindow:
		return runWindow(opts.cfg, opts.configPath)
	case modePrint:
		return runPrinter(ctx, opts.cfg, opts.frames)
	default:
		return runTerminal(ctx, opts.cfg)
	}
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "digital-rain: %v\n", err)
		os.Exit(2)
	}
	if opts.list {
		listThemes(os.Stdout)
		return
	}

	logFile, err := setupLogging(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "digital-rain: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts); err != nil {
		log.Print(err)
		fmt.Fprintf(os.Stderr, "digital-rain: %v\n", err)
		os.Exit(1)
	}
}
