package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

var errUnboundedOutput = errors.New("-frames must be positive when stdout is not a terminal")

const (
	ansiClear = "\x1b[2J"
	ansiHome  = "\x1b[H"
)

// printer writes frames as plain text. When animate is set each frame
// replaces the previous one in place and frames are paced by the frame
// interval; otherwise frames are separated by an empty line.
type printer struct {
	w             io.Writer
	rain          *rain
	width, height int
	animate       bool
	interval      time.Duration
}

// runPrinter prints frames to stdout. On a terminal a non-positive frames
// count prints until ctx is done; elsewhere the count is required.
func runPrinter(ctx context.Context, cfg Config, frames int) error {
	width, height, tty := outputSize(os.Stdout, cfg)
	p := &printer{
		w:        os.Stdout,
		rain:     newRain(cfg, width, height),
		width:    width,
		height:   height,
		animate:  tty,
		interval: cfg.FrameInterval,
	}
	return p.run(ctx, frames)
}

// outputSize returns the terminal size when f is a terminal, and the
// configured size otherwise.
func outputSize(f *os.File, cfg Config) (int, int, bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return cfg.Width, cfg.Height, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w < 1 || h < 1 {
		return cfg.Width, cfg.Height, true
	}
	return w, h, true
}

func (p *printer) run(ctx context.Context, frames int) error {
	if !p.animate && frames <= 0 {
		return errUnboundedOutput
	}
	out := bufio.NewWriter(p.w)
	if p.animate {
		fmt.Fprint(out, ansiClear)
	}
	for n := 0; frames <= 0 || n < frames; n++ {
		if err := ctx.Err(); err != nil {
			return nil
		}
		p.rain.step(p.width, p.height)
		if err := p.frame(out, n); err != nil {
			return fmt.Errorf("writing frame %d: %w", n, err)
		}
		if p.animate {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.interval):
			}
		}
	}
	return nil
}

func (p *printer) frame(out *bufio.Writer, n int) error {
	switch {
	case p.animate:
		fmt.Fprint(out, ansiHome)
	case n > 0:
		out.WriteByte('\n')
	}
	out.WriteString(p.rain.matrix.String())
	return out.Flush()
}
