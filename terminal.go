package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

const hintText = "Press 'q' to exit"

// terminalView renders the rain into a tcell screen.
type terminalView struct {
	screen   tcell.Screen
	rain     *rain
	interval time.Duration
}

// newTerminalView wraps an initialized screen.
func newTerminalView(screen tcell.Screen, cfg Config) *terminalView {
	w, h := screen.Size()
	screen.HideCursor()
	return &terminalView{
		screen:   screen,
		rain:     newRain(cfg, w, h),
		interval: cfg.FrameInterval,
	}
}

// runTerminal takes over the terminal until the user quits or ctx ends.
func runTerminal(ctx context.Context, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	log.Printf("terminal mode started")
	defer log.Printf("terminal mode stopped")
	return newTerminalView(screen, cfg).run(ctx)
}

// run drives the render loop. Events are pumped from a second goroutine;
// the screen is finalized when the loop ends, which also unblocks the pump.
func (v *terminalView) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 16)

	g.Go(func() error {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer v.screen.Fini()
		defer cancel()
		return v.loop(ctx, events)
	})

	return g.Wait()
}

func (v *terminalView) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

// handleEvent applies a terminal event and reports whether to keep running.
func (v *terminalView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				v.rain.togglePause()
			case 'h', 'H':
				v.rain.toggleHint()
			case '+', '=':
				v.rain.adjustSpawn(1)
			case '-', '_':
				v.rain.adjustSpawn(-1)
			case 't', 'T':
				v.rain.cycleTheme()
			case 'c', 'C':
				v.rain.clear()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// draw advances the rain to the current screen size and paints it.
func (v *terminalView) draw() {
	w, h := v.screen.Size()
	v.rain.step(w, h)

	bg := tcellColor(v.rain.currentTheme().Background)
	blank := tcell.StyleDefault.Background(bg)
	for y, row := range v.rain.matrix.Cells() {
		for x, g := range row {
			if !g.Trail {
				v.screen.SetContent(x, y, ' ', nil, blank)
				continue
			}
			style := blank.Foreground(tcellColor(v.rain.colorAt(g, x, y)))
			if g.Fade == 0 {
				style = style.Bold(true)
			}
			v.screen.SetContent(x, y, g.Rune, nil, style)
		}
	}
	if v.rain.hint {
		v.drawHint(w, h, bg)
	}
	v.screen.Show()
}

// drawHint paints a boxed exit hint over the bottom three rows.
func (v *terminalView) drawHint(w, h int, bg tcell.Color) {
	if h < 3 || w < 2 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorReset).Background(bg)
	top, bottom := h-3, h-1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		v.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
		v.screen.SetContent(x, top+1, ' ', nil, style)
	}
	v.screen.SetContent(0, top, tcell.RuneULCorner, nil, style)
	v.screen.SetContent(w-1, top, tcell.RuneURCorner, nil, style)
	v.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	v.screen.SetContent(w-1, bottom, tcell.RuneLRCorner, nil, style)
	v.screen.SetContent(0, top+1, tcell.RuneVLine, nil, style)
	v.screen.SetContent(w-1, top+1, tcell.RuneVLine, nil, style)
	for i, r := range []rune(hintText) {
		if 1+i >= w-1 {
			break
		}
		v.screen.SetContent(1+i, top+1, r, nil, style)
	}
}
