package main

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Glyph cell size in pixels, matching basicfont.Face7x13
const (
	CellWidth  = 7
	CellHeight = 13
)

// DefaultConfigFile is where the window saves and loads its config.
const DefaultConfigFile = "digital-rain.yaml"

// Simulation is the ebiten game drawing the rain into a window.
type Simulation struct {
	rain       *rain
	face       *text.GoXFace
	configPath string
	cols, rows int
}

// NewSimulation creates a window simulation of cfg.Width x cfg.Height cells.
func NewSimulation(cfg Config, configPath string) *Simulation {
	if configPath == "" {
		configPath = DefaultConfigFile
	}
	return &Simulation{
		rain:       newRain(cfg, cfg.Width, cfg.Height),
		face:       text.NewGoXFace(basicfont.Face7x13),
		configPath: configPath,
		cols:       cfg.Width,
		rows:       cfg.Height,
	}
}

// runWindow opens the window and blocks until it is closed.
func runWindow(cfg Config, configPath string) error {
	ebiten.SetWindowSize(cfg.Width*CellWidth, cfg.Height*CellHeight)
	ebiten.SetWindowTitle("Digital Rain")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond(cfg.FrameInterval))

	log.Printf("window mode started")
	defer log.Printf("window mode stopped")
	err := ebiten.RunGame(NewSimulation(cfg, configPath))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// ticksPerSecond converts a frame interval to an ebiten tick rate.
func ticksPerSecond(interval time.Duration) int {
	tps := int(math.Round(float64(time.Second) / float64(interval)))
	if tps < 1 {
		return 1
	}
	return tps
}

// Update is called each tick by Ebitengine
func (s *Simulation) Update() error {
	if err := s.handleInput(); err != nil {
		return err
	}
	s.rain.step(s.cols, s.rows)
	return nil
}

// Draw is called each frame by Ebitengine
func (s *Simulation) Draw(screen *ebiten.Image) {
	screen.Fill(s.rain.currentTheme().Background)

	op := &text.DrawOptions{}
	for y, row := range s.rain.matrix.Cells() {
		for x, g := range row {
			if !g.Trail {
				continue
			}
			op.GeoM.Reset()
			op.GeoM.Translate(float64(x*CellWidth), float64(y*CellHeight))
			op.ColorScale.Reset()
			op.ColorScale.ScaleWithColor(s.rain.colorAt(g, x, y))
			text.Draw(screen, string(g.Rune), s.face, op)
		}
	}

	if s.rain.hint {
		ebitenutil.DebugPrintAt(screen, "Q: exit  SPACE: pause  T: theme  +/-: density  S/L: save/load", 4, screen.Bounds().Dy()-20)
	}
}

// Layout maps the window to whole glyph cells
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.cols = outsideWidth / CellWidth
	s.rows = outsideHeight / CellHeight
	return outsideWidth, outsideHeight
}

// handleInput processes keyboard input
func (s *Simulation) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.rain.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.rain.toggleHint()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		s.rain.cycleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.rain.clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.rain.adjustSpawn(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.rain.adjustSpawn(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.saveConfig()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.loadConfig()
	}
	return nil
}

// saveConfig saves the live settings
func (s *Simulation) saveConfig() {
	cfg := s.rain.cfg
	cfg.Width, cfg.Height = s.cols, s.rows
	if cfg.Width < 1 || cfg.Height < 1 {
		cfg.Width, cfg.Height = s.rain.cfg.Width, s.rain.cfg.Height
	}
	if err := cfg.Save(s.configPath); err != nil {
		log.Printf("save config: %v", err)
		return
	}
	log.Printf("config saved to %s", s.configPath)
}

// loadConfig restarts the rain from the saved settings
func (s *Simulation) loadConfig() {
	cfg, err := LoadConfig(s.configPath)
	if err != nil {
		log.Printf("load config: %v", err)
		return
	}
	s.rain.reconfigure(cfg)
	ebiten.SetTPS(ticksPerSecond(cfg.FrameInterval))
	log.Printf("config loaded from %s", s.configPath)
}
