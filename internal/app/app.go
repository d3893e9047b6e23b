// Package app implements the viewer's main loop and chapter selection.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/engine/debug"
	"github.com/Faultbox/glchapters/internal/engine/input"
	"github.com/Faultbox/glchapters/internal/engine/renderer"
	"github.com/Faultbox/glchapters/internal/engine/window"
	"github.com/Faultbox/glchapters/internal/logger"
)

// App is the main viewer instance.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	tracker  *input.Tracker
	shots    *debug.Screenshotter
	chapter  chapter
}

// New creates the window, GL state and the configured chapter.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("chapter", cfg.Scene.Chapter),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config:  cfg,
		input:   input.New(),
		tracker: input.NewTracker(),
		shots:   debug.NewScreenshotter(cfg.Scene.ScreenshotDir, "glchapters"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer loads GL function pointers, so the context must exist.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:     w,
		Height:    h,
		Wireframe: cfg.Scene.Wireframe,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.chapter, err = newChapter(cfg)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create chapter %q: %w", cfg.Scene.Chapter, err)
	}
	a.window.SetTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, a.chapter.name()))

	logger.Info("viewer initialized")
	return a, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	frameCount := 0
	fpsTimer := start

	logger.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := a.tracker.Frame(now)

		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			if event.Type == input.EventWindowResize {
				a.renderer.Resize(a.window.DrawableSize())
			}
		}

		if a.input.IsKeyDown(sdl.SCANCODE_ESCAPE) {
			a.running = false
			break
		}
		if a.tracker.Pressed(int(sdl.SCANCODE_TAB), a.input.IsKeyDown(sdl.SCANCODE_TAB)) {
			a.renderer.ToggleWireframe()
		}

		f := &frame{
			dt:       dt,
			elapsed:  float32(now.Sub(start).Seconds()),
			aspect:   a.renderer.Aspect(),
			in:       a.input,
			tracker:  a.tracker,
			captured: a.window.Captured(),
		}
		a.chapter.update(f)

		a.renderer.Begin()
		a.chapter.draw(f)
		if a.tracker.Pressed(int(sdl.SCANCODE_F12), a.input.IsKeyDown(sdl.SCANCODE_F12)) {
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// screenshot saves the back buffer before it is swapped.
func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.shots.SavePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", name))
}

// Close releases the chapter, GL state and window.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.chapter != nil {
		a.chapter.close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
