// Package config handles viewer configuration loading and management.
package config

import "fmt"

// Chapter names accepted by SceneConfig.Chapter.
const (
	ChapterTriangle  = "triangle"
	ChapterRectangle = "rectangle"
	ChapterShapes    = "shapes"
	ChapterModel     = "model"
)

// Chapters lists every chapter in tutorial order.
var Chapters = []string{ChapterTriangle, ChapterRectangle, ChapterShapes, ChapterModel}

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

// CameraConfig holds the fly camera's initial state.
type CameraConfig struct {
	Position      [3]float32 `yaml:"position"`
	Yaw           float32    `yaml:"yaw"`
	Pitch         float32    `yaml:"pitch"`
	Speed         float32    `yaml:"speed"`
	Sensitivity   float32    `yaml:"sensitivity"`
	Zoom          float32    `yaml:"zoom"`
	LevelMovement bool       `yaml:"level_movement"`
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	FrameModel    bool       `yaml:"frame_model"` // place the camera from the model bounds after loading
}

// SceneConfig selects what the viewer draws.
type SceneConfig struct {
	Chapter      string `yaml:"chapter"`
	Model        string `yaml:"model"`
	FlipUVs      bool   `yaml:"flip_uvs"`
	FlipTextures bool   `yaml:"flip_textures"`
	Wireframe    bool   `yaml:"wireframe"`
	ShowBounds   bool   `yaml:"show_bounds"`

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ShaderConfig holds shader source overrides for the model chapter.
// Empty paths use the built-in sources.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
	Watch    bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "glchapters",
			Width:         800,
			Height:        600,
			Fullscreen:    false,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Scene: SceneConfig{
			Chapter:       ChapterModel,
			FlipUVs:       true,
			FlipTextures:  false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot be used to start the viewer.
func (c *Config) Validate() error {
	if !validChapter(c.Scene.Chapter) {
		return fmt.Errorf("unknown chapter %q (want one of %v)", c.Scene.Chapter, Chapters)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Scene.Chapter == ChapterModel && c.Scene.Model == "" {
		return fmt.Errorf("chapter %q needs a model path (-model or -pick)", ChapterModel)
	}
	return nil
}

func validChapter(name string) bool {
	for _, ch := range Chapters {
		if ch == name {
			return true
		}
	}
	return false
}
