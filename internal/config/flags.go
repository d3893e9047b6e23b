package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagChapter    = flag.String("chapter", "", "Chapter to run: triangle, rectangle, shapes or model")
	flagModel      = flag.String("model", "", "Model file for the model chapter (.obj, .gltf, .glb)")
	flagPick       = flag.Bool("pick", false, "Choose the model file with a native file dialog")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagLevel      = flag.Bool("level", false, "Keep camera movement on the horizontal plane")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// PickModel reports whether -pick was given.
func PickModel() bool {
	return *flagPick
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagChapter != "" {
		cfg.Scene.Chapter = *flagChapter
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
		if *flagChapter == "" {
			cfg.Scene.Chapter = ChapterModel
		}
	}
	if *flagWireframe {
		cfg.Scene.Wireframe = true
	}
	if *flagLevel {
		cfg.Camera.LevelMovement = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
