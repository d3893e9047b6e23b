package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/engine/camera"
	"github.com/Faultbox/glchapters/internal/engine/debug"
	"github.com/Faultbox/glchapters/internal/engine/gpu"
	"github.com/Faultbox/glchapters/internal/engine/importer"
	"github.com/Faultbox/glchapters/internal/engine/input"
	"github.com/Faultbox/glchapters/internal/engine/model"
	"github.com/Faultbox/glchapters/internal/engine/renderer"
	"github.com/Faultbox/glchapters/internal/engine/shader"
	"github.com/Faultbox/glchapters/internal/engine/texture"
	"github.com/Faultbox/glchapters/internal/logger"
)

// modelChapter flies a camera around an imported model.
type modelChapter struct {
	cfg     *config.Config
	log     *zap.Logger
	cam     *camera.FlyCamera
	program *shader.Program
	model   *model.Model
	watcher *shader.Watcher
	near    float32
	far     float32

	// bounds outlines the model's bounding box while showBounds is set.
	bounds     *renderer.Lines
	lines      *shader.Program
	showBounds bool
}

func newModelChapter(cfg *config.Config) (*modelChapter, error) {
	c := &modelChapter{
		cfg:        cfg,
		log:        logger.Named("model-chapter"),
		near:       cfg.Camera.Near,
		far:        cfg.Camera.Far,
		showBounds: cfg.Scene.ShowBounds,
	}

	src, err := c.shaderSource()
	if err != nil {
		return nil, err
	}
	if c.program, err = shader.NewProgram("model", src); err != nil {
		return nil, err
	}

	if cfg.Shaders.Watch && hasShaderFiles(cfg.Shaders) {
		c.watcher, err = shader.NewWatcher(cfg.Shaders.Vertex, cfg.Shaders.Fragment)
		if err != nil {
			c.log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	loader := model.NewLoader(
		importer.NewDefaultRegistry(logger.L()),
		texture.NewFileDecoder(cfg.Scene.FlipTextures),
		gpu.NewGLDevice(),
		logger.L(),
	)
	loader.Options.FlipUVs = cfg.Scene.FlipUVs

	// A failed load still yields an empty model; the camera stays usable.
	c.model, err = loader.Load(cfg.Scene.Model)
	if err != nil {
		c.log.Error("model not loaded", zap.Error(err))
	}
	for _, terr := range multierr.Errors(c.model.TextureErrors()) {
		c.log.Warn("missing texture", zap.Error(terr))
	}

	flyCfg := flyConfig(cfg.Camera)
	if cfg.Camera.FrameModel {
		if eye, target, far, ok := frameBounds(c.model.Bounds(), flyCfg.Zoom); ok {
			flyCfg = lookAtConfig(flyCfg, eye, target)
			if far > c.far {
				c.far = far
			}
		}
	}
	c.cam = camera.NewFlyCamera(flyCfg)

	if err := c.buildBounds(); err != nil {
		c.log.Warn("bounds overlay disabled", zap.Error(err))
	}

	return c, nil
}

func (c *modelChapter) name() string { return config.ChapterModel }

func (c *modelChapter) shaderSource() (shader.Source, error) {
	if hasShaderFiles(c.cfg.Shaders) {
		return shader.ReadSource(c.cfg.Shaders.Vertex, c.cfg.Shaders.Fragment)
	}
	return builtinSource("model")
}

func (c *modelChapter) update(f *frame) {
	c.reloadShaders()

	for _, dir := range heldDirections(f.in.IsKeyDown) {
		c.cam.ApplyMovement(dir, f.dt)
	}

	for _, ev := range f.in.Events() {
		switch ev.Type {
		case input.EventMouseMove:
			dx, dy := lookDelta(ev, f.captured, f.tracker)
			c.cam.ApplyLook(dx, dy)
		case input.EventMouseWheel:
			c.cam.ApplyZoom(float32(ev.WheelY))
		}
	}

	if f.tracker.Pressed(int(sdl.SCANCODE_B), f.in.IsKeyDown(sdl.SCANCODE_B)) {
		c.showBounds = !c.showBounds
	}
	if f.tracker.Pressed(int(sdl.SCANCODE_BACKSPACE), f.in.IsKeyDown(sdl.SCANCODE_BACKSPACE)) {
		c.cam.Reset()
		f.tracker.ResetCursor()
	}
}

func (c *modelChapter) draw(f *frame) {
	c.program.Use()
	c.program.SetMat4("projection", c.cam.Projection(f.aspect, c.near, c.far))
	c.program.SetMat4("view", c.cam.ViewMatrix())
	c.program.SetMat4("model", mgl32.Ident4())
	c.model.Draw(c.program)

	if c.showBounds && c.bounds != nil {
		mvp := c.cam.Projection(f.aspect, c.near, c.far).Mul4(c.cam.ViewMatrix())
		c.lines.Use()
		c.lines.SetMat4("mvp", mvp)
		c.lines.SetVec4("color", mgl32.Vec4{1, 1, 0, 1})
		c.bounds.Draw()
	}
}

// buildBounds uploads the outline of the model bounds. Empty models get none.
func (c *modelChapter) buildBounds() error {
	b := c.model.Bounds()
	if b.Empty() {
		return nil
	}
	lines, err := builtinProgram("lines")
	if err != nil {
		return err
	}
	pad := b.Radius() * 0.01
	geom, err := renderer.NewLines(debug.BoxLines(b.Min, b.Max, pad))
	if err != nil {
		lines.Delete()
		return err
	}
	c.lines, c.bounds = lines, geom
	return nil
}

// reloadShaders rebuilds the program when a watched source changed. A failed
// build keeps the previous program.
func (c *modelChapter) reloadShaders() {
	if c.watcher == nil {
		return
	}
	changed := c.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	src, err := shader.ReadSource(c.cfg.Shaders.Vertex, c.cfg.Shaders.Fragment)
	if err != nil {
		c.log.Warn("shader reload failed", zap.Error(err))
		return
	}
	if err := c.program.Reload(src); err == nil {
		c.log.Info("shaders reloaded", zap.Strings("changed", changed))
	}
}

func (c *modelChapter) close() {
	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			c.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if c.bounds != nil {
		c.bounds.Delete()
		c.lines.Delete()
	}
	c.model.Release()
	c.program.Delete()
}

func hasShaderFiles(s config.ShaderConfig) bool {
	return s.Vertex != "" && s.Fragment != ""
}
