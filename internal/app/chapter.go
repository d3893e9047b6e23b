package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/engine/input"
	"github.com/Faultbox/glchapters/internal/engine/renderer"
	"github.com/Faultbox/glchapters/internal/engine/shader"
)

// frame carries per-frame state from the loop to the chapter.
type frame struct {
	dt       float32
	elapsed  float32
	aspect   float32
	in       *input.Input
	tracker  *input.Tracker
	captured bool
}

type chapter interface {
	name() string
	update(f *frame)
	draw(f *frame)
	close()
}

func newChapter(cfg *config.Config) (chapter, error) {
	switch cfg.Scene.Chapter {
	case config.ChapterTriangle:
		return newTriangleChapter()
	case config.ChapterRectangle:
		return newRectangleChapter()
	case config.ChapterShapes:
		return newShapesChapter()
	case config.ChapterModel:
		return newModelChapter(cfg)
	}
	return nil, fmt.Errorf("unknown chapter %q", cfg.Scene.Chapter)
}

// builtinProgram compiles one of the renderer's embedded shader pairs.
func builtinProgram(name string) (*shader.Program, error) {
	src, err := builtinSource(name)
	if err != nil {
		return nil, err
	}
	return shader.NewProgram(name, src)
}

// triangleChapter draws a per-vertex coloured triangle through an index
// buffer, shifted by the offset uniform.
type triangleChapter struct {
	program *shader.Program
	prim    *renderer.Primitive
	offset  float32
}

func newTriangleChapter() (*triangleChapter, error) {
	program, err := builtinProgram("triangle")
	if err != nil {
		return nil, err
	}
	prim, err := renderer.NewPrimitive("triangle", renderer.TriangleGeometry())
	if err != nil {
		program.Delete()
		return nil, err
	}
	return &triangleChapter{program: program, prim: prim, offset: 0.5}, nil
}

func (c *triangleChapter) name() string    { return config.ChapterTriangle }
func (c *triangleChapter) update(_ *frame) {}

func (c *triangleChapter) draw(_ *frame) {
	c.program.Use()
	c.program.SetFloat("offset", c.offset)
	c.prim.Draw()
}

func (c *triangleChapter) close() {
	c.prim.Delete()
	c.program.Delete()
}

// rectangleChapter draws a quad from four shared vertices.
type rectangleChapter struct {
	program *shader.Program
	prim    *renderer.Primitive
}

func newRectangleChapter() (*rectangleChapter, error) {
	program, err := builtinProgram("flat")
	if err != nil {
		return nil, err
	}
	prim, err := renderer.NewPrimitive("rectangle", renderer.RectangleGeometry())
	if err != nil {
		program.Delete()
		return nil, err
	}
	return &rectangleChapter{program: program, prim: prim}, nil
}

func (c *rectangleChapter) name() string    { return config.ChapterRectangle }
func (c *rectangleChapter) update(_ *frame) {}

func (c *rectangleChapter) draw(_ *frame) {
	c.program.Use()
	c.program.SetVec4("color", mgl32.Vec4{1.0, 0.5, 0.2, 1.0})
	c.prim.Draw()
}

func (c *rectangleChapter) close() {
	c.prim.Delete()
	c.program.Delete()
}

// shapesChapter draws two objects, each with its own shader program.
type shapesChapter struct {
	flat, pulse *shader.Program
	left, right *renderer.Primitive
}

func newShapesChapter() (_ *shapesChapter, err error) {
	c := &shapesChapter{}
	defer func() {
		if err != nil {
			c.close()
		}
	}()

	if c.flat, err = builtinProgram("flat"); err != nil {
		return nil, err
	}
	if c.pulse, err = builtinProgram("pulse"); err != nil {
		return nil, err
	}
	lg, rg := renderer.ShapesGeometry()
	if c.left, err = renderer.NewPrimitive("shape-left", lg); err != nil {
		return nil, err
	}
	if c.right, err = renderer.NewPrimitive("shape-right", rg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *shapesChapter) name() string    { return config.ChapterShapes }
func (c *shapesChapter) update(_ *frame) {}

func (c *shapesChapter) draw(f *frame) {
	c.flat.Use()
	c.flat.SetVec4("color", mgl32.Vec4{1.0, 0.5, 0.2, 1.0})
	c.left.Draw()

	c.pulse.Use()
	c.pulse.SetVec4("color", mgl32.Vec4{0.0, 0.0, 0.0, 1.0})
	c.pulse.SetFloat("time", f.elapsed)
	c.right.Draw()
}

func (c *shapesChapter) close() {
	for _, p := range []*renderer.Primitive{c.left, c.right} {
		if p != nil {
			p.Delete()
		}
	}
	for _, p := range []*shader.Program{c.flat, c.pulse} {
		if p != nil {
			p.Delete()
		}
	}
}
