package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/engine/camera"
	"github.com/Faultbox/glchapters/internal/engine/input"
	"github.com/Faultbox/glchapters/internal/engine/model"
)

func TestHeldDirections(t *testing.T) {
	tests := []struct {
		name string
		down []sdl.Scancode
		want []camera.Direction
	}{
		{"none", nil, nil},
		{"forward", []sdl.Scancode{sdl.SCANCODE_W}, []camera.Direction{camera.Forward}},
		{"strafe", []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_A}, []camera.Direction{camera.Left, camera.Right}},
		{"all", []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_S, sdl.SCANCODE_A, sdl.SCANCODE_D},
			[]camera.Direction{camera.Forward, camera.Backward, camera.Left, camera.Right}},
		{"unrelated", []sdl.Scancode{sdl.SCANCODE_Q}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := make(map[sdl.Scancode]bool)
			for _, k := range tt.down {
				held[k] = true
			}
			got := heldDirections(func(k sdl.Scancode) bool { return held[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookDeltaCaptured(t *testing.T) {
	tr := input.NewTracker()
	dx, dy := lookDelta(input.Event{Type: input.EventMouseMove, RelX: 4, RelY: 3}, true, tr)
	assert.Equal(t, float32(4), dx)
	assert.Equal(t, float32(-3), dy, "moving the mouse down pitches down")
}

func TestLookDeltaFreeCursor(t *testing.T) {
	tr := input.NewTracker()
	dx, dy := lookDelta(input.Event{MouseX: 100, MouseY: 100}, false, tr)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	dx, dy = lookDelta(input.Event{MouseX: 110, MouseY: 95}, false, tr)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(5), dy)
}

func TestFlyConfigFromCameraConfig(t *testing.T) {
	cc := config.Default().Camera
	cc.Position = [3]float32{1, 2, 3}
	cc.LevelMovement = true

	fc := flyConfig(cc)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, fc.Position)
	assert.Equal(t, float32(-90), fc.Yaw)
	assert.Equal(t, float32(2.5), fc.Speed)
	assert.Equal(t, float32(0.1), fc.Sensitivity)
	assert.Equal(t, float32(45), fc.Zoom)
	assert.True(t, fc.LevelMovement)

	fc = flyConfig(config.CameraConfig{})
	def := camera.DefaultFlyConfig()
	assert.Equal(t, def.Speed, fc.Speed, "zero speed keeps the default")
	assert.Equal(t, def.Zoom, fc.Zoom)
}

func TestFrameBounds(t *testing.T) {
	_, _, _, ok := frameBounds(model.Bounds{}, 45)
	assert.False(t, ok, "empty bounds")

	var b model.Bounds
	b.Extend(mgl32.Vec3{-1, -1, -1})
	b.Extend(mgl32.Vec3{1, 1, 1})

	eye, target, far, ok := frameBounds(b, 45)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, target)
	assert.InDelta(t, 0, eye.X(), 1e-5)
	assert.InDelta(t, 0, eye.Y(), 1e-5)
	assert.Greater(t, eye.Z(), b.Radius())
	assert.Greater(t, far, eye.Z()+b.Radius())
}

func TestLookAtConfigAimsAtTarget(t *testing.T) {
	fc := lookAtConfig(camera.DefaultFlyConfig(), mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, fc.Position)
	assert.InDelta(t, -90, fc.Yaw, 1e-3)
	assert.InDelta(t, 0, fc.Pitch, 1e-3)

	cam := camera.NewFlyCamera(fc)
	front := cam.Front()
	assert.InDelta(t, -1, front.Z(), 1e-5)
}

func TestHasShaderFiles(t *testing.T) {
	assert.False(t, hasShaderFiles(config.ShaderConfig{}))
	assert.False(t, hasShaderFiles(config.ShaderConfig{Vertex: "a.vert"}))
	assert.True(t, hasShaderFiles(config.ShaderConfig{Vertex: "a.vert", Fragment: "a.frag"}))
}

func TestBuiltinModelSource(t *testing.T) {
	src, err := builtinSource("model")
	require.NoError(t, err)
	assert.Contains(t, src.Fragment, "material.diffuse1")
}
