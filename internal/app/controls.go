package app

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/glchapters/internal/config"
	"github.com/Faultbox/glchapters/internal/engine/camera"
	"github.com/Faultbox/glchapters/internal/engine/input"
	"github.com/Faultbox/glchapters/internal/engine/model"
	"github.com/Faultbox/glchapters/internal/engine/renderer"
	"github.com/Faultbox/glchapters/internal/engine/shader"
)

var movementKeys = []struct {
	key sdl.Scancode
	dir camera.Direction
}{
	{sdl.SCANCODE_W, camera.Forward},
	{sdl.SCANCODE_S, camera.Backward},
	{sdl.SCANCODE_A, camera.Left},
	{sdl.SCANCODE_D, camera.Right},
}

// heldDirections returns the movement directions whose keys are down.
func heldDirections(down func(sdl.Scancode) bool) []camera.Direction {
	var dirs []camera.Direction
	for _, mk := range movementKeys {
		if down(mk.key) {
			dirs = append(dirs, mk.dir)
		}
	}
	return dirs
}

// lookDelta turns a motion event into a yaw/pitch offset. Captured cursors
// report relative motion; free cursors go through the tracker.
func lookDelta(ev input.Event, captured bool, tr *input.Tracker) (dx, dy float32) {
	if captured {
		return float32(ev.RelX), -float32(ev.RelY)
	}
	return tr.CursorDelta(float32(ev.MouseX), float32(ev.MouseY))
}

func flyConfig(cc config.CameraConfig) camera.FlyConfig {
	fc := camera.DefaultFlyConfig()
	fc.Position = mgl32.Vec3(cc.Position)
	fc.Yaw = cc.Yaw
	fc.Pitch = cc.Pitch
	fc.LevelMovement = cc.LevelMovement
	if cc.Speed > 0 {
		fc.Speed = cc.Speed
	}
	if cc.Sensitivity > 0 {
		fc.Sensitivity = cc.Sensitivity
	}
	if cc.Zoom > 0 {
		fc.Zoom = cc.Zoom
	}
	return fc
}

// lookAtConfig returns fc with position, yaw and pitch aimed from eye to target.
func lookAtConfig(fc camera.FlyConfig, eye, target mgl32.Vec3) camera.FlyConfig {
	c := camera.NewFlyCamera(fc)
	c.LookAt(eye, target)
	fc.Position = c.Position
	fc.Yaw = c.Yaw()
	fc.Pitch = c.Pitch()
	return fc
}

// frameBounds places an eye on +Z far enough for the bounding sphere to fit a
// vertical field of view of fovDeg, and returns a far plane that contains it.
func frameBounds(b model.Bounds, fovDeg float32) (eye, target mgl32.Vec3, far float32, ok bool) {
	if b.Empty() {
		return eye, target, 0, false
	}
	target = b.Center()
	r := b.Radius()
	if r <= 0 {
		r = 1
	}
	half := mgl32.DegToRad(fovDeg) / 2
	dist := r / math32.Sin(half)
	eye = target.Add(mgl32.Vec3{0, 0, dist})
	return eye, target, (dist + r) * 2, true
}

func builtinSource(name string) (shader.Source, error) {
	return renderer.ShaderSource(name)
}
