// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement request, independent of any window system key codes.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Limits for the camera angles, in degrees.
const (
	MaxPitch float32 = 89
	MinPitch float32 = -89
	MinZoom  float32 = 1
	MaxZoom  float32 = 45
)

// FlyConfig holds the construction parameters of a FlyCamera.
type FlyConfig struct {
	Position    mgl32.Vec3
	WorldUp     mgl32.Vec3
	Yaw         float32 // degrees
	Pitch       float32 // degrees
	Speed       float32 // world units per second
	Sensitivity float32 // degrees per cursor unit
	Zoom        float32 // vertical field of view, degrees

	// LevelMovement keeps W/A/S/D motion on the plane orthogonal to WorldUp.
	LevelMovement bool
}

// DefaultFlyConfig returns the classic free-look setup: looking down -Z from (0, 0, 3).
func DefaultFlyConfig() FlyConfig {
	return FlyConfig{
		Position:    mgl32.Vec3{0, 0, 3},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Pitch:       0,
		Speed:       2.5,
		Sensitivity: 0.1,
		Zoom:        45,
	}
}

// FlyCamera is a first-person camera driven by yaw/pitch angles.
// The front/right/up basis is always derived from the angles and WorldUp.
type FlyCamera struct {
	Position mgl32.Vec3

	MovementSpeed    float32
	MouseSensitivity float32
	LevelMovement    bool

	front, right, up mgl32.Vec3
	worldUp          mgl32.Vec3

	yaw, pitch float32
	zoom       float32

	initial FlyConfig
}

// NewFlyCamera creates a fly camera from cfg. Out-of-range pitch and zoom are clamped.
func NewFlyCamera(cfg FlyConfig) *FlyCamera {
	c := &FlyCamera{}
	c.apply(cfg)
	return c
}

func (c *FlyCamera) apply(cfg FlyConfig) {
	worldUp := cfg.WorldUp
	if worldUp.Len() == 0 {
		worldUp = mgl32.Vec3{0, 1, 0}
	}
	cfg.WorldUp = worldUp.Normalize()
	c.initial = cfg

	c.Position = cfg.Position
	c.worldUp = cfg.WorldUp
	c.MovementSpeed = cfg.Speed
	c.MouseSensitivity = cfg.Sensitivity
	c.LevelMovement = cfg.LevelMovement
	c.yaw = cfg.Yaw
	c.pitch = clamp(cfg.Pitch, MinPitch, MaxPitch)
	c.zoom = clamp(cfg.Zoom, MinZoom, MaxZoom)

	// Seed right so updateVectors has a fallback if the first cross product degenerates.
	c.right = mgl32.Vec3{1, 0, 0}
	c.updateVectors()
}

// Reset restores the state the camera was constructed with.
func (c *FlyCamera) Reset() {
	c.apply(c.initial)
}

// ViewMatrix returns the world-to-eye transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// Projection returns a perspective projection using the current zoom as vertical FOV.
func (c *FlyCamera) Projection(aspect, near, far float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

// ApplyMovement moves the camera along its basis by MovementSpeed*elapsed.
func (c *FlyCamera) ApplyMovement(dir Direction, elapsed float32) {
	if !finite(elapsed) || elapsed <= 0 {
		return
	}

	var move mgl32.Vec3
	switch dir {
	case Forward:
		move = c.front
	case Backward:
		move = c.front.Mul(-1)
	case Left:
		move = c.right.Mul(-1)
	case Right:
		move = c.right
	default:
		return
	}

	if c.LevelMovement {
		move = move.Sub(c.worldUp.Mul(move.Dot(c.worldUp)))
	}

	// Looking straight along WorldUp with level movement leaves nothing to normalize.
	if move.Len() < 1e-6 {
		return
	}

	c.Position = c.Position.Add(move.Normalize().Mul(c.MovementSpeed * elapsed))
}

// ApplyLook turns the camera by a cursor offset. Pitch is clamped to [-89, 89];
// yaw accumulates without wrapping.
func (c *FlyCamera) ApplyLook(deltaX, deltaY float32) {
	if !finite(deltaX) || !finite(deltaY) {
		return
	}
	c.yaw += deltaX * c.MouseSensitivity
	c.pitch = clamp(c.pitch+deltaY*c.MouseSensitivity, MinPitch, MaxPitch)
	c.updateVectors()
}

// ApplyZoom narrows the field of view by a scroll offset, clamped to [1, 45] degrees.
func (c *FlyCamera) ApplyZoom(deltaScroll float32) {
	if !finite(deltaScroll) {
		return
	}
	c.zoom = clamp(c.zoom-deltaScroll, MinZoom, MaxZoom)
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit camera-up vector.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// WorldUp returns the reference up direction.
func (c *FlyCamera) WorldUp() mgl32.Vec3 { return c.worldUp }

// Yaw returns the accumulated yaw in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Zoom returns the vertical field of view in degrees.
func (c *FlyCamera) Zoom() float32 { return c.zoom }

// LookAt places the camera at eye and aims it at target by solving for yaw and pitch.
func (c *FlyCamera) LookAt(eye, target mgl32.Vec3) {
	c.Position = eye
	dir := target.Sub(eye)
	if dir.Len() < 1e-6 {
		return
	}
	dir = dir.Normalize()
	c.pitch = clamp(mgl32.RadToDeg(math32.Asin(clamp(dir.Y(), -1, 1))), MinPitch, MaxPitch)
	c.yaw = mgl32.RadToDeg(math32.Atan2(dir.Z(), dir.X()))
	c.updateVectors()
}

func (c *FlyCamera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()

	right := c.front.Cross(c.worldUp)
	if right.Len() > 1e-6 {
		c.right = right.Normalize()
	}
	c.up = c.right.Cross(c.front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
