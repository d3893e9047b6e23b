package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

func assertBasis(t *testing.T, c *FlyCamera) {
	t.Helper()
	f, r, u := c.Front(), c.Right(), c.Up()
	assert.InDelta(t, 1, f.Len(), epsilon, "front length")
	assert.InDelta(t, 1, r.Len(), epsilon, "right length")
	assert.InDelta(t, 1, u.Len(), epsilon, "up length")
	assert.InDelta(t, 0, f.Dot(r), epsilon, "front.right")
	assert.InDelta(t, 0, f.Dot(u), epsilon, "front.up")
	assert.InDelta(t, 0, r.Dot(u), epsilon, "right.up")
}

func TestDefaultFlyCamera(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position)
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assert.Equal(t, float32(45), c.Zoom())

	// yaw -90 looks down -Z
	assert.True(t, c.Front().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, epsilon), "front %v", c.Front())
	assert.True(t, c.Right().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, epsilon), "right %v", c.Right())
	assert.True(t, c.Up().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, epsilon), "up %v", c.Up())
	assertBasis(t, c)
}

func TestNewFlyCameraClampsConfig(t *testing.T) {
	cfg := DefaultFlyConfig()
	cfg.Pitch = 120
	cfg.Zoom = 90
	cfg.WorldUp = mgl32.Vec3{}

	c := NewFlyCamera(cfg)
	assert.Equal(t, MaxPitch, c.Pitch())
	assert.Equal(t, MaxZoom, c.Zoom())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.WorldUp())
	assertBasis(t, c)
}

func TestApplyLookKeepsBasisOrthonormal(t *testing.T) {
	for yaw := float32(-720); yaw <= 720; yaw += 37 {
		for pitch := float32(-88); pitch <= 88; pitch += 11 {
			c := NewFlyCamera(DefaultFlyConfig())
			c.MouseSensitivity = 1
			c.ApplyLook(yaw-c.Yaw(), pitch)
			require.InDelta(t, pitch, c.Pitch(), epsilon)
			assertBasis(t, c)
		}
	}
}

func TestApplyLookPitchClamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas [][2]float32
		want   float32
	}{
		{"single large up", [][2]float32{{0, 10000}}, MaxPitch},
		{"single large down", [][2]float32{{0, -10000}}, MinPitch},
		{"accumulated up", [][2]float32{{0, 500}, {0, 500}, {0, 500}}, MaxPitch},
		{"up then back", [][2]float32{{0, 5000}, {0, -100}}, MaxPitch - 10},
		{"mixed yaw", [][2]float32{{300, -400}, {-1200, -900}}, MinPitch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera(DefaultFlyConfig())
			for _, d := range tt.deltas {
				c.ApplyLook(d[0], d[1])
				require.GreaterOrEqual(t, c.Pitch(), MinPitch)
				require.LessOrEqual(t, c.Pitch(), MaxPitch)
			}
			assert.InDelta(t, tt.want, c.Pitch(), epsilon)
			assertBasis(t, c)
		})
	}
}

func TestApplyLookYawUnbounded(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	for i := 0; i < 100; i++ {
		c.ApplyLook(100, 0)
	}
	assert.InDelta(t, -90+100*100*0.1, c.Yaw(), 1e-2)
	assertBasis(t, c)
}

func TestApplyZoomClamp(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())

	steps := []float32{1, 5, 100, -3, -1000, 44, 0.5, -0.25}
	for _, s := range steps {
		c.ApplyZoom(s)
		require.GreaterOrEqual(t, c.Zoom(), MinZoom, "after %v", s)
		require.LessOrEqual(t, c.Zoom(), MaxZoom, "after %v", s)
	}

	c.Reset()
	c.ApplyZoom(5)
	assert.Equal(t, float32(40), c.Zoom())
	c.ApplyZoom(-10)
	assert.Equal(t, MaxZoom, c.Zoom())
}

func TestApplyMovementZeroElapsed(t *testing.T) {
	for _, dir := range []Direction{Forward, Backward, Left, Right} {
		t.Run(dir.String(), func(t *testing.T) {
			c := NewFlyCamera(DefaultFlyConfig())
			c.ApplyLook(123, 45)
			before := c.Position
			c.ApplyMovement(dir, 0)
			assert.Equal(t, before, c.Position)
			c.ApplyMovement(dir, -1)
			assert.Equal(t, before, c.Position)
		})
	}
}

func TestApplyMovementDirections(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, 3 - 2.5}},
		{Backward, mgl32.Vec3{0, 0, 3 + 2.5}},
		{Left, mgl32.Vec3{-2.5, 0, 3}},
		{Right, mgl32.Vec3{2.5, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := NewFlyCamera(DefaultFlyConfig())
			c.ApplyMovement(tt.dir, 1)
			assert.True(t, c.Position.ApproxEqualThreshold(tt.want, epsilon), "got %v want %v", c.Position, tt.want)
		})
	}
}

func TestLevelMovement(t *testing.T) {
	cfg := DefaultFlyConfig()
	cfg.Pitch = 45

	free := NewFlyCamera(cfg)
	free.ApplyMovement(Forward, 1)
	assert.Greater(t, free.Position.Y(), float32(1), "free flight should climb when looking up")

	cfg.LevelMovement = true
	level := NewFlyCamera(cfg)
	level.ApplyMovement(Forward, 1)
	assert.InDelta(t, 0, level.Position.Y(), epsilon)
	// Full speed is kept on the horizontal plane.
	assert.InDelta(t, 2.5, level.Position.Sub(mgl32.Vec3{0, 0, 3}).Len(), epsilon)
}

func TestLevelMovementLookingStraightUp(t *testing.T) {
	cfg := DefaultFlyConfig()
	cfg.LevelMovement = true
	cfg.WorldUp = mgl32.Vec3{0, 0, -1} // front is parallel to world up
	c := NewFlyCamera(cfg)

	before := c.Position
	c.ApplyMovement(Forward, 1)
	assert.Equal(t, before, c.Position)
	for _, v := range c.Position {
		assert.False(t, math32.IsNaN(v))
	}
}

func TestNonFiniteInputsIgnored(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	nan := math32.NaN()
	inf := math32.Inf(1)

	c.ApplyLook(nan, 1)
	c.ApplyLook(1, inf)
	c.ApplyZoom(nan)
	c.ApplyMovement(Forward, inf)

	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assert.Equal(t, float32(45), c.Zoom())
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position)
}

func TestViewMatrix(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	view := c.ViewMatrix()

	// The eye maps to the origin and the front direction maps to -Z.
	eye := view.Mul4x1(c.Position.Vec4(1)).Vec3()
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec3{}, epsilon), "eye %v", eye)

	ahead := view.Mul4x1(c.Position.Add(c.Front()).Vec4(1)).Vec3()
	assert.True(t, ahead.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, epsilon), "ahead %v", ahead)

	// Pure: calling twice yields the same matrix.
	assert.Equal(t, view, c.ViewMatrix())
}

func TestProjectionUsesZoom(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	want := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)
	assert.Equal(t, want, c.Projection(4.0/3.0, 0.1, 100))

	c.ApplyZoom(15)
	want = mgl32.Perspective(mgl32.DegToRad(30), 1, 0.1, 100)
	assert.Equal(t, want, c.Projection(0, 0.1, 100))
}

func TestReset(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	c.ApplyLook(250, 300)
	c.ApplyZoom(20)
	c.ApplyMovement(Right, 3)
	c.MovementSpeed = 10

	c.Reset()
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position)
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assert.Equal(t, float32(45), c.Zoom())
	assert.Equal(t, float32(2.5), c.MovementSpeed)
}

func TestLookAt(t *testing.T) {
	c := NewFlyCamera(DefaultFlyConfig())
	c.LookAt(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 0, 0})

	assert.True(t, c.Front().ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, epsilon), "front %v", c.Front())
	assertBasis(t, c)

	// Degenerate target keeps the current orientation.
	front := c.Front()
	c.LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, front, c.Front())
}
