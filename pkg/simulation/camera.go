package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

// Camera is an orthographic view turning around the vertical axis and
// looking down at a fixed pitch.
type Camera struct {
	CenterX, CenterY float64 // screen position of the world origin
	Scale            float64 // pixels per world unit
	Yaw              float64
	Pitch            float64 // 0 looks horizontally, Pi/2 straight down
}

// Project returns the screen coordinates of p.
func (c *Camera) Project(p geometry.Vector3D) (float64, float64) {
	r := p.RotateY(c.Yaw)
	sin, cos := math.Sincos(c.Pitch)
	return c.CenterX + r.X()*c.Scale,
		c.CenterY + (r.Z()*sin-r.Y()*cos)*c.Scale
}

// Unproject returns the world point at height y drawn at screen (sx, sy).
// It returns false when the view is horizontal and the plane has no depth.
func (c *Camera) Unproject(sx, sy, y float64) (geometry.Vector3D, bool) {
	sin, cos := math.Sincos(c.Pitch)
	if math.Abs(sin) < geometry.Epsilon || c.Scale == 0 {
		return geometry.Zero, false
	}
	rx := (sx - c.CenterX) / c.Scale
	rz := ((sy-c.CenterY)/c.Scale + y*cos) / sin
	return geometry.NewVector(rx, y, rz).RotateY(-c.Yaw), true
}
