package geometry

import "fmt"

// Box is an axis-aligned bounding box described by its lowest corner and a
// non-negative size extending toward +x, +y and +z.
type Box struct {
	Origin Vector3D `json:"origin" toml:"origin"`
	Size   Vector3D `json:"size" toml:"size"`
}

// Segment is a straight line between two points, used for debug drawing.
type Segment [2]Vector3D

// NewBox creates a Box from its origin corner and size.
func NewBox(origin, size Vector3D) Box {
	return Box{Origin: origin, Size: size}
}

// String implements the fmt.Stringer interface.
func (b Box) String() string {
	return fmt.Sprintf("[%s +%s]", b.Origin, b.Size)
}

// Max returns the corner opposite to Origin.
func (b Box) Max() Vector3D {
	return b.Origin.Add(b.Size)
}

// Center returns the middle point of the box.
func (b Box) Center() Vector3D {
	return b.Origin.Add(b.Size.Mul(0.5))
}

// MinDimension returns the smallest of the three sizes.
func (b Box) MinDimension() float64 {
	return min(b.Size[0], b.Size[1], b.Size[2])
}

// At returns the point at the fractions (u, v, w) of the box along x, y and z.
// (0,0,0) is Origin and (1,1,1) is Max.
func (b Box) At(u, v, w float64) Vector3D {
	return b.Origin.Add(Vector3D{b.Size[0] * u, b.Size[1] * v, b.Size[2] * w})
}

// Octant returns the i-th of the 8 equal boxes obtained by halving each axis.
// Bit 0 of i selects the upper x half, bit 1 the upper y half, bit 2 the upper z half,
// so the enumeration is (0,0,0), (x,0,0), (0,y,0), (x,y,0), (0,0,z), (x,0,z), (0,y,z), (x,y,z).
func (b Box) Octant(i int) Box {
	half := b.Size.Mul(0.5)
	offset := Vector3D{}
	if i&1 != 0 {
		offset[0] = half[0]
	}
	if i&2 != 0 {
		offset[1] = half[1]
	}
	if i&4 != 0 {
		offset[2] = half[2]
	}
	return Box{Origin: b.Origin.Add(offset), Size: half}
}

// Contains reports whether p lies inside the box, faces included.
func (b Box) Contains(p Vector3D) bool {
	hi := b.Max()
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Origin[axis] || p[axis] > hi[axis] {
			return false
		}
	}
	return true
}

// ContainsInset reports whether p lies strictly inside the box once every
// face has been moved inward by inset.
func (b Box) ContainsInset(p Vector3D, inset float64) bool {
	hi := b.Max()
	for axis := 0; axis < 3; axis++ {
		if p[axis] <= b.Origin[axis]+inset || p[axis] >= hi[axis]-inset {
			return false
		}
	}
	return true
}

// Edges returns the 12 edges of the box.
func (b Box) Edges() [12]Segment {
	lo, hi := b.Origin, b.Max()
	c := func(x, y, z bool) Vector3D {
		v := lo
		if x {
			v[0] = hi[0]
		}
		if y {
			v[1] = hi[1]
		}
		if z {
			v[2] = hi[2]
		}
		return v
	}
	return [12]Segment{
		// bottom face
		{c(false, false, false), c(true, false, false)},
		{c(true, false, false), c(true, false, true)},
		{c(true, false, true), c(false, false, true)},
		{c(false, false, true), c(false, false, false)},
		// top face
		{c(false, true, false), c(true, true, false)},
		{c(true, true, false), c(true, true, true)},
		{c(true, true, true), c(false, true, true)},
		{c(false, true, true), c(false, true, false)},
		// verticals
		{c(false, false, false), c(false, true, false)},
		{c(true, false, false), c(true, true, false)},
		{c(true, false, true), c(true, true, true)},
		{c(false, false, true), c(false, true, true)},
	}
}
