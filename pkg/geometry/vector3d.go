package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the precision used for approximate float comparisons.
const (
	Epsilon = 1e-9
)

// Vector3D is a 3D vector or point in cartesian space.
// It shares its memory layout with mgl64.Vec3, so conversions are free and
// the heavy lifting (dot, cross, length) is delegated to mathgl.
// A literal reads naturally: v := Vector3D{1, 2, 3}
type Vector3D mgl64.Vec3

// Zero is the origin / null vector.
var Zero = Vector3D{}

// NewVector creates a new Vector3D.
func NewVector(x, y, z float64) Vector3D {
	return Vector3D{x, y, z}
}

// FromVec3 wraps a mathgl vector.
func FromVec3(v mgl64.Vec3) Vector3D {
	return Vector3D(v)
}

// Vec3 returns the underlying mathgl vector.
func (v Vector3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// X returns the x component.
func (v Vector3D) X() float64 { return v[0] }

// Y returns the y component.
func (v Vector3D) Y() float64 { return v[1] }

// Z returns the z component.
func (v Vector3D) Z() float64 { return v[2] }

// ---------------------------------------------------------------------
// Stringer Interface
// ---------------------------------------------------------------------

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers returning new values: vectors are small and immutable.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D(mgl64.Vec3(v).Add(mgl64.Vec3(other)))
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D(mgl64.Vec3(v).Sub(mgl64.Vec3(other)))
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D(mgl64.Vec3(v).Mul(scalar))
}

// Div scales the vector by 1/scalar.
// Dividing by zero returns an Inf vector together with an error.
func (v Vector3D) Div(scalar float64) (Vector3D, error) {
	if scalar == 0 {
		return Vector3D{math.Inf(1), math.Inf(1), math.Inf(1)}, errors.New("vector cannot be divided by zero")
	}
	return Vector3D{v[0] / scalar, v[1] / scalar, v[2] / scalar}, nil
}

// DivNonZero divides every component that is not already zero by scalar,
// leaving zero components untouched. A zero scalar returns v unchanged.
func (v Vector3D) DivNonZero(scalar float64) Vector3D {
	if scalar == 0 {
		return v
	}
	for i := range v {
		if v[i] != 0 {
			v[i] /= scalar
		}
	}
	return v
}

// ---------------------------------------------------------------------
// Vector Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return mgl64.Vec3(v).Dot(mgl64.Vec3(other))
}

// Cross calculates the cross product v × other.
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D(mgl64.Vec3(v).Cross(mgl64.Vec3(other)))
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons, it avoids the square root.
func (v Vector3D) LenSqr() float64 {
	return mgl64.Vec3(v).LenSqr()
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return mgl64.Vec3(v).Len()
}

// Normalize returns a unit vector in the same direction.
// Only the zero vector normalizes to zero; mgl64 would return NaN components
// in that case.
func (v Vector3D) Normalize() Vector3D {
	m := max(math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2]))
	if m == 0 {
		return Zero
	}
	// scaled first so tiny components do not underflow when squared
	return Vector3D(mgl64.Vec3{v[0] / m, v[1] / m, v[2] / m}.Normalize())
}

// ClampLen rescales v to maxLen when it is longer, otherwise returns v.
func (v Vector3D) ClampLen(maxLen float64) Vector3D {
	l := v.Len()
	if l > maxLen && l > 0 {
		return v.Mul(maxLen / l)
	}
	return v
}

// IsZero reports whether every component is exactly zero.
func (v Vector3D) IsZero() bool {
	return v == Zero
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another point.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another point.
func (v Vector3D) DistanceSquaredTo(other Vector3D) float64 {
	return v.Sub(other).LenSqr()
}

// DirectionTo returns the unit vector pointing from v to target,
// or the zero vector when both points are equal.
func (v Vector3D) DirectionTo(target Vector3D) Vector3D {
	return target.Sub(v).Normalize()
}

// RotateY rotates the vector by angle (radians) around the Y axis.
func (v Vector3D) RotateY(angle float64) Vector3D {
	sinTheta, cosTheta := math.Sincos(angle)
	return Vector3D{
		v[0]*cosTheta + v[2]*sinTheta,
		v[1],
		-v[0]*sinTheta + v[2]*cosTheta,
	}
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector3D) Lerp(target Vector3D, t float64) Vector3D {
	return v.Add(target.Sub(v).Mul(t))
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
// mgl64's ApproxEqual is relative, this one is absolute per component.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v[0]-other[0]) <= Epsilon &&
		math.Abs(v[1]-other[1]) <= Epsilon &&
		math.Abs(v[2]-other[2]) <= Epsilon
}
