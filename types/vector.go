package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

type Vec3 f32.Vec3
type Vec4 f32.Vec4

const floatCmpEpsilon = 1e-6

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Define a 4 component vector.
func XYZW(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Build a Vec4 from up to 4 pass components. Missing components are zero
// except for alpha which defaults to 1 for 3-component color passes.
func Vec4FromComponents(c []float32) Vec4 {
	var v Vec4
	switch len(c) {
	case 0:
	case 1:
		v[0] = c[0]
	case 2:
		v[0], v[1] = c[0], c[1]
	case 3:
		v = Vec4{c[0], c[1], c[2], 1.0}
	default:
		v = Vec4{c[0], c[1], c[2], c[3]}
	}
	return v
}

// Expand a 3 component vector to a Vec4.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// Reduce a 4 component vector to a Vec3.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Add a vector.
func (v Vec4) Add(v2 Vec4) Vec4 {
	return Vec4{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2], v[3] + v2[3]}
}

// Subtract a vector.
func (v Vec4) Sub(v2 Vec4) Vec4 {
	return Vec4{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2], v[3] - v2[3]}
}

// Multiply 4 component vector with scalar.
func (v Vec4) Mul(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Divide the color part by a sample count; used for passes that accumulate
// weighted sums in the render buffer. A zero divisor yields a zero vector.
func (v Vec4) DivRGB(d float32) Vec4 {
	if d == 0 {
		return Vec4{}
	}
	inv := 1.0 / d
	return Vec4{v[0] * inv, v[1] * inv, v[2] * inv, v[3]}
}

// Get 4 component vector length.
func (v Vec4) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])))
}

// Get 3 component vector length.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Rec. 709 luminance of the color part.
func (v Vec3) Luminance() float32 {
	return 0.2126*v[0] + 0.7152*v[1] + 0.0722*v[2]
}

// Check whether two vectors are equal within the given tolerance.
func ApproxEqual(v1, v2 Vec4, epsilon float32) bool {
	if epsilon <= 0 {
		epsilon = floatCmpEpsilon
	}
	for i := 0; i < 4; i++ {
		if math.Abs(float64(v1[i]-v2[i])) > float64(epsilon) {
			return false
		}
	}
	return true
}
