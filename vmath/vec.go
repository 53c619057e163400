// Package vmath provides the 2D vector and angle helpers used by the snake core.
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is a point or direction in world units.
type Vec2 = r2.Vec

// V returns the vector (x, y).
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromPolar returns the vector of the given magnitude pointing along angle (radians).
func FromPolar(magnitude, angle float64) Vec2 {
	return Vec2{X: magnitude * math.Cos(angle), Y: magnitude * math.Sin(angle)}
}

// Add returns a+b.
func Add(a, b Vec2) Vec2 {
	return r2.Add(a, b)
}

// Sub returns a-b.
func Sub(a, b Vec2) Vec2 {
	return r2.Sub(a, b)
}

// Scale returns v scaled by f.
func Scale(f float64, v Vec2) Vec2 {
	return r2.Scale(f, v)
}

// Len returns the magnitude of v.
func Len(v Vec2) float64 {
	return r2.Norm(v)
}

// Normalize returns the unit vector along v, or the zero vector when v is zero.
func Normalize(v Vec2) Vec2 {
	if v.X == 0 && v.Y == 0 {
		return Vec2{}
	}
	return r2.Unit(v)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// DistanceSq returns the squared distance between a and b.
func DistanceSq(a, b Vec2) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Lerp interpolates from a to b by t in [0, 1].
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Angle returns the direction of v in radians.
func Angle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// AngleDiff returns the shortest signed rotation taking from to to.
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
