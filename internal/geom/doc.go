// Package geom provides the 2D value types shared by the trajectory and
// wave packages.
//
// [Point] is a location and [Vec2] a displacement. Subtracting two points
// yields a vector, translating a point by a vector yields a point. Both are
// small values and are passed and returned by value.
package geom
