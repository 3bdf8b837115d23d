package geometry

import (
	"math"
)

// CircleArea returns the area enclosed by a circle of the given radius
func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// ArcSweep returns the counter-clockwise sweep from start to end in degrees.
// DXF arcs always run counter-clockwise, so an end angle smaller than the
// start angle wraps through 360°. The result lies in (0, 360].
func ArcSweep(startDeg, endDeg float64) float64 {
	sweep := math.Mod(endDeg-startDeg, 360)
	if sweep <= 0 {
		sweep += 360
	}
	return sweep
}

// PointOnCircle returns the point at the given angle (degrees) on a circle
func PointOnCircle(center Point, radius, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180.0
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// ArcPoints samples an arc into segments+1 points, starting at startDeg and
// running counter-clockwise to endDeg
func ArcPoints(center Point, radius, startDeg, endDeg float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	sweep := ArcSweep(startDeg, endDeg)
	points := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := startDeg + sweep*float64(i)/float64(segments)
		points = append(points, PointOnCircle(center, radius, angle))
	}
	return points
}
