package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Point is a cartesian point with the origin at the center of the layout.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polar converts a layout angle in degrees (0 pointing up, increasing
// clockwise) and a radius to a point.
func Polar(angle, radius float64) Point {
	a := (angle - 90) / 180 * math.Pi
	return Point{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
}

// Arc is a circular arc segment ending at To.
type Arc struct {
	Radius float64 `json:"radius"`
	Sweep  int     `json:"sweep"`
	To     Point   `json:"to"`
}

// Path is "move to Start; optionally arc; line to End". It encodes to
// JSON as SVG path data.
type Path struct {
	Start Point
	Arc   *Arc
	End   Point
}

// String returns the SVG path data for p.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('M')
	writePoint(&b, p.Start)
	if p.Arc != nil {
		b.WriteByte('A')
		b.WriteString(FormatNumber(p.Arc.Radius))
		b.WriteByte(',')
		b.WriteString(FormatNumber(p.Arc.Radius))
		b.WriteString(" 0 0 ")
		b.WriteString(strconv.Itoa(p.Arc.Sweep))
		b.WriteByte(' ')
		writePoint(&b, p.Arc.To)
	}
	b.WriteByte('L')
	writePoint(&b, p.End)
	return b.String()
}

// MarshalText encodes p as SVG path data.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(FormatNumber(pt.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(pt.Y))
}

// FormatNumber formats a coordinate for SVG output. It rounds to six
// decimals so that trigonometric noise such as 6e-15 prints as 0.
func FormatNumber(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LinkStep returns the path from (startAngle, startRadius) to
// (endAngle, endRadius). Equal angles yield a straight radial segment.
// Otherwise the path arcs along startRadius to endAngle and then runs
// radially to endRadius. The sweep flag is 1 when endAngle > startAngle.
func LinkStep(startAngle, startRadius, endAngle, endRadius float64) Path {
	p := Path{
		Start: Polar(startAngle, startRadius),
		End:   Polar(endAngle, endRadius),
	}
	if endAngle != startAngle {
		sweep := 0
		if endAngle > startAngle {
			sweep = 1
		}
		p.Arc = &Arc{
			Radius: startRadius,
			Sweep:  sweep,
			To:     Polar(endAngle, startRadius),
		}
	}
	return p
}
