package lab

import "github.com/lucasb-eyer/go-colorful"

// Color is a Lab value paired with its go-colorful form, so repeated distance
// computations against the same color skip the Lab -> RGB round trip.
type Color struct {
	Lab
	c colorful.Color
}

func Prepare(lc Lab) Color {
	return Color{Lab: lc, c: lc.colorful()}
}

// DistanceCIEDE2000 is the CIEDE2000 color difference between a and b.
// It weights lightness, chroma and hue differences the way the eye does,
// unlike a plain Euclidean distance over L, a and b.
func DistanceCIEDE2000(a, b Lab) float64 {
	return a.colorful().DistanceCIEDE2000(b.colorful())
}

// Distance is DistanceCIEDE2000 between two prepared colors.
func (c Color) Distance(other Color) float64 {
	return c.c.DistanceCIEDE2000(other.c)
}
