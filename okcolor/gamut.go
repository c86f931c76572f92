package okcolor

import (
	"fmt"
	"math"
)

const eps = 0.00001

// Clipper brings an out of gamut linear color back into [0, 1]. Colors
// already in gamut come back unchanged.
type Clipper func(Linear) Linear

// ClipperNames lists the names accepted by NewClipper.
var ClipperNames = []string{
	"clamp", "preserve-chroma", "project-05", "project-l0", "project-cusp", "adaptive-05", "adaptive-cusp",
}

// NewClipper returns the clipper registered under name. l0 is the OKLab
// lightness "project-l0" projects toward and must be within [0, 1]; the
// other clippers ignore it.
func NewClipper(name string, l0 float64) (Clipper, error) {
	switch name {
	case "clamp":
		return Clamp, nil
	case "preserve-chroma":
		return PreserveChroma, nil
	case "project-05":
		return ProjectTo(0.5), nil
	case "project-l0":
		if !(l0 >= 0 && l0 <= 1) {
			return nil, fmt.Errorf("projection lightness %v outside [0, 1]", l0)
		}
		return ProjectTo(l0), nil
	case "project-cusp":
		return project(func(_, _ float64, cu cusp) float64 { return cu.L }), nil
	case "adaptive-05":
		return Adaptive05(0.05), nil
	case "adaptive-cusp":
		return AdaptiveCusp(0.05), nil
	}
	return nil, fmt.Errorf("unknown gamut clipper %q", name)
}

// Clamp clamps each channel on its own. Strongly out of gamut colors shift
// hue.
func Clamp(c Linear) Linear {
	return Linear{
		R: clamp(c.R, 0, 1),
		G: clamp(c.G, 0, 1),
		B: clamp(c.B, 0, 1),
	}
}

// PreserveChroma keeps the OKLab lightness (clamped to [0, 1]) and reduces
// chroma only.
var PreserveChroma = project(func(l, _ float64, _ cusp) float64 {
	return clamp(l, 0, 1)
})

// ProjectTo moves colors toward the gray of lightness l0.
func ProjectTo(l0 float64) Clipper {
	return project(func(float64, float64, cusp) float64 { return l0 })
}

// Adaptive05 projects toward a lightness between the color's own and 0.5;
// larger alpha pulls harder toward 0.5.
func Adaptive05(alpha float64) Clipper {
	return project(func(l, c float64, _ cusp) float64 {
		ld := l - 0.5
		e1 := 0.5 + math.Abs(ld) + alpha*c
		return 0.5 * (1 + sgn(ld)*(e1-math.Sqrt(e1*e1-2*math.Abs(ld))))
	})
}

// AdaptiveCusp is Adaptive05 centered on the lightness of the hue's cusp.
func AdaptiveCusp(alpha float64) Clipper {
	return project(func(l, c float64, cu cusp) float64 {
		ld := l - cu.L
		k := 2 * cu.L
		if ld > 0 {
			k = 2 * (1 - cu.L)
		}
		e1 := 0.5*k + math.Abs(ld) + alpha*c/k
		return cu.L + 0.5*(sgn(ld)*(e1-math.Sqrt(e1*e1-2*k*math.Abs(ld))))
	})
}

// anchorFunc picks the lightness of the gray an out of gamut color is moved
// toward, from the color's OKLab lightness and chroma and its hue's cusp.
type anchorFunc func(l, c float64, cu cusp) float64

func project(anchor anchorFunc) Clipper {
	return func(c Linear) Linear {
		if c.InGamut() {
			return c
		}
		return projectLab(c.OKLab(), anchor).Linear()
	}
}

// projectLab moves lc along the straight line to (anchor, 0 chroma) until it
// meets the gamut boundary.
func projectLab(lc Lab, anchor anchorFunc) Lab {
	c := max(eps, math.Hypot(lc.A, lc.B))
	a, b := lc.A/c, lc.B/c

	cu := findCusp(a, b)
	l0 := anchor(lc.L, c, cu)
	t := cu.intersect(a, b, lc.L, c, l0)

	return Lab{
		L: l0*(1-t) + t*lc.L,
		A: t * c * a,
		B: t * c * b,
	}
}

// cusp is the most saturated in gamut point of a hue.
type cusp struct {
	L float64
	C float64
}

// findCusp locates the cusp of hue (a, b), a² + b² = 1.
func findCusp(a, b float64) cusp {
	s := maxSaturation(a, b)
	top := Lab{L: 1, A: s * a, B: s * b}.Linear()
	l := math.Cbrt(1 / max(top.R, top.G, top.B))
	return cusp{L: l, C: l * s}
}

// intersect returns t where the line L = l0(1-t) + t·l1, C = t·c1 leaves the
// gamut of hue (a, b).
func (cu cusp) intersect(a, b, l1, c1, l0 float64) float64 {
	if (l1-l0)*cu.C-(cu.L-l0)*c1 <= 0 {
		// below the cusp the boundary is the line to black
		return cu.C * l0 / (c1*cu.L + cu.C*(l0-l1))
	}

	// above it, start from the line to white and refine with one Halley step
	// on the first channel to reach 1
	t := cu.C * (l0 - 1) / (c1*(cu.L-1) + cu.C*(l0-l1))
	dL := l1 - l0
	l := l0*(1-t) + t*l1
	c := t * c1

	var lms, d1, d2 [3]float64
	for i, k := range labToLMS {
		kc := k[0]*a + k[1]*b
		v := l + c*kc
		dt := dL + c1*kc
		lms[i] = v * v * v
		d1[i] = 3 * dt * v * v
		d2[i] = 6 * dt * dt * v
	}

	step := math.MaxFloat64
	for _, row := range lmsToLinear {
		f := dot(row, lms) - 1
		f1 := dot(row, d1)
		f2 := dot(row, d2)
		if u := f1 / (f1*f1 - 0.5*f*f2); u >= 0 {
			step = min(step, -f*u)
		}
	}
	return t + step
}

// saturationFit holds, per channel that limits the hue, the polynomial
// k0 + k1·a + k2·b + k3·a² + k4·a·b approximating its max saturation C/L.
var saturationFit = [3][5]float64{
	{+1.19086277, +1.76576728, +0.59662641, +0.75515197, +0.56771245},
	{+0.73956515, -0.45954404, +0.08285427, +0.12541070, +0.14503204},
	{+1.35733652, -0.00915799, -1.15130210, -0.50559606, +0.00692167},
}

func maxSaturation(a, b float64) float64 {
	ch := 2
	switch {
	case -1.88170328*a-0.80936493*b > 1:
		ch = 0
	case 1.81444104*a-1.19445276*b > 1:
		ch = 1
	}
	k := saturationFit[ch]
	s := k[0] + k[1]*a + k[2]*b + k[3]*a*a + k[4]*a*b

	// one Halley step on the channel crossing 0
	var lms, d1, d2 [3]float64
	for i, kk := range labToLMS {
		kc := kk[0]*a + kk[1]*b
		v := 1 + s*kc
		lms[i] = v * v * v
		d1[i] = 3 * kc * v * v
		d2[i] = 6 * kc * kc * v
	}
	w := lmsToLinear[ch]
	f := dot(w, lms)
	f1 := dot(w, d1)
	f2 := dot(w, d2)
	return s - f*f1/(f1*f1-0.5*f*f2)
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

func sgn(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
