// Package scales maps data values onto chart coordinates with the same
// semantics as d3's continuous scales.
package scales

import (
	"math"
)

// Linear maps a numeric domain onto a numeric range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear creates a linear scale. The range may be inverted.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{d0: domain[0], d1: domain[1], r0: rng[0], r1: rng[1]}
}

// Scale maps v from the domain onto the range. A degenerate domain maps
// everything to the middle of the range.
func (s Linear) Scale(v float64) float64 {
	return interpolate(s.r0, s.r1, normalize(s.d0, s.d1, v))
}

// Invert maps a range value back onto the domain.
func (s Linear) Invert(r float64) float64 {
	return interpolate(s.d0, s.d1, normalize(s.r0, s.r1, r))
}

func (s Linear) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }
func (s Linear) Range() [2]float64  { return [2]float64{s.r0, s.r1} }

// Ticks returns roughly count evenly spaced round values in the domain.
func (s Linear) Ticks(count int) []float64 {
	return ticks(s.d0, s.d1, count)
}

// Sqrt is a power scale with exponent 0.5.
type Sqrt struct {
	d0, d1 float64
	r0, r1 float64
}

// NewSqrt creates a square-root scale.
func NewSqrt(domain, rng [2]float64) Sqrt {
	return Sqrt{d0: domain[0], d1: domain[1], r0: rng[0], r1: rng[1]}
}

// Scale maps v through sqrt onto the range.
func (s Sqrt) Scale(v float64) float64 {
	return interpolate(s.r0, s.r1, normalize(signedSqrt(s.d0), signedSqrt(s.d1), signedSqrt(v)))
}

func (s Sqrt) Domain() [2]float64 { return [2]float64{s.d0, s.d1} }
func (s Sqrt) Range() [2]float64  { return [2]float64{s.r0, s.r1} }

func signedSqrt(x float64) float64 {
	if x < 0 {
		return -math.Sqrt(-x)
	}
	return math.Sqrt(x)
}

func normalize(a, b, x float64) float64 {
	if b-a == 0 {
		return 0.5
	}
	return (x - a) / (b - a)
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement follows d3-array: positive values are a step, negative
// values are the inverse of a fractional step.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// tickStep returns the tick spacing for the interval.
func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / math.Max(0, float64(count))
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	err := step0 / step1
	switch {
	case err >= e10:
		step1 *= 10
	case err >= e5:
		step1 *= 5
	case err >= e2:
		step1 *= 2
	}
	if stop < start {
		return -step1
	}
	return step1
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var out []float64
	if inc > 0 {
		i0, i1 := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := i0; i <= i1; i++ {
			out = append(out, i*inc)
		}
	} else {
		inc = -inc
		i0, i1 := math.Ceil(start*inc), math.Floor(stop*inc)
		for i := i0; i <= i1; i++ {
			out = append(out, i/inc)
		}
	}

	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
