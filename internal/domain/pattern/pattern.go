// Package pattern defines the nine-axis submodality feature space: raw
// patterns in per-axis domain units, normalized patterns in [0,1], and the
// quantization/normalization transforms between them.
package pattern

import (
	"fmt"
	"math"
)

// Pattern is a raw nine-axis feature vector. Axis values live in each axis's
// declared domain range; they are produced by quantization, uniform sampling,
// or explicit construction. Field order matches protocol axis order.
type Pattern struct {
	Brightness    float64 `json:"brightness"`
	ColorTemp     float64 `json:"color_temp"`
	FocalDistance float64 `json:"focal_distance"`
	Volume        float64 `json:"volume"`
	Tempo         float64 `json:"tempo"`
	Pitch         float64 `json:"pitch"`
	Temperature   float64 `json:"temperature"`
	Movement      float64 `json:"movement"`
	Arousal       float64 `json:"arousal"`
}

// NormalizedPattern holds the nine axes rescaled into [0,1], in protocol
// axis order. It is the only representation the distance metric accepts.
type NormalizedPattern [AxisCount]float64

// Zeros returns the baseline pattern: every axis at the minimum of its
// declared range, so the normalized form is the all-zero vector.
func Zeros() Pattern {
	var p Pattern
	for _, a := range Axes() {
		p.set(a, a.Range().Min)
	}
	return p
}

// FromValues builds a Pattern from nine values in protocol axis order.
func FromValues(vals [AxisCount]float64) Pattern {
	var p Pattern
	for _, a := range Axes() {
		p.set(a, vals[a])
	}
	return p
}

// Value returns the raw value of one axis.
func (p Pattern) Value(a Axis) float64 {
	switch a {
	case Brightness:
		return p.Brightness
	case ColorTemp:
		return p.ColorTemp
	case FocalDistance:
		return p.FocalDistance
	case Volume:
		return p.Volume
	case Tempo:
		return p.Tempo
	case Pitch:
		return p.Pitch
	case Temperature:
		return p.Temperature
	case Movement:
		return p.Movement
	case Arousal:
		return p.Arousal
	default:
		return 0
	}
}

func (p *Pattern) set(a Axis, v float64) {
	switch a {
	case Brightness:
		p.Brightness = v
	case ColorTemp:
		p.ColorTemp = v
	case FocalDistance:
		p.FocalDistance = v
	case Volume:
		p.Volume = v
	case Tempo:
		p.Tempo = v
	case Pitch:
		p.Pitch = v
	case Temperature:
		p.Temperature = v
	case Movement:
		p.Movement = v
	case Arousal:
		p.Arousal = v
	}
}

// Values returns the raw axis values in protocol order.
func (p Pattern) Values() [AxisCount]float64 {
	var out [AxisCount]float64
	for _, a := range Axes() {
		out[a] = p.Value(a)
	}
	return out
}

// Validate checks every axis against its declared range. Used for strict
// construction paths (deserialized documents, explicit literals); values
// produced by quantization or uniform sampling are in range by construction.
func (p Pattern) Validate() error {
	for _, a := range Axes() {
		v := p.Value(a)
		r := a.Range()
		if math.IsNaN(v) || v < r.Min || v > r.Max {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrOutOfRange, a, v, r.Min, r.Max)
		}
	}
	return nil
}

// Normalized rescales every axis into [0,1].
func (p Pattern) Normalized() NormalizedPattern {
	var n NormalizedPattern
	for _, a := range Axes() {
		n[a] = a.Normalize(p.Value(a))
	}
	return n
}

// Denormalized maps a normalized pattern back into raw domain units.
func (n NormalizedPattern) Denormalized() Pattern {
	var vals [AxisCount]float64
	for _, a := range Axes() {
		vals[a] = a.Denormalize(n[a])
	}
	return FromValues(vals)
}

// Distance is the Euclidean distance between two normalized patterns.
// It is symmetric, non-negative, and zero exactly for identical inputs.
func Distance(a, b NormalizedPattern) float64 {
	var sum float64
	for i := 0; i < AxisCount; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
