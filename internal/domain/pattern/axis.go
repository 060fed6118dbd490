package pattern

// Axis identifies one of the nine submodality dimensions of a pattern.
type Axis int

// The nine axes, in protocol order. The order is a wire-level constant: the
// derivation digest is partitioned into segments in exactly this order.
const (
	Brightness Axis = iota
	ColorTemp
	FocalDistance
	Volume
	Tempo
	Pitch
	Temperature
	Movement
	Arousal
)

// AxisCount is the number of axes in a pattern.
const AxisCount = 9

// quantDenominator is the largest 16-bit quantization input.
const quantDenominator = 65535

// Range declares the closed domain interval of one axis.
type Range struct {
	Min float64
	Max float64
}

// Span returns the width of the range.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// axisRanges are protocol constants. Both peers must agree on them exactly;
// changing any entry breaks cross-implementation compatibility.
var axisRanges = [AxisCount]Range{
	Brightness:    {Min: 0, Max: 1},
	ColorTemp:     {Min: 2000, Max: 10000}, // kelvin
	FocalDistance: {Min: 0, Max: 1},
	Volume:        {Min: 0, Max: 1},
	Tempo:         {Min: 0, Max: 300},    // bpm
	Pitch:         {Min: 20, Max: 20000}, // hz
	Temperature:   {Min: 10, Max: 40},    // celsius
	Movement:      {Min: 0, Max: 1},
	Arousal:       {Min: 0, Max: 1},
}

var axisNames = [AxisCount]string{
	Brightness:    "brightness",
	ColorTemp:     "color_temp",
	FocalDistance: "focal_distance",
	Volume:        "volume",
	Tempo:         "tempo",
	Pitch:         "pitch",
	Temperature:   "temperature",
	Movement:      "movement",
	Arousal:       "arousal",
}

// Range returns the declared domain interval of the axis.
func (a Axis) Range() Range {
	return axisRanges[a]
}

// String returns the canonical axis name as used in the JSON document formats.
func (a Axis) String() string {
	if a < 0 || a >= AxisCount {
		return "unknown"
	}
	return axisNames[a]
}

// Axes returns all axes in protocol order.
func Axes() [AxisCount]Axis {
	return [AxisCount]Axis{
		Brightness, ColorTemp, FocalDistance, Volume, Tempo,
		Pitch, Temperature, Movement, Arousal,
	}
}

// Quantize maps a 16-bit unsigned value onto the axis's declared range:
// min + (v/65535)*(max-min). The mapping is total and deterministic, so the
// same segment always produces the same axis value on every implementation.
func (a Axis) Quantize(v uint16) float64 {
	r := axisRanges[a]
	return r.Min + (float64(v)/quantDenominator)*r.Span()
}

// Normalize rescales a raw axis value into [0,1] using the declared range,
// clamping to absorb rounding artifacts at the interval edges.
func (a Axis) Normalize(v float64) float64 {
	r := axisRanges[a]
	n := (v - r.Min) / r.Span()
	return clamp01(n)
}

// Denormalize maps a [0,1] value back into the axis's declared range. The
// matcher does not need it; it exists so normalization stays testable as an
// invertible-up-to-rounding transform.
func (a Axis) Denormalize(n float64) float64 {
	r := axisRanges[a]
	return r.Min + clamp01(n)*r.Span()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
