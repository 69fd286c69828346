package direction

import (
	"math"

	"github.com/senna-k/ffbsim/internal/units"
)

// System identifies the coordinate representation a direction was set from.
type System int

const (
	Unset System = iota
	Cartesian
	Polar
	Spherical
)

func (s System) String() string {
	switch s {
	case Cartesian:
		return "cartesian"
	case Polar:
		return "polar"
	case Spherical:
		return "spherical"
	default:
		return "unset"
	}
}

// Vector represents a force direction over 1..units.MaxAxes virtual axes.
// Setting the direction through any one coordinate system populates all
// representations, so any of them can be read back later. A direction whose
// Cartesian components are all zero is omnidirectional: magnitude broadcasts
// unchanged to every axis.
type Vector struct {
	axes   int
	omni   bool
	origin System
	cart   []float64
	sph    []float64 // hundredths of a degree, len axes-1
	polar  float64   // hundredths of a degree, 2-axis only
}

// New returns a vector over axisCount axes with no direction set.
func New(axisCount int) (*Vector, error) {
	if axisCount < 1 || axisCount > units.MaxAxes {
		return nil, ErrAxisCount
	}
	return &Vector{
		axes: axisCount,
		cart: make([]float64, axisCount),
		sph:  make([]float64, axisCount-1),
	}, nil
}

func (v *Vector) AxisCount() int        { return v.axes }
func (v *Vector) Omnidirectional() bool { return v.omni }
func (v *Vector) Origin() System        { return v.origin }

// Clone returns an independent copy.
func (v *Vector) Clone() *Vector {
	c := *v
	c.cart = append([]float64(nil), v.cart...)
	c.sph = append([]float64(nil), v.sph...)
	return &c
}

// SetCartesian records the direction from Cartesian components, one per axis.
// Only the direction of the vector matters; its length is ignored. An
// all-zero input switches the vector to omnidirectional.
func (v *Vector) SetCartesian(coords []float64) error {
	if len(coords) != v.axes {
		return ErrCoordCount
	}
	zero := true
	for _, c := range coords {
		if c != 0 {
			zero = false
			break
		}
	}
	copy(v.cart, coords)
	v.origin = Cartesian
	if zero {
		v.omni = true
		for i := range v.sph {
			v.sph[i] = 0
		}
		v.polar = 0
		return nil
	}
	v.omni = false
	cartesianToSpherical(v.cart, v.sph)
	if v.axes == 2 {
		v.polar = math.Mod(v.sph[0]+9000, units.FullCircle)
	}
	return nil
}

// SetPolar records a two-axis direction as a single angle in hundredths of a
// degree. Polar zero points along the negative second axis and the angle grows
// toward the positive first axis, offset 9000 from the spherical angle.
func (v *Vector) SetPolar(angle int32) error {
	if v.axes != 2 {
		return ErrPolarAxes
	}
	if angle < 0 || angle > units.MaxAngle {
		return ErrAngleRange
	}
	v.polar = float64(angle)
	v.sph[0] = math.Mod(float64(angle)+27000, units.FullCircle)
	sphericalToUnit(v.sph, v.cart)
	v.origin = Polar
	v.omni = false
	return nil
}

// SetSpherical records the direction as axisCount-1 angles in hundredths of
// a degree. A single-axis vector takes no angles and points along the
// positive axis.
func (v *Vector) SetSpherical(angles []int32) error {
	if len(angles) != v.axes-1 {
		return ErrCoordCount
	}
	for _, a := range angles {
		if a < 0 || a > units.MaxAngle {
			return ErrAngleRange
		}
	}
	for i, a := range angles {
		v.sph[i] = float64(a)
	}
	sphericalToUnit(v.sph, v.cart)
	if v.axes == 2 {
		v.polar = math.Mod(v.sph[0]+9000, units.FullCircle)
	}
	v.origin = Spherical
	v.omni = false
	return nil
}

// CartesianCoords returns a copy of the Cartesian representation.
func (v *Vector) CartesianCoords() []float64 {
	return append([]float64(nil), v.cart...)
}

// SphericalAngles returns a copy of the spherical angles in hundredths of
// a degree.
func (v *Vector) SphericalAngles() []float64 {
	return append([]float64(nil), v.sph...)
}

// PolarAngle returns the polar angle for two-axis vectors.
func (v *Vector) PolarAngle() (float64, error) {
	if v.axes != 2 {
		return 0, ErrPolarAxes
	}
	return v.polar, nil
}

// MagnitudeComponents decomposes a scalar magnitude into one signed component
// per axis. Omnidirectional vectors broadcast the magnitude unchanged;
// single-axis vectors copy it with the sign of the Cartesian coordinate;
// otherwise the spherical angles are applied as repeated cosine/sine
// projections, the same reduction as spherical-to-Cartesian conversion.
func (v *Vector) MagnitudeComponents(magnitude float64) []float64 {
	comps := make([]float64, v.axes)
	if v.omni {
		for i := range comps {
			comps[i] = magnitude
		}
		return comps
	}
	if v.axes == 1 {
		if v.cart[0] < 0 {
			comps[0] = -magnitude
		} else {
			comps[0] = magnitude
		}
		return comps
	}
	sinProd := 1.0
	for i := 0; i < v.axes-1; i++ {
		a := radians(v.sph[i])
		comps[i] = magnitude * sinProd * math.Cos(a)
		sinProd *= math.Sin(a)
	}
	comps[v.axes-1] = magnitude * sinProd
	return comps
}

func radians(hundredths float64) float64 {
	return hundredths * math.Pi / 18000
}

func toHundredths(rad float64) float64 {
	h := math.Mod(rad*18000/math.Pi, units.FullCircle)
	if h < 0 {
		h += units.FullCircle
	}
	return h
}

// cartesianToSpherical derives the hyperspherical angles of cart into sph.
// The inverse of sphericalToUnit: angle i is measured against axis i with the
// remaining axes folded into a residual norm, except the last angle, which
// keeps the sign of the final component.
func cartesianToSpherical(cart, sph []float64) {
	n := len(cart)
	for i := 0; i < n-1; i++ {
		if i == n-2 {
			sph[i] = toHundredths(math.Atan2(cart[n-1], cart[n-2]))
			continue
		}
		rest := 0.0
		for j := i + 1; j < n; j++ {
			rest += cart[j] * cart[j]
		}
		sph[i] = toHundredths(math.Atan2(math.Sqrt(rest), cart[i]))
	}
}

// sphericalToUnit writes the unit Cartesian vector described by sph into cart.
func sphericalToUnit(sph, cart []float64) {
	n := len(cart)
	if n == 1 {
		cart[0] = 1
		return
	}
	sinProd := 1.0
	for i := 0; i < n-1; i++ {
		a := radians(sph[i])
		cart[i] = sinProd * math.Cos(a)
		sinProd *= math.Sin(a)
	}
	cart[n-1] = sinProd
}
