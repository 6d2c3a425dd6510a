package rcsim

import "time"

const (
	// DefaultDragCoeff is the drag coefficient, in kg/m (drag force is Cd·vx²).
	DefaultDragCoeff = 0.2
	// DefaultLiftCoeff is the lift coefficient, in kg/m (lift force is Cl·vx²).
	DefaultLiftCoeff = 1.2
	// DefaultMass is the mass of the aircraft in kg.
	DefaultMass = 5.0
	// DefaultAileronGain converts a roll rate command into a roll increment (radians per unit command).
	DefaultAileronGain = 0.05
	// DefaultElevatorGain converts pitch and yaw rate commands into angle increments.
	DefaultElevatorGain = 0.05
	// DefaultThrottleGain is the thrust in Newtons at full throttle.
	DefaultThrottleGain = 10.0
	// StandardGravity in m/s^2.
	StandardGravity = 9.81
	// TimeStep is the duration of one tick: 1/60 s.
	TimeStep = time.Second / 60
)

// dt is TimeStep in seconds. It is NOT TimeStep.Seconds() which is rounded to the nanosecond.
const dt = 1.0 / 60

// Params are the physical and control characteristics of an aircraft.
// They are copied at construction and never change during a flight.
type Params struct {
	DragCoeff, LiftCoeff, Mass float64
	AileronGain, ElevatorGain  float64
	ThrottleGain               float64
	Gravity                    float64
	Transform                  FrameTransform // Defaults to EulerZYX if nil.
}

// DefaultParams returns the parameters of the stock RC aircraft.
func DefaultParams() Params {
	return Params{
		DragCoeff:    DefaultDragCoeff,
		LiftCoeff:    DefaultLiftCoeff,
		Mass:         DefaultMass,
		AileronGain:  DefaultAileronGain,
		ElevatorGain: DefaultElevatorGain,
		ThrottleGain: DefaultThrottleGain,
		Gravity:      StandardGravity,
		Transform:    EulerZYX,
	}
}

// Thrust returns the thrust in Newtons for the given throttle. The throttle is not clamped.
func (p Params) Thrust(throttle float64) float64 {
	return p.ThrottleGain * throttle
}

// TicksDuration returns the simulated duration of n ticks, to the nanosecond.
func TicksDuration(n uint64) time.Duration {
	return time.Duration(n * uint64(time.Second) / 60)
}
