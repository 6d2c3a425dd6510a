package rcsim

import "fmt"

/* Handles the aircraft dynamics. */

// Aircraft is a single rigid body aircraft. It owns its state and is the only writer of it.
// It is not safe for concurrent use: callers must serialize Tick and the accessors.
type Aircraft struct {
	params  Params
	att     Attitude
	thrust  float64 // N, only valid for the current tick.
	bodyVel Vec3    // m/s, (forward, right wing, up from wing)
	refVel  Vec3    // m/s, always derived from bodyVel
	refPos  Vec3    // m
	tickNo  uint64
}

// NewAircraft returns a stock aircraft at the provided reference position, flying level at 1 m/s.
func NewAircraft(start Vec3) *Aircraft {
	return NewCustomAircraft(start, Vec3{1, 0, 0}, DefaultParams())
}

// NewCustomAircraft returns a new aircraft with custom initial body velocity and parameters.
func NewCustomAircraft(start, bodyVelocity Vec3, p Params) *Aircraft {
	if p.Transform == nil {
		p.Transform = EulerZYX
	}
	a := &Aircraft{params: p, bodyVel: bodyVelocity, refPos: start}
	a.toReference()
	return a
}

// Tick advances the aircraft by exactly one TimeStep using the command of the controller.
func (a *Aircraft) Tick(ctrl Controller) {
	a.ApplyControls(ctrl.Command(a.refPos, a.att))
	a.Integrate()
}

// ApplyControls converts the command into thrust and attitude increments.
// Rates are integrated as angle += gain·rate, without the time step.
func (a *Aircraft) ApplyControls(cmd Command) {
	a.thrust = a.params.Thrust(cmd.Throttle)
	a.att.Roll += a.params.AileronGain * cmd.RollRate
	a.att.Pitch += a.params.ElevatorGain * cmd.PitchRate
	a.att.Yaw += a.params.ElevatorGain * cmd.YawRate
}

// Integrate computes the body forces, moves the velocity to the reference frame, applies gravity
// and advances the position.
func (a *Aircraft) Integrate() {
	p := a.params
	vx := a.bodyVel[0]
	// Thrust - drag along the forward axis, lift along the up axis.
	a.bodyVel[0] += (a.thrust/p.Mass - vx*vx*p.DragCoeff/p.Mass) * dt
	a.bodyVel[2] += p.LiftCoeff * vx * vx / p.Mass * dt
	a.toReference()
	// Gravity is never rotated into the body frame.
	a.refVel[2] -= p.Gravity * dt
	a.refPos = a.refPos.Add(a.refVel.Scale(dt))
	a.tickNo++
}

func (a *Aircraft) toReference() {
	a.refVel = MxV33(a.params.Transform(a.att), a.bodyVel)
}

// ReferencePosition returns the position in the reference frame, in meters.
func (a *Aircraft) ReferencePosition() Vec3 {
	return a.refPos
}

// Attitude returns the current (unwrapped) attitude.
func (a *Aircraft) Attitude() Attitude {
	return a.att
}

// BodyVelocity returns the velocity in the body frame.
func (a *Aircraft) BodyVelocity() Vec3 {
	return a.bodyVel
}

// ReferenceVelocity returns the velocity in the reference frame, gravity included.
func (a *Aircraft) ReferenceVelocity() Vec3 {
	return a.refVel
}

// Thrust returns the thrust of the last tick in Newtons.
func (a *Aircraft) Thrust() float64 {
	return a.thrust
}

// Params returns a copy of the aircraft parameters.
func (a *Aircraft) Params() Params {
	return a.params
}

// Ticks returns the number of ticks integrated so far.
func (a *Aircraft) Ticks() uint64 {
	return a.tickNo
}

func (a *Aircraft) String() string {
	return fmt.Sprintf("r=%+v v=%+v att=(%.4f, %.4f, %.4f) T=%.3f N", a.refPos, a.refVel, a.att.Roll, a.att.Pitch, a.att.Yaw, a.thrust)
}
