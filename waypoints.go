package rcsim

import (
	"fmt"
	"math"
)

// Waypoint defines the Waypoint interface.
type Waypoint interface {
	Cleared() bool // returns whether waypoint has been reached
	// Command returns the command for this tick, and whether the waypoint was just cleared.
	Command(position Vec3, att Attitude) (Command, bool)
	String() string
}

// Loiter is a type of waypoint which holds a command for a given number of ticks.
type Loiter struct {
	ticks, elapsed uint64
	cmd            Command
	cleared        bool
}

// NewLoiter defines a new loitering waypoint, i.e. "hold this command for so many ticks".
// A zero tick loiter is cleared from the start.
func NewLoiter(ticks uint64, cmd Command) *Loiter {
	return &Loiter{ticks, 0, cmd, ticks == 0}
}

// String implements the Waypoint interface.
func (wp *Loiter) String() string {
	return fmt.Sprintf("Loiter for %d ticks (%s).", wp.ticks, TicksDuration(wp.ticks))
}

// Cleared implements the Waypoint interface.
func (wp *Loiter) Cleared() bool {
	return wp.cleared
}

// Command implements the Waypoint interface.
func (wp *Loiter) Command(position Vec3, att Attitude) (Command, bool) {
	wp.elapsed++
	if wp.elapsed >= wp.ticks {
		wp.cleared = true
	}
	return wp.cmd, wp.cleared
}

// FlyTo is a type of waypoint which steers toward a target until the horizontal distance to it
// is within a radius.
type FlyTo struct {
	radius  float64
	pilot   *HeadingHold
	cleared bool
}

// NewFlyTo defines a new waypoint at target (only x and y are used).
func NewFlyTo(target Vec3, radius, throttle float64) *FlyTo {
	return &FlyTo{radius, NewHeadingHold(target, throttle), false}
}

// String implements the Waypoint interface.
func (wp *FlyTo) String() string {
	return fmt.Sprintf("Fly to (%.1f, %.1f) within %.1f m.", wp.pilot.Target[0], wp.pilot.Target[1], wp.radius)
}

// Cleared implements the Waypoint interface.
func (wp *FlyTo) Cleared() bool {
	return wp.cleared
}

// Command implements the Waypoint interface.
func (wp *FlyTo) Command(position Vec3, att Attitude) (Command, bool) {
	if math.Hypot(wp.pilot.Target[0]-position[0], wp.pilot.Target[1]-position[1]) <= wp.radius {
		wp.cleared = true
	}
	return wp.pilot.Command(position, att), wp.cleared
}

// Route flies a list of waypoints in order. Once all are cleared, it returns a zero command.
type Route struct {
	WayPoints []Waypoint
	current   int
	GenericCL
}

// NewRoute returns a new route.
func NewRoute(wps ...Waypoint) *Route {
	return &Route{wps, 0, GenericCL{fmt.Sprintf("%d waypoints", len(wps)), route}}
}

// Command implements the Controller interface.
func (cl *Route) Command(position Vec3, att Attitude) Command {
	for ; cl.current < len(cl.WayPoints); cl.current++ {
		wp := cl.WayPoints[cl.current]
		if wp.Cleared() {
			continue
		}
		cmd, cleared := wp.Command(position, att)
		if cleared {
			cl.current++
		}
		return cmd
	}
	return Command{}
}

// Done returns whether all the waypoints are cleared.
func (cl *Route) Done() bool {
	for _, wp := range cl.WayPoints {
		if !wp.Cleared() {
			return false
		}
	}
	return true
}
