package rcsim

import (
	"fmt"
	"math"
	"sort"
)

// ControlLaw defines an enum of control laws.
type ControlLaw uint8

const (
	hold ControlLaw = iota + 1
	schedule
	headingHold
	route
	custom
)

func (cl ControlLaw) String() string {
	switch cl {
	case hold:
		return "hold"
	case schedule:
		return "schedule"
	case headingHold:
		return "heading"
	case route:
		return "route"
	case custom:
		return "custom"
	}
	panic("cannot stringify unknown control law")
}

// Command is what a controller returns every tick. None of the values are bounded by the model:
// the throttle is nominally within [0, 1] and the rates are in command units.
type Command struct {
	Throttle, RollRate, PitchRate, YawRate float64
}

// Controller is the source of commands (a pilot or an autopilot).
type Controller interface {
	Command(position Vec3, att Attitude) Command
}

// DescribedController is a Controller which can describe itself in the logs.
type DescribedController interface {
	Controller
	Type() ControlLaw
	Reason() string
}

// GenericCL partially defines a DescribedController.
type GenericCL struct {
	reason string
	cl     ControlLaw
}

// Reason implements the DescribedController interface.
func (cl GenericCL) Reason() string {
	return cl.reason
}

// Type implements the DescribedController interface.
func (cl GenericCL) Type() ControlLaw {
	return cl.cl
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(position Vec3, att Attitude) Command

// Command implements the Controller interface.
func (f ControllerFunc) Command(position Vec3, att Attitude) Command {
	return f(position, att)
}

/* Let's define some control laws. */

// Hold always returns the same command.
type Hold struct {
	Cmd Command
	GenericCL
}

// NewHold returns a controller which always returns cmd.
func NewHold(cmd Command) Hold {
	return Hold{cmd, GenericCL{fmt.Sprintf("hold %+v", cmd), hold}}
}

// Command implements the Controller interface.
func (cl Hold) Command(position Vec3, att Attitude) Command {
	return cl.Cmd
}

// Segment is a command which starts at a given tick.
type Segment struct {
	From uint64
	Cmd  Command
}

// Schedule replays a list of commands, each one lasting until the next segment starts.
// Before the first segment, the command is all zeros.
type Schedule struct {
	segments []Segment
	tick     uint64
	GenericCL
}

// NewSchedule returns a new Schedule. The segments need not be sorted.
func NewSchedule(segments []Segment) *Schedule {
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].From < segs[j].From })
	return &Schedule{segments: segs, GenericCL: GenericCL{fmt.Sprintf("%d segments", len(segs)), schedule}}
}

// Command implements the Controller interface. Each call counts as one tick.
func (cl *Schedule) Command(position Vec3, att Attitude) (cmd Command) {
	for _, seg := range cl.segments {
		if seg.From > cl.tick {
			break
		}
		cmd = seg.Cmd
	}
	cl.tick++
	return
}

// HeadingHold is a proportional autopilot which steers the aircraft toward a target in the horizontal
// plane, while bringing the roll and pitch back to zero. The throttle is constant.
type HeadingHold struct {
	Target              Vec3    // Only the first two components are used.
	Throttle            float64 // Constant throttle.
	Kyaw, Kroll, Kpitch float64 // Proportional gains (command per radian of error).
	MaxRate             float64 // Bound on the absolute rate commands, ignored if zero.
	GenericCL
}

// NewHeadingHold returns a heading hold autopilot with unit gains.
func NewHeadingHold(target Vec3, throttle float64) *HeadingHold {
	return &HeadingHold{target, throttle, 1, 1, 1, 0, GenericCL{fmt.Sprintf("heading to (%.1f, %.1f)", target[0], target[1]), headingHold}}
}

// Command implements the Controller interface.
func (cl *HeadingHold) Command(position Vec3, att Attitude) Command {
	heading := math.Atan2(cl.Target[1]-position[1], cl.Target[0]-position[0])
	return Command{
		Throttle:  cl.Throttle,
		RollRate:  cl.bound(-cl.Kroll * WrapAngle(att.Roll)),
		PitchRate: cl.bound(-cl.Kpitch * WrapAngle(att.Pitch)),
		YawRate:   cl.bound(cl.Kyaw * WrapAngle(heading-att.Yaw)),
	}
}

func (cl *HeadingHold) bound(rate float64) float64 {
	if cl.MaxRate <= 0 {
		return rate
	}
	return math.Max(-cl.MaxRate, math.Min(cl.MaxRate, rate))
}

// Describe returns a DescribedController for any controller.
func Describe(ctrl Controller) DescribedController {
	if d, ok := ctrl.(DescribedController); ok {
		return d
	}
	return described{ctrl, GenericCL{fmt.Sprintf("%T", ctrl), custom}}
}

type described struct {
	Controller
	GenericCL
}
